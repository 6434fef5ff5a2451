package layout

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"go.uber.org/zap"
)

// ErrNoProgress is returned when a page stays empty even with
// forced placement.
var ErrNoProgress = errors.New("layout: no content could be placed on an empty page")

// MaxPages bounds the number of pages produced by Paginate.
const MaxPages = 10000

// maxKeepTogetherOverrides bounds the retries on one page
const maxKeepTogetherOverrides = 32

// DocumentRenderer is the root of the tree. Its children are
// laid out one page after the other.
type DocumentRenderer struct {
	BaseRenderer
}

func NewDocumentRenderer(el *Element) *DocumentRenderer {
	return &DocumentRenderer{BaseRenderer: BaseRenderer{Element: el}}
}

func (d *DocumentRenderer) Kind() Kind { return KindDocument }

func (d *DocumentRenderer) Copy() Renderer {
	out := *d
	out.BaseRenderer = d.BaseRenderer.copy()
	return &out
}

func (d *DocumentRenderer) Layout(ctx LayoutContext) LayoutResult { return blockLayout(d, ctx) }

func (d *DocumentRenderer) MinMaxWidth(env *Env) MinMaxWidth { return blockMinMaxWidth(d, env) }

// PageSize is the geometry of the pages.
type PageSize struct {
	Width, Height Fl
	Margins       geom.Insets
}

// ContentBox returns the area filled on each page.
func (ps PageSize) ContentBox() geom.Rectangle {
	box := geom.Rectangle{Width: ps.Width, Height: ps.Height}
	box.ApplyInsets(ps.Margins, false)
	return box
}

// Page is one laid out page.
type Page struct {
	Number int
	Size   PageSize
	// Root is the fragment of the document placed on the page.
	Root Renderer
}

// Paginate lays out the document on as many pages as needed.
//
// When nothing fits an empty page, the keep-together constraint of the
// cause is dropped first, then the content is forced in. If it still
// does not fit, ErrNoProgress is returned with the pages done so far.
func (d *DocumentRenderer) Paginate(size PageSize, env *Env) ([]Page, error) {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	var pages []Page
	current := Renderer(d)
	box := size.ContentBox()
	for number := 1; ; number++ {
		if number > MaxPages {
			return pages, fmt.Errorf("%w: more than %d pages", ErrNoProgress, MaxPages)
		}
		res, err := layoutPage(current, number, box, env)
		if err != nil {
			return pages, err
		}
		env.debug("page laid out", zap.Int("page", number), zap.Stringer("status", res.Status))
		pages = append(pages, Page{Number: number, Size: size, Root: fragmentOf(current, res)})
		if res.Status == Full {
			return pages, nil
		}
		current = res.OverflowRenderer
	}
}

// layoutPage lays out r on an empty page, applying the
// keep-together override and the forced placement.
func layoutPage(r Renderer, number int, box geom.Rectangle, env *Env) (LayoutResult, error) {
	newContext := func() LayoutContext {
		return NewLayoutContext(geom.Area{PageNumber: number, BBox: box}, env)
	}
	res := r.Layout(newContext())
	for i := 0; res.Status == Nothing && i < maxKeepTogetherOverrides; i++ {
		cause := res.CauseOfNothing
		if cause == nil || !isKeepTogether(cause) {
			break
		}
		env.warn("keep-together is ignored: the element does not fit an empty page", cause, zap.Int("page", number))
		cause.Base().SetProperty(pr.PKeepTogether, pr.Bool(false))
		res = r.Layout(newContext())
	}
	if res.Status != Nothing {
		return res, nil
	}
	if !isForced(r) {
		env.warn("content does not fit an empty page: it is forced in", res.CauseOfNothing, zap.Int("page", number))
		ctx := newContext()
		ctx.Forced = true
		res = r.Layout(ctx)
	}
	if res.Status == Nothing {
		return res, fmt.Errorf("page %d: %w", number, ErrNoProgress)
	}
	return res, nil
}
