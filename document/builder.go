// Package document builds a renderer tree from an HTML fragment,
// whose elements are styled by their style attribute, and lays it out
// on pages.
package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/benoitkugler/boxlayout/images"
	"github.com/benoitkugler/boxlayout/layout"
	"github.com/benoitkugler/boxlayout/logger"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/style"
	"github.com/benoitkugler/boxlayout/utils"
)

// defaultStyles are applied before the style attribute.
var defaultStyles = map[atom.Atom]string{
	atom.H1:     "font-size: 24pt; margin-bottom: 12pt",
	atom.H2:     "font-size: 18pt; margin-bottom: 10pt",
	atom.H3:     "font-size: 14pt; margin-bottom: 8pt",
	atom.H4:     "font-size: 12pt; margin-bottom: 6pt",
	atom.H5:     "font-size: 10pt; margin-bottom: 6pt",
	atom.H6:     "font-size: 8pt; margin-bottom: 6pt",
	atom.P:      "margin-bottom: 6pt",
	atom.Ul:     "padding-left: 20pt; list-style-type: disc",
	atom.Ol:     "padding-left: 20pt; list-style-type: decimal",
	atom.Th:     "text-align: center",
	atom.Small:  "font-size: 10pt",
	atom.Center: "text-align: center",
}

// inlineTags are laid out inside lines.
var inlineTags = map[atom.Atom]bool{
	atom.Span: true, atom.A: true, atom.B: true, atom.Strong: true, atom.I: true,
	atom.Em: true, atom.Code: true, atom.Small: true, atom.Sub: true, atom.Sup: true,
	atom.U: true, atom.Br: true, atom.Img: true,
}

// paragraphTags have inline content only.
var paragraphTags = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
}

// Builder converts HTML into renderers.
type Builder struct {
	warning *zap.Logger

	// RootStyle is applied to the document, and inherited
	// by its descendants.
	RootStyle pr.Properties

	// Images resolves the size of <img> elements without
	// width and height attributes.
	Images *images.Cache
}

// NewBuilder returns a builder logging to l, which may be nil.
func NewBuilder(l *zap.Logger) *Builder {
	if l == nil {
		l = logger.Nop()
	}
	return &Builder{warning: logger.Warning(l), Images: images.NewCache("")}
}

// Build parses the HTML content of r. Invalid style values are errors.
func (b *Builder) Build(r io.Reader) (*layout.DocumentRenderer, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	body := findBody(root)
	if body == nil {
		return nil, fmt.Errorf("parsing HTML: missing body")
	}
	el, err := b.element(body)
	if err != nil {
		return nil, err
	}
	for k, v := range b.RootStyle {
		if _, has := el.Style[k]; !has {
			el.Style[k] = v
		}
	}
	doc := layout.NewDocumentRenderer(el)
	if err := b.blockChildren(doc, body); err != nil {
		return nil, err
	}
	return doc, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// element resolves the style of n.
func (b *Builder) element(n *html.Node) (*layout.Element, error) {
	props := pr.Properties{}
	if def := defaultStyles[n.DataAtom]; def != "" {
		var err error
		if props, err = style.Parse(def, b.warning); err != nil {
			return nil, fmt.Errorf("default style of <%s>: %w", n.Data, err)
		}
	}
	if s := attr(n, "style"); s != "" {
		own, err := style.Parse(s, b.warning)
		if err != nil {
			return nil, fmt.Errorf("style of <%s>: %w", n.Data, err)
		}
		for k, v := range own {
			props[k] = v
		}
	}
	return &layout.Element{Tag: n.Data, Style: props}, nil
}

func display(el *layout.Element) string {
	if d, ok := el.Style[pr.PDisplay].(pr.String); ok {
		return string(d)
	}
	return ""
}

func (b *Builder) isInline(n *html.Node, el *layout.Element) bool {
	switch display(el) {
	case "inline", "inline-block":
		return true
	case "":
		return inlineTags[n.DataAtom]
	default:
		return false
	}
}

// blockChildren adds the children of n to parent. Consecutive inline
// content is wrapped in anonymous paragraphs.
func (b *Builder) blockChildren(parent layout.Renderer, n *html.Node) error {
	var pending *layout.ParagraphRenderer
	flush := func() {
		if pending != nil && finishParagraph(pending) {
			layout.AddChild(parent, pending)
		}
		pending = nil
	}
	ensure := func() {
		if pending == nil {
			pending = layout.NewParagraphRenderer(nil)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) == "" && pending == nil {
				continue
			}
			ensure()
			addText(pending, collapseSpaces(c.Data), nil)
		case html.ElementNode:
			el, err := b.element(c)
			if err != nil {
				return err
			}
			if display(el) == "none" {
				continue
			}
			if b.isInline(c, el) {
				ensure()
				if err := b.inline(pending, c, el, nil); err != nil {
					return err
				}
				continue
			}
			flush()
			r, err := b.block(c, el)
			if err != nil {
				return err
			}
			if r != nil {
				layout.AddChild(parent, r)
			}
		}
	}
	flush()
	return nil
}

func (b *Builder) block(n *html.Node, el *layout.Element) (layout.Renderer, error) {
	switch {
	case paragraphTags[n.DataAtom]:
		p := layout.NewParagraphRenderer(el)
		if err := b.inlineChildren(p, n, nil); err != nil {
			return nil, err
		}
		finishParagraph(p)
		return p, nil
	case n.DataAtom == atom.Ul || n.DataAtom == atom.Ol:
		return b.list(n, el)
	case n.DataAtom == atom.Table:
		return b.table(n, el)
	case n.DataAtom == atom.Img:
		img := b.image(n, el)
		if alt, ok := img.(*layout.TextRenderer); ok {
			p := layout.NewParagraphRenderer(nil)
			layout.AddChild(p, alt)
			return p, nil
		}
		return img, nil
	case n.DataAtom == atom.Li:
		item := layout.NewListItemRenderer(el, 1)
		return item, b.blockChildren(item, n)
	}
	var out layout.Renderer
	switch display(el) {
	case "flex":
		out = layout.NewFlexContainerRenderer(el)
	case "grid":
		out = layout.NewGridContainerRenderer(el)
	case "list-item":
		out = layout.NewListItemRenderer(el, 1)
	default:
		out = layout.NewDivRenderer(el)
	}
	return out, b.blockChildren(out, n)
}

// inline adds the content of the inline element n, whose
// resolved style is el, to p.
func (b *Builder) inline(p *layout.ParagraphRenderer, n *html.Node, el *layout.Element, inherited pr.Properties) error {
	switch n.DataAtom {
	case atom.Br:
		addText(p, "\n", inherited)
		return nil
	case atom.Img:
		if img := b.image(n, el); img != nil {
			layout.AddChild(p, img)
		}
		return nil
	}
	merged := inherited.Copy()
	for k, v := range el.Style {
		merged[k] = v
	}
	return b.inlineChildren(p, n, merged)
}

func (b *Builder) inlineChildren(p *layout.ParagraphRenderer, n *html.Node, inherited pr.Properties) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			addText(p, collapseSpaces(c.Data), inherited)
		case html.ElementNode:
			el, err := b.element(c)
			if err != nil {
				return err
			}
			if display(el) == "none" {
				continue
			}
			if !b.isInline(c, el) {
				b.warning.Warn("block element inside a paragraph is laid out inline", zap.String("tag", c.Data))
			}
			if err := b.inline(p, c, el, inherited); err != nil {
				return err
			}
		}
	}
	return nil
}

// collapseSpaces replaces each sequence of white spaces by one space.
func collapseSpaces(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func lastText(p *layout.ParagraphRenderer) *layout.TextRenderer {
	for i := len(p.Children) - 1; i >= 0; i-- {
		switch c := p.Children[i].(type) {
		case *layout.TextRenderer:
			return c
		case *layout.ImageRenderer:
			return nil
		}
	}
	return nil
}

// addText appends a run to p, removing the spaces starting a line.
func addText(p *layout.ParagraphRenderer, s string, props pr.Properties) {
	if s != "\n" {
		last := lastText(p)
		if last == nil && len(p.Children) == 0 || last != nil && endsWithBreak(last.Text) {
			s = strings.TrimLeft(s, " ")
		}
	}
	if s == "" {
		return
	}
	var el *layout.Element
	if len(props) != 0 {
		el = &layout.Element{Style: props}
	}
	layout.AddChild(p, layout.NewTextRenderer(el, s))
}

func endsWithBreak(text []rune) bool {
	if len(text) == 0 {
		return false
	}
	last := text[len(text)-1]
	return last == ' ' || last == '\n'
}

// finishParagraph removes the trailing spaces of p, and returns
// false if p has no content.
func finishParagraph(p *layout.ParagraphRenderer) bool {
	for len(p.Children) != 0 {
		t, ok := p.Children[len(p.Children)-1].(*layout.TextRenderer)
		if !ok {
			break
		}
		t.Text = []rune(strings.TrimRight(string(t.Text), " "))
		if len(t.Text) != 0 {
			break
		}
		p.Children = p.Children[:len(p.Children)-1]
	}
	return len(p.Children) != 0
}

func parseSize(s string) (utils.Fl, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return utils.Fl(v), true
}

// image returns an image with the intrinsic size given by the width
// and height attributes, completed by the size of the src file.
// Without size, the alt text is used, if any.
func (b *Builder) image(n *html.Node, el *layout.Element) layout.Renderer {
	w, okW := parseSize(attr(n, "width"))
	h, okH := parseSize(attr(n, "height"))
	if src := attr(n, "src"); !(okW && okH) && src != "" && b.Images != nil {
		size, err := b.Images.IntrinsicSize(src)
		if err != nil {
			b.warning.Warn("image could not be loaded", zap.String("src", src), zap.Error(err))
		} else if ratio := size.Ratio(); ratio > 0 {
			switch {
			case okW:
				h = w / ratio
			case okH:
				w = h * ratio
			default:
				w, h = size.Width, size.Height
			}
			okW, okH = true, true
		}
	}
	if okW && okH {
		return layout.NewImageRenderer(el, w, h)
	}
	if alt := strings.TrimSpace(collapseSpaces(attr(n, "alt"))); alt != "" {
		return layout.NewTextRenderer(el, alt)
	}
	b.warning.Warn("image without intrinsic size is ignored", zap.String("src", attr(n, "src")))
	return nil
}

func (b *Builder) list(n *html.Node, el *layout.Element) (layout.Renderer, error) {
	out := layout.NewDivRenderer(el)
	ordinal := 1
	if start, err := strconv.Atoi(attr(n, "start")); err == nil {
		ordinal = start
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom != atom.Li {
			b.warning.Warn("unexpected list child is ignored", zap.String("tag", c.Data))
			continue
		}
		liEl, err := b.element(c)
		if err != nil {
			return nil, err
		}
		item := layout.NewListItemRenderer(liEl, ordinal)
		if err := b.blockChildren(item, c); err != nil {
			return nil, err
		}
		layout.AddChild(out, item)
		ordinal++
	}
	return out, nil
}

// Layout builds the HTML content of r and paginates it.
func Layout(r io.Reader, size layout.PageSize, rootStyle pr.Properties, env *layout.Env) ([]layout.Page, error) {
	if env == nil {
		env = layout.NewEnv(nil, nil)
	}
	b := NewBuilder(env.Logger)
	b.RootStyle = rootStyle
	doc, err := b.Build(r)
	if err != nil {
		return nil, err
	}
	return doc.Paginate(size, env)
}
