package properties

import (
	"fmt"

	"github.com/benoitkugler/boxlayout/utils"
)

type Fl = utils.Fl

type (
	Float  Fl
	Int    int
	Bool   bool
	String string
)

type Unit uint8

const (
	Scalar     Unit = iota // absolute length, in points
	Percentage             // relative to a reference length
)

func (u Unit) String() string {
	if u == Percentage {
		return "%"
	}
	return "pt"
}

type Dimension struct {
	Value Float
	Unit  Unit
}

func (d Dimension) String() string {
	return fmt.Sprintf("%g%s", d.Value, d.Unit)
}

// Value is either a Dimension, or a keyword like
// "auto", "none" or "content".
type Value struct {
	Dimension
	Keyword string
}

var (
	SAuto    = Value{Keyword: "auto"}
	SNone    = Value{Keyword: "none"}
	SContent = Value{Keyword: "content"}
	Zero     = FToV(0)
)

// FToV returns an absolute length.
func FToV(f Fl) Value { return Value{Dimension: Dimension{Value: Float(f), Unit: Scalar}} }

// PercToV returns a percentage.
func PercToV(f Fl) Value { return Value{Dimension: Dimension{Value: Float(f), Unit: Percentage}} }

func (v Value) String() string {
	if v.Keyword != "" {
		return v.Keyword
	}
	return v.Dimension.String()
}

// IsAuto returns true for the "auto" keyword.
func (v Value) IsAuto() bool { return v.Keyword == "auto" }

// IsKeyword returns true if v is not a length.
func (v Value) IsKeyword() bool { return v.Keyword != "" }

// Resolve returns the length in points, using `reference`
// for percentages. It returns false for keywords, and for
// percentages when the reference is negative (indefinite).
func (v Value) Resolve(reference Fl) (Fl, bool) {
	if v.Keyword != "" {
		return 0, false
	}
	if v.Unit == Percentage {
		if reference < 0 {
			return 0, false
		}
		return Fl(v.Value) * reference / 100, true
	}
	return Fl(v.Value), true
}

// ResolveOr returns the resolved length or `def`.
func (v Value) ResolveOr(reference, def Fl) Fl {
	if out, ok := v.Resolve(reference); ok {
		return out
	}
	return def
}

// Values is a list of lengths, used for the column widths of tables.
type Values []Value

// Border is one side of a box border.
// A border with zero width or style "none" is not drawn.
type Border struct {
	Width Fl
	Style String
	Color String
}

// IsNone returns true if the border is not painted.
func (b Border) IsNone() bool {
	return b.Width <= 0 || b.Style == "" || b.Style == "none" || b.Style == "hidden"
}

// Ptr returns nil for an empty border, a pointer to a copy otherwise.
func (b Border) Ptr() *Border {
	if b.IsNone() {
		return nil
	}
	return &b
}

func (b Border) String() string {
	if b.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%gpt %s %s", b.Width, b.Style, b.Color)
}

// Leading is the distance between two baselines, either
// absolute or proportional to the font size.
type Leading struct {
	Multiplied bool
	Value      Float
}

// Resolve returns the line height for the given font size.
func (l Leading) Resolve(fontSize Fl) Fl {
	if l.Multiplied {
		return Fl(l.Value) * fontSize
	}
	return Fl(l.Value)
}

// BreadthKind is the kind of a grid track sizing function.
type BreadthKind uint8

const (
	BreadthFixed BreadthKind = iota
	BreadthPercent
	BreadthFlex // fr unit
	BreadthAuto
	BreadthMinContent
	BreadthMaxContent
)

// TrackBreadth is a minimum or maximum track sizing function.
type TrackBreadth struct {
	Kind  BreadthKind
	Value Fl
}

// IsIntrinsic returns true for auto, min-content and max-content.
func (k BreadthKind) IsIntrinsic() bool {
	return k == BreadthAuto || k == BreadthMinContent || k == BreadthMaxContent
}

// IsIntrinsic returns true for auto, min-content and max-content.
func (t TrackBreadth) IsIntrinsic() bool { return t.Kind.IsIntrinsic() }

func (t TrackBreadth) String() string {
	switch t.Kind {
	case BreadthFixed:
		return fmt.Sprintf("%gpt", t.Value)
	case BreadthPercent:
		return fmt.Sprintf("%g%%", t.Value)
	case BreadthFlex:
		return fmt.Sprintf("%gfr", t.Value)
	case BreadthAuto:
		return "auto"
	case BreadthMinContent:
		return "min-content"
	default:
		return "max-content"
	}
}

// TrackSize is the sizing function of one grid track.
// For fit-content(limit), Min is auto and Max holds the limit.
type TrackSize struct {
	Min, Max   TrackBreadth
	FitContent bool
}

// NewTrackSize builds the sizing function for a single breadth value.
// A flexible breadth has an automatic minimum.
func NewTrackSize(b TrackBreadth) TrackSize {
	if b.Kind == BreadthFlex {
		return TrackSize{Min: TrackBreadth{Kind: BreadthAuto}, Max: b}
	}
	return TrackSize{Min: b, Max: b}
}

// NewFitContent returns fit-content(limit).
func NewFitContent(limit TrackBreadth) TrackSize {
	return TrackSize{Min: TrackBreadth{Kind: BreadthAuto}, Max: limit, FitContent: true}
}

var AutoTrack = NewTrackSize(TrackBreadth{Kind: BreadthAuto})

func (t TrackSize) String() string {
	if t.FitContent {
		return fmt.Sprintf("fit-content(%s)", t.Max)
	}
	if t.Min == t.Max {
		return t.Min.String()
	}
	return fmt.Sprintf("minmax(%s, %s)", t.Min, t.Max)
}

type TrackSizes []TrackSize

// GridLine is a grid placement: an explicit line (one based),
// a span, or auto when both are zero.
type GridLine struct {
	Line int
	Span int
}

func (gl GridLine) IsAuto() bool { return gl.Line == 0 && gl.Span == 0 }
