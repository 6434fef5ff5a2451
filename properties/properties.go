// Package properties defines the style properties understood by the
// layout engine, their value types, initial values and inheritance.
package properties

import (
	"errors"
	"math"
)

// KnownProp identifies a property.
type KnownProp uint8

const (
	_ KnownProp = iota

	PWidth
	PHeight
	PMinWidth
	PMaxWidth
	PMinHeight
	PMaxHeight
	PBoxSizing

	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft
	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft
	PBorderTop
	PBorderRight
	PBorderBottom
	PBorderLeft

	PDisplay
	PFloat
	PClear
	PKeepTogether
	PForcedPlacement
	PFillAvailableArea
	PRotationAngle
	PRotationPointX
	PRotationPointY
	PVerticalAlignment
	POverflow
	PCollapsingMargins
	PColumnCount
	PBreakBefore

	PFlexDirection
	PFlexWrap
	PJustifyContent
	PAlignItems
	PAlignSelf
	PAlignContent
	PFlexGrow
	PFlexShrink
	PFlexBasis
	POrder
	PAspectRatio
	PRowGap
	PColumnGap

	PGridTemplateColumns
	PGridTemplateRows
	PGridAutoColumns
	PGridAutoRows
	PGridColumnStart
	PGridColumnEnd
	PGridRowStart
	PGridRowEnd

	PBorderCollapse
	PBorderSpacing
	PColspan
	PRowspan
	PColumnWidths
	PSkipFirstHeader
	PSkipLastFooter

	PFontSize
	PLeading
	PTextAlign
	PFirstLineIndent
	POrphans
	PWidows

	PAutoScale
	PListStyleType
	PListSymbolIndent

	NbProperties
)

var propsNames = [...]string{
	PWidth:             "width",
	PHeight:            "height",
	PMinWidth:          "min-width",
	PMaxWidth:          "max-width",
	PMinHeight:         "min-height",
	PMaxHeight:         "max-height",
	PBoxSizing:         "box-sizing",
	PMarginTop:         "margin-top",
	PMarginRight:       "margin-right",
	PMarginBottom:      "margin-bottom",
	PMarginLeft:        "margin-left",
	PPaddingTop:        "padding-top",
	PPaddingRight:      "padding-right",
	PPaddingBottom:     "padding-bottom",
	PPaddingLeft:       "padding-left",
	PBorderTop:         "border-top",
	PBorderRight:       "border-right",
	PBorderBottom:      "border-bottom",
	PBorderLeft:        "border-left",
	PDisplay:           "display",
	PFloat:             "float",
	PClear:             "clear",
	PKeepTogether:      "keep-together",
	PForcedPlacement:   "forced-placement",
	PFillAvailableArea: "fill-available-area",
	PRotationAngle:     "rotation-angle",
	PRotationPointX:    "rotation-point-x",
	PRotationPointY:    "rotation-point-y",
	PVerticalAlignment: "vertical-alignment",
	POverflow:          "overflow",
	PCollapsingMargins: "collapsing-margins",
	PColumnCount:       "column-count",
	PBreakBefore:       "break-before",

	PFlexDirection:  "flex-direction",
	PFlexWrap:       "flex-wrap",
	PJustifyContent: "justify-content",
	PAlignItems:     "align-items",
	PAlignSelf:      "align-self",
	PAlignContent:   "align-content",
	PFlexGrow:       "flex-grow",
	PFlexShrink:     "flex-shrink",
	PFlexBasis:      "flex-basis",
	POrder:          "order",
	PAspectRatio:    "aspect-ratio",
	PRowGap:         "row-gap",
	PColumnGap:      "column-gap",

	PGridTemplateColumns: "grid-template-columns",
	PGridTemplateRows:    "grid-template-rows",
	PGridAutoColumns:     "grid-auto-columns",
	PGridAutoRows:        "grid-auto-rows",
	PGridColumnStart:     "grid-column-start",
	PGridColumnEnd:       "grid-column-end",
	PGridRowStart:        "grid-row-start",
	PGridRowEnd:          "grid-row-end",

	PBorderCollapse:  "border-collapse",
	PBorderSpacing:   "border-spacing",
	PColspan:         "colspan",
	PRowspan:         "rowspan",
	PColumnWidths:    "column-widths",
	PSkipFirstHeader: "skip-first-header",
	PSkipLastFooter:  "skip-last-footer",

	PFontSize:        "font-size",
	PLeading:         "line-height",
	PTextAlign:       "text-align",
	PFirstLineIndent: "text-indent",
	POrphans:         "orphans",
	PWidows:          "widows",

	PAutoScale:        "auto-scale",
	PListStyleType:    "list-style-type",
	PListSymbolIndent: "list-symbol-indent",
}

func (p KnownProp) String() string {
	if int(p) < len(propsNames) {
		return propsNames[p]
	}
	return "<invalid property>"
}

// PropsFromNames maps CSS names to properties.
var PropsFromNames = map[string]KnownProp{}

func init() {
	for i, name := range propsNames {
		if name != "" {
			PropsFromNames[name] = KnownProp(i)
		}
	}
}

// Inherited lists the properties looked up in the ancestors
// when not set on a renderer.
var Inherited = map[KnownProp]bool{
	PCollapsingMargins: true,
	PBorderCollapse:    true,
	PBorderSpacing:     true,
	PFontSize:          true,
	PLeading:           true,
	PTextAlign:         true,
	PFirstLineIndent:   true,
	POrphans:           true,
	PWidows:            true,
	PListStyleType:     true,
}

var noBorder = Border{}

// InitialValues provides a value for every property.
var InitialValues = Properties{
	PWidth:             SAuto,
	PHeight:            SAuto,
	PMinWidth:          SAuto,
	PMaxWidth:          SNone,
	PMinHeight:         SAuto,
	PMaxHeight:         SNone,
	PBoxSizing:         String("content-box"),
	PMarginTop:         Zero,
	PMarginRight:       Zero,
	PMarginBottom:      Zero,
	PMarginLeft:        Zero,
	PPaddingTop:        Zero,
	PPaddingRight:      Zero,
	PPaddingBottom:     Zero,
	PPaddingLeft:       Zero,
	PBorderTop:         noBorder,
	PBorderRight:       noBorder,
	PBorderBottom:      noBorder,
	PBorderLeft:        noBorder,
	PDisplay:           String("block"),
	PFloat:             String("none"),
	PClear:             String("none"),
	PKeepTogether:      Bool(false),
	PForcedPlacement:   Bool(false),
	PFillAvailableArea: Bool(false),
	PRotationAngle:     Float(0),
	PRotationPointX:    SAuto,
	PRotationPointY:    SAuto,
	PVerticalAlignment: String("top"),
	POverflow:          String("fit"),
	PCollapsingMargins: Bool(false),
	PColumnCount:       Int(1),
	PBreakBefore:       String("auto"),

	PFlexDirection:  String("row"),
	PFlexWrap:       String("nowrap"),
	PJustifyContent: String("flex-start"),
	PAlignItems:     String("stretch"),
	PAlignSelf:      String("auto"),
	PAlignContent:   String("normal"),
	PFlexGrow:       Float(0),
	PFlexShrink:     Float(1),
	PFlexBasis:      SAuto,
	POrder:          Int(0),
	PAspectRatio:    Float(0),
	PRowGap:         Zero,
	PColumnGap:      Zero,

	PGridTemplateColumns: TrackSizes(nil),
	PGridTemplateRows:    TrackSizes(nil),
	PGridAutoColumns:     TrackSizes{AutoTrack},
	PGridAutoRows:        TrackSizes{AutoTrack},
	PGridColumnStart:     GridLine{},
	PGridColumnEnd:       GridLine{},
	PGridRowStart:        GridLine{},
	PGridRowEnd:          GridLine{},

	PBorderCollapse:  String("collapse"),
	PBorderSpacing:   Zero,
	PColspan:         Int(1),
	PRowspan:         Int(1),
	PColumnWidths:    Values(nil),
	PSkipFirstHeader: Bool(false),
	PSkipLastFooter:  Bool(false),

	PFontSize:        FToV(12),
	PLeading:         Leading{Multiplied: true, Value: 1.2},
	PTextAlign:       String("left"),
	PFirstLineIndent: Zero,
	POrphans:         Int(1),
	PWidows:          Int(1),

	PAutoScale:        Bool(false),
	PListStyleType:    String("disc"),
	PListSymbolIndent: FToV(15),
}

// Properties stores property values.
type Properties map[KnownProp]interface{}

// Copy returns a shallow copy.
func (p Properties) Copy() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Get returns the value of `key`, or nil.
func (p Properties) Get(key KnownProp) interface{} { return p[key] }

// Getter resolves the value of a property.
// The returned value is never nil.
type Getter interface {
	Get(key KnownProp) interface{}
}

// Style adds typed accessors to a Getter.
type Style struct {
	Getter
}

// DefaultStyle resolves to the initial values.
var DefaultStyle = Style{InitialValues}

// Deg converts degrees to radians.
func Deg(degrees Fl) Float { return Float(float64(degrees) * math.Pi / 180) }

// ErrNegativeFlexFactor is returned when flex-grow or flex-shrink is negative.
var ErrNegativeFlexFactor = errors.New("flex factors must not be negative")
