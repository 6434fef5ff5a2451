package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
	"go.uber.org/zap"
)

// ErrInvalidValue is wrapped by the errors reporting a malformed value
// for a supported property.
var ErrInvalidValue = errors.New("invalid value")

// Parse converts a style attribute into properties.
// Unsupported properties are logged and ignored, while invalid values for
// supported ones are errors.
func Parse(input string, logger *zap.Logger) (pr.Properties, error) {
	decls, err := ParseDeclarations(input)
	if err != nil {
		return nil, err
	}
	out := pr.Properties{}
	for _, decl := range decls.Items {
		name := strings.ToLower(decl.Name)
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		exp := expanders[name]
		if exp == nil {
			if prop, ok := pr.PropsFromNames[name]; ok {
				exp = longhands[prop]
			}
		}
		if exp == nil {
			logger.Warn("ignored unsupported property", zap.String("property", decl.Name),
				zap.String("position", decl.Pos.String()))
			continue
		}
		if err := exp(decl.Terms, out); err != nil {
			return nil, fmt.Errorf("property %s (%s): %w", decl.Name, decl.value(), err)
		}
	}
	return out, nil
}

type expander func(terms []*Term, out pr.Properties) error

func invalid(terms []*Term) error {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return fmt.Errorf("%w %q", ErrInvalidValue, strings.Join(parts, " "))
}

var aliases = map[string]string{
	"vertical-align": "vertical-alignment",
	"page-break-before": "break-before",
	"grid-gap": "gap",
}

var (
	longhands = map[pr.KnownProp]expander{}
	expanders = map[string]expander{
		"margin":       boxShorthand(pr.PMarginTop, pr.PMarginRight, pr.PMarginBottom, pr.PMarginLeft, true),
		"padding":      boxShorthand(pr.PPaddingTop, pr.PPaddingRight, pr.PPaddingBottom, pr.PPaddingLeft, false),
		"border":       borderShorthand(pr.PBorderTop, pr.PBorderRight, pr.PBorderBottom, pr.PBorderLeft),
		"border-width": borderComponent(0),
		"border-style": borderComponent(1),
		"border-color": borderComponent(2),
		"flex":         expandFlex,
		"flex-flow":    expandFlexFlow,
		"gap":          expandGap,
		"grid-column":  gridShorthand(pr.PGridColumnStart, pr.PGridColumnEnd),
		"grid-row":     gridShorthand(pr.PGridRowStart, pr.PGridRowEnd),
	}
)

func init() {
	for _, p := range []pr.KnownProp{pr.PWidth, pr.PHeight, pr.PMinWidth, pr.PMinHeight,
		pr.PMarginTop, pr.PMarginRight, pr.PMarginBottom, pr.PMarginLeft,
		pr.PRotationPointX, pr.PRotationPointY,
	} {
		longhands[p] = lengthExpander(p, "auto")
	}
	for _, p := range []pr.KnownProp{pr.PMaxWidth, pr.PMaxHeight} {
		longhands[p] = lengthExpander(p, "none")
	}
	longhands[pr.PFlexBasis] = lengthExpander(pr.PFlexBasis, "auto", "content")
	for _, p := range []pr.KnownProp{pr.PPaddingTop, pr.PPaddingRight, pr.PPaddingBottom, pr.PPaddingLeft,
		pr.PBorderSpacing, pr.PFirstLineIndent, pr.PListSymbolIndent, pr.PFontSize,
	} {
		longhands[p] = lengthExpander(p)
	}
	for _, p := range []pr.KnownProp{pr.PRowGap, pr.PColumnGap} {
		longhands[p] = gapExpander(p)
	}
	for _, p := range []pr.KnownProp{pr.PBorderTop, pr.PBorderRight, pr.PBorderBottom, pr.PBorderLeft} {
		longhands[p] = borderShorthand(p)
	}
	for p, allowed := range keywords {
		longhands[p] = keywordExpander(p, allowed)
	}
	for _, p := range []pr.KnownProp{pr.PKeepTogether, pr.PForcedPlacement, pr.PFillAvailableArea,
		pr.PCollapsingMargins, pr.PSkipFirstHeader, pr.PSkipLastFooter, pr.PAutoScale,
	} {
		longhands[p] = boolExpander(p)
	}
	for _, p := range []pr.KnownProp{pr.PColumnCount, pr.POrder, pr.PColspan, pr.PRowspan, pr.POrphans, pr.PWidows} {
		longhands[p] = intExpander(p)
	}
	longhands[pr.PFlexGrow] = flexFactorExpander(pr.PFlexGrow)
	longhands[pr.PFlexShrink] = flexFactorExpander(pr.PFlexShrink)
	longhands[pr.PAspectRatio] = expandAspectRatio
	longhands[pr.PRotationAngle] = expandRotation
	longhands[pr.PLeading] = expandLineHeight
	longhands[pr.PColumnWidths] = expandColumnWidths
	for _, p := range []pr.KnownProp{pr.PGridTemplateColumns, pr.PGridTemplateRows, pr.PGridAutoColumns, pr.PGridAutoRows} {
		longhands[p] = tracksExpander(p)
	}
	for _, p := range []pr.KnownProp{pr.PGridColumnStart, pr.PGridColumnEnd, pr.PGridRowStart, pr.PGridRowEnd} {
		longhands[p] = gridLineExpander(p)
	}
}

var keywords = map[pr.KnownProp]utils.Set{
	pr.PDisplay:           utils.NewSet("block", "inline", "inline-block", "flex", "grid", "table", "list-item", "none"),
	pr.PFloat:             utils.NewSet("none", "left", "right"),
	pr.PClear:             utils.NewSet("none", "left", "right", "both"),
	pr.PBoxSizing:         utils.NewSet("content-box", "border-box"),
	pr.PVerticalAlignment: utils.NewSet("top", "middle", "bottom"),
	pr.POverflow:          utils.NewSet("visible", "hidden", "fit"),
	pr.PBreakBefore:       utils.NewSet("auto", "page", "always"),
	pr.PFlexDirection:     utils.NewSet("row", "row-reverse", "column", "column-reverse"),
	pr.PFlexWrap:          utils.NewSet("nowrap", "wrap", "wrap-reverse"),
	pr.PJustifyContent: utils.NewSet("normal", "stretch", "start", "end", "left", "right", "flex-start", "flex-end",
		"center", "space-between", "space-around", "space-evenly"),
	pr.PAlignItems:      utils.NewSet("normal", "stretch", "start", "end", "self-start", "self-end", "flex-start", "flex-end", "center", "baseline"),
	pr.PAlignSelf:       utils.NewSet("auto", "normal", "stretch", "start", "end", "self-start", "self-end", "flex-start", "flex-end", "center", "baseline"),
	pr.PAlignContent:    utils.NewSet("normal", "stretch", "start", "end", "flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"),
	pr.PBorderCollapse:  utils.NewSet("collapse", "separate"),
	pr.PTextAlign:       utils.NewSet("left", "right", "center", "justify", "justify-all"),
	pr.PListStyleType:   utils.NewSet("disc", "circle", "square", "decimal", "lower-alpha", "upper-alpha", "none"),
}

func single(terms []*Term) (*Term, error) {
	if len(terms) != 1 {
		return nil, invalid(terms)
	}
	return terms[0], nil
}

func ident(t *Term) string {
	if t.Ident == nil {
		return ""
	}
	return strings.ToLower(*t.Ident)
}

// splitNumber returns the numeric part and the unit of a Number token.
func splitNumber(s string) (utils.Fl, string, error) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c == '%' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			i--
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:i], 32)
	if err != nil {
		return 0, "", fmt.Errorf("%w %q", ErrInvalidValue, s)
	}
	return utils.Fl(v), strings.ToLower(s[i:]), nil
}

// absolute units, in points
var lengthUnits = map[string]utils.Fl{
	"":   1,
	"pt": 1,
	"px": 0.75,
	"pc": 12,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
	"em": 12, // relative to the initial font size
}

func parseLength(t *Term, allowedKeywords ...string) (pr.Value, error) {
	if kw := ident(t); kw != "" {
		for _, allowed := range allowedKeywords {
			if kw == allowed {
				return pr.Value{Keyword: kw}, nil
			}
		}
		return pr.Value{}, invalid([]*Term{t})
	}
	if t.Number == nil {
		return pr.Value{}, invalid([]*Term{t})
	}
	v, unit, err := splitNumber(*t.Number)
	if err != nil {
		return pr.Value{}, err
	}
	if unit == "%" {
		return pr.PercToV(v), nil
	}
	factor, ok := lengthUnits[unit]
	if !ok {
		return pr.Value{}, invalid([]*Term{t})
	}
	return pr.FToV(v * factor), nil
}

func lengthExpander(prop pr.KnownProp, allowedKeywords ...string) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		v, err := parseLength(t, allowedKeywords...)
		if err != nil {
			return err
		}
		if v.Value < 0 && prop != pr.PMarginTop && prop != pr.PMarginRight &&
			prop != pr.PMarginBottom && prop != pr.PMarginLeft && prop != pr.PFirstLineIndent {
			return invalid(terms)
		}
		out[prop] = v
		return nil
	}
}

// "normal" is the same as 0
func gapExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		v, err := parseLength(t, "normal")
		if err != nil {
			return err
		}
		if v.Keyword == "normal" {
			v = pr.Zero
		}
		out[prop] = v
		return nil
	}
}

func expandGap(terms []*Term, out pr.Properties) error {
	if len(terms) == 0 || len(terms) > 2 {
		return invalid(terms)
	}
	if err := gapExpander(pr.PRowGap)(terms[:1], out); err != nil {
		return err
	}
	return gapExpander(pr.PColumnGap)(terms[len(terms)-1:], out)
}

// boxShorthand expands 1 to 4 values, in top, right, bottom, left order.
func boxShorthand(top, right, bottom, left pr.KnownProp, allowAuto bool) expander {
	return func(terms []*Term, out pr.Properties) error {
		var kws []string
		if allowAuto {
			kws = []string{"auto"}
		}
		values := make([]pr.Value, len(terms))
		for i, t := range terms {
			v, err := parseLength(t, kws...)
			if err != nil {
				return err
			}
			values[i] = v
		}
		var t, r, b, l pr.Value
		switch len(values) {
		case 1:
			t, r, b, l = values[0], values[0], values[0], values[0]
		case 2:
			t, r, b, l = values[0], values[1], values[0], values[1]
		case 3:
			t, r, b, l = values[0], values[1], values[2], values[1]
		case 4:
			t, r, b, l = values[0], values[1], values[2], values[3]
		default:
			return invalid(terms)
		}
		out[top], out[right], out[bottom], out[left] = t, r, b, l
		return nil
	}
}

var borderStyles = utils.NewSet("none", "hidden", "solid", "dashed", "dotted", "double")

var borderWidths = map[string]utils.Fl{"thin": 1, "medium": 3, "thick": 5}

func parseBorder(terms []*Term) (pr.Border, error) {
	out := pr.Border{Width: borderWidths["medium"], Style: "none", Color: "black"}
	for _, t := range terms {
		kw := ident(t)
		switch {
		case t.Number != nil:
			v, err := parseLength(t)
			if err != nil || v.Unit == pr.Percentage {
				return out, invalid(terms)
			}
			out.Width = utils.Fl(v.Value)
		case borderStyles.Has(kw):
			out.Style = pr.String(kw)
		case borderWidths[kw] != 0:
			out.Width = borderWidths[kw]
		case t.Color != nil:
			out.Color = pr.String(*t.Color)
		case kw != "":
			out.Color = pr.String(kw)
		default:
			return out, invalid(terms)
		}
	}
	return out, nil
}

func borderShorthand(sides ...pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		b, err := parseBorder(terms)
		if err != nil {
			return err
		}
		for _, side := range sides {
			out[side] = b
		}
		return nil
	}
}

// borderComponent updates one field (width, style or color)
// of the four borders.
func borderComponent(field int) expander {
	sides := [4]pr.KnownProp{pr.PBorderTop, pr.PBorderRight, pr.PBorderBottom, pr.PBorderLeft}
	return func(terms []*Term, out pr.Properties) error {
		if len(terms) == 0 || len(terms) > 4 {
			return invalid(terms)
		}
		// top, right, bottom, left indexes in terms
		var order [4]int
		switch len(terms) {
		case 1:
			order = [4]int{0, 0, 0, 0}
		case 2:
			order = [4]int{0, 1, 0, 1}
		case 3:
			order = [4]int{0, 1, 2, 1}
		case 4:
			order = [4]int{0, 1, 2, 3}
		}
		for i, side := range sides {
			b, _ := out[side].(pr.Border)
			if b == (pr.Border{}) {
				b = pr.Border{Width: borderWidths["medium"], Style: "none", Color: "black"}
			}
			t := terms[order[i]]
			switch field {
			case 0:
				v, err := parseLength(t)
				if err != nil {
					if w := borderWidths[ident(t)]; w != 0 {
						v = pr.FToV(w)
					} else {
						return err
					}
				}
				b.Width = utils.Fl(v.Value)
			case 1:
				if !borderStyles.Has(ident(t)) {
					return invalid(terms)
				}
				b.Style = pr.String(ident(t))
			case 2:
				b.Color = pr.String(t.String())
			}
			out[side] = b
		}
		return nil
	}
}

func keywordExpander(prop pr.KnownProp, allowed utils.Set) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		kw := ident(t)
		if !allowed.Has(kw) {
			return invalid(terms)
		}
		if prop == pr.PBreakBefore && kw == "always" {
			kw = "page"
		}
		out[prop] = pr.String(kw)
		return nil
	}
}

func boolExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		switch ident(t) {
		case "true":
			out[prop] = pr.Bool(true)
		case "false":
			out[prop] = pr.Bool(false)
		default:
			return invalid(terms)
		}
		return nil
	}
}

func parseInt(t *Term) (int, bool) {
	if t.Number == nil {
		return 0, false
	}
	v, err := strconv.Atoi(*t.Number)
	return v, err == nil
}

func intExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		v, ok := parseInt(t)
		if !ok || (prop != pr.POrder && v < 1) {
			return invalid(terms)
		}
		out[prop] = pr.Int(v)
		return nil
	}
}

func parseNumber(t *Term) (utils.Fl, bool) {
	if t.Number == nil {
		return 0, false
	}
	v, unit, err := splitNumber(*t.Number)
	return v, err == nil && unit == ""
}

func flexFactorExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		t, err := single(terms)
		if err != nil {
			return err
		}
		v, ok := parseNumber(t)
		if !ok {
			return invalid(terms)
		}
		if v < 0 {
			return pr.ErrNegativeFlexFactor
		}
		out[prop] = pr.Float(v)
		return nil
	}
}

func expandFlex(terms []*Term, out pr.Properties) error {
	if len(terms) == 1 {
		switch ident(terms[0]) {
		case "none":
			out[pr.PFlexGrow], out[pr.PFlexShrink], out[pr.PFlexBasis] = pr.Float(0), pr.Float(0), pr.SAuto
			return nil
		case "auto":
			out[pr.PFlexGrow], out[pr.PFlexShrink], out[pr.PFlexBasis] = pr.Float(1), pr.Float(1), pr.SAuto
			return nil
		}
	}
	grow, shrink, basis := pr.Float(1), pr.Float(1), pr.Zero
	var factors int
	for _, t := range terms {
		if v, ok := parseNumber(t); ok && factors < 2 {
			if v < 0 {
				return pr.ErrNegativeFlexFactor
			}
			if factors == 0 {
				grow = pr.Float(v)
			} else {
				shrink = pr.Float(v)
			}
			factors++
			continue
		}
		v, err := parseLength(t, "auto", "content")
		if err != nil {
			return err
		}
		basis = v
	}
	out[pr.PFlexGrow], out[pr.PFlexShrink], out[pr.PFlexBasis] = grow, shrink, basis
	return nil
}

func expandFlexFlow(terms []*Term, out pr.Properties) error {
	for _, t := range terms {
		kw := ident(t)
		if keywords[pr.PFlexDirection].Has(kw) {
			out[pr.PFlexDirection] = pr.String(kw)
		} else if keywords[pr.PFlexWrap].Has(kw) {
			out[pr.PFlexWrap] = pr.String(kw)
		} else {
			return invalid(terms)
		}
	}
	return nil
}

// accepts a number or "w / h"
func expandAspectRatio(terms []*Term, out pr.Properties) error {
	if len(terms) == 1 && ident(terms[0]) == "auto" {
		out[pr.PAspectRatio] = pr.Float(0)
		return nil
	}
	var ratio utils.Fl
	switch len(terms) {
	case 1:
		v, ok := parseNumber(terms[0])
		if !ok {
			return invalid(terms)
		}
		ratio = v
	case 3:
		w, ok1 := parseNumber(terms[0])
		h, ok2 := parseNumber(terms[2])
		if !ok1 || !ok2 || !terms[1].Slash || h == 0 {
			return invalid(terms)
		}
		ratio = w / h
	default:
		return invalid(terms)
	}
	if ratio < 0 {
		return invalid(terms)
	}
	out[pr.PAspectRatio] = pr.Float(ratio)
	return nil
}

var angleUnits = map[string]float64{
	"":     1,
	"rad":  1,
	"deg":  math.Pi / 180,
	"grad": math.Pi / 200,
	"turn": 2 * math.Pi,
}

func expandRotation(terms []*Term, out pr.Properties) error {
	t, err := single(terms)
	if err != nil {
		return err
	}
	if t.Number == nil {
		return invalid(terms)
	}
	v, unit, err := splitNumber(*t.Number)
	if err != nil {
		return err
	}
	factor, ok := angleUnits[unit]
	if !ok {
		return invalid(terms)
	}
	out[pr.PRotationAngle] = pr.Float(float64(v) * factor)
	return nil
}

func expandLineHeight(terms []*Term, out pr.Properties) error {
	t, err := single(terms)
	if err != nil {
		return err
	}
	if ident(t) == "normal" {
		out[pr.PLeading] = pr.InitialValues[pr.PLeading]
		return nil
	}
	if v, ok := parseNumber(t); ok {
		out[pr.PLeading] = pr.Leading{Multiplied: true, Value: pr.Float(v)}
		return nil
	}
	v, err := parseLength(t)
	if err != nil {
		return err
	}
	if v.Unit == pr.Percentage {
		out[pr.PLeading] = pr.Leading{Multiplied: true, Value: v.Value / 100}
	} else {
		out[pr.PLeading] = pr.Leading{Value: v.Value}
	}
	return nil
}

func expandColumnWidths(terms []*Term, out pr.Properties) error {
	var values pr.Values
	for _, t := range terms {
		if t.Comma {
			continue
		}
		v, err := parseLength(t, "auto")
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	out[pr.PColumnWidths] = values
	return nil
}

func parseBreadth(t *Term) (pr.TrackBreadth, error) {
	switch ident(t) {
	case "auto":
		return pr.TrackBreadth{Kind: pr.BreadthAuto}, nil
	case "min-content":
		return pr.TrackBreadth{Kind: pr.BreadthMinContent}, nil
	case "max-content":
		return pr.TrackBreadth{Kind: pr.BreadthMaxContent}, nil
	}
	if t.Number != nil {
		v, unit, err := splitNumber(*t.Number)
		if err != nil {
			return pr.TrackBreadth{}, err
		}
		if v < 0 {
			return pr.TrackBreadth{}, invalid([]*Term{t})
		}
		if unit == "fr" {
			return pr.TrackBreadth{Kind: pr.BreadthFlex, Value: v}, nil
		}
	}
	length, err := parseLength(t)
	if err != nil {
		return pr.TrackBreadth{}, err
	}
	if length.Unit == pr.Percentage {
		return pr.TrackBreadth{Kind: pr.BreadthPercent, Value: utils.Fl(length.Value)}, nil
	}
	return pr.TrackBreadth{Kind: pr.BreadthFixed, Value: utils.Fl(length.Value)}, nil
}

// funcArgs splits arguments on commas
func funcArgs(args []*Term) [][]*Term {
	var out [][]*Term
	current := []*Term{}
	for _, a := range args {
		if a.Comma {
			out = append(out, current)
			current = []*Term{}
			continue
		}
		current = append(current, a)
	}
	return append(out, current)
}

func parseTracks(terms []*Term) (pr.TrackSizes, error) {
	var out pr.TrackSizes
	for _, t := range terms {
		if t.Func == nil {
			b, err := parseBreadth(t)
			if err != nil {
				return nil, err
			}
			out = append(out, pr.NewTrackSize(b))
			continue
		}
		args := funcArgs(t.Func.Args)
		switch strings.ToLower(t.Func.Name) {
		case "minmax":
			if len(args) != 2 || len(args[0]) != 1 || len(args[1]) != 1 {
				return nil, invalid(terms)
			}
			min, err := parseBreadth(args[0][0])
			if err != nil {
				return nil, err
			}
			max, err := parseBreadth(args[1][0])
			if err != nil {
				return nil, err
			}
			if min.Kind == pr.BreadthFlex {
				return nil, invalid(terms)
			}
			out = append(out, pr.TrackSize{Min: min, Max: max})
		case "fit-content":
			if len(args) != 1 || len(args[0]) != 1 {
				return nil, invalid(terms)
			}
			limit, err := parseBreadth(args[0][0])
			if err != nil {
				return nil, err
			}
			if limit.Kind != pr.BreadthFixed && limit.Kind != pr.BreadthPercent {
				return nil, invalid(terms)
			}
			out = append(out, pr.NewFitContent(limit))
		case "repeat":
			if len(args) != 2 || len(args[0]) != 1 {
				return nil, invalid(terms)
			}
			count, ok := parseInt(args[0][0])
			if !ok || count < 1 {
				return nil, invalid(terms)
			}
			pattern, err := parseTracks(args[1])
			if err != nil {
				return nil, err
			}
			for i := 0; i < count; i++ {
				out = append(out, pattern...)
			}
		default:
			return nil, invalid(terms)
		}
	}
	return out, nil
}

func tracksExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		if len(terms) == 1 && ident(terms[0]) == "none" {
			out[prop] = pr.TrackSizes(nil)
			return nil
		}
		tracks, err := parseTracks(terms)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			return invalid(terms)
		}
		out[prop] = tracks
		return nil
	}
}

func parseGridLine(terms []*Term) (pr.GridLine, error) {
	switch len(terms) {
	case 1:
		if ident(terms[0]) == "auto" {
			return pr.GridLine{}, nil
		}
		if v, ok := parseInt(terms[0]); ok && v > 0 {
			return pr.GridLine{Line: v}, nil
		}
	case 2:
		if ident(terms[0]) == "span" {
			if v, ok := parseInt(terms[1]); ok && v > 0 {
				return pr.GridLine{Span: v}, nil
			}
		}
	}
	return pr.GridLine{}, invalid(terms)
}

func gridLineExpander(prop pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		gl, err := parseGridLine(terms)
		if err != nil {
			return err
		}
		out[prop] = gl
		return nil
	}
}

func gridShorthand(start, end pr.KnownProp) expander {
	return func(terms []*Term, out pr.Properties) error {
		slash := -1
		for i, t := range terms {
			if t.Slash {
				slash = i
			}
		}
		if slash == -1 {
			gl, err := parseGridLine(terms)
			if err != nil {
				return err
			}
			out[start], out[end] = gl, pr.GridLine{}
			return nil
		}
		gs, err := parseGridLine(terms[:slash])
		if err != nil {
			return err
		}
		ge, err := parseGridLine(terms[slash+1:])
		if err != nil {
			return err
		}
		out[start], out[end] = gs, ge
		return nil
	}
}
