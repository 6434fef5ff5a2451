package layout

import (
	"sort"

	"github.com/benoitkugler/boxlayout/geom"
	pr "github.com/benoitkugler/boxlayout/properties"
	"github.com/benoitkugler/boxlayout/utils"
)

// FlexItemInfo is the resolved margin box of a flex item, relative to the
// content box of its container.
type FlexItemInfo struct {
	Renderer  Renderer
	Rectangle geom.Rectangle
}

// FlexLine is one line of a flex container, in layout order.
type FlexLine struct {
	Items     []FlexItemInfo
	CrossSize Fl
	// NextPage is the index of the first item left to the next page,
	// or len(Items). It is only smaller for column containers taller
	// than the page.
	NextPage int
}

// FlexItemCalculationInfo stores the state of one item while
// the flexible lengths are resolved.
// Sizes are content box sizes, unless noted otherwise.
type FlexItemCalculationInfo struct {
	renderer Renderer

	flexBaseSize         Fl
	hypotheticalMainSize Fl
	flexGrow, flexShrink Fl
	// automatic or explicit bounds of the main size
	minContent, maxContent Fl
	minCross, maxCross     Fl

	// margins, borders and paddings along each axis
	mainDecorations, crossDecorations Fl

	mainSize              Fl
	hypotheticalCrossSize Fl
	crossSize             Fl
	// explicitCross is true if the item cross size is set,
	// which prevents stretching
	explicitCross bool
	alignSelf     string

	frozen                 bool
	targetMainSize         Fl
	scaledFlexShrinkFactor Fl

	xShift, yShift Fl
}

func (info *FlexItemCalculationInfo) outerMain(size Fl) Fl { return size + info.mainDecorations }

func (info *FlexItemCalculationInfo) outerCross() Fl { return info.crossSize + info.crossDecorations }

type flexLine struct {
	items     []*FlexItemCalculationInfo
	crossSize Fl
	// position of the line along the cross axis
	crossShift Fl
	// number of items kept on the current page, 0 for all
	pageCount int
}

// flexAlgorithm holds the inputs shared by the phases.
type flexAlgorithm struct {
	env       *Env
	container Renderer
	area      geom.Rectangle

	row, mainReverse, wrapReverse, singleLine bool

	// container main size, or -1 if indefinite
	mainSize Fl
	// container cross size, or -1 if indefinite
	crossSize Fl
	// budget used to break lines when mainSize is indefinite
	lineBudget Fl

	mainGap, crossGap Fl
	// forceStartOnTop disables the auto alignment of the first line
	forceStartOnTop bool
}

// CalculateChildrenRectangles runs the flex layout algorithm on the children of
// `container`, whose content box is `flexArea`. The height of `flexArea` is
// the space left on the current page.
// An error is returned for negative flex factors.
func CalculateChildrenRectangles(flexArea geom.Rectangle, container Renderer, env *Env) ([]FlexLine, error) {
	return calculateFlexLines(flexArea, definiteContentHeight(container), container, env, false)
}

// definiteContentHeight returns the height of the content box fixed by the
// style, or -1.
func definiteContentHeight(r Renderer) Fl {
	b := r.Base()
	st := b.Style()
	h, ok := st.GetHeight().Resolve(-1)
	if !ok {
		return -1
	}
	if st.GetBoxSizing() == "border-box" {
		h -= b.borderWidths().Vertical() + b.paddings(-1).Vertical()
	}
	if max, ok := st.GetMaxHeight().Resolve(-1); ok {
		h = minF(h, max)
	}
	if min, ok := st.GetMinHeight().Resolve(-1); ok {
		h = maxF(h, min)
	}
	return maxF(h, 0)
}

func calculateFlexLines(flexArea geom.Rectangle, definiteHeight Fl, container Renderer, env *Env, forceStartOnTop bool) ([]FlexLine, error) {
	if env == nil {
		env = NewEnv(nil, nil)
	}
	st := container.Base().Style()
	direction := st.GetFlexDirection()
	algo := flexAlgorithm{
		env:             env,
		container:       container,
		area:            flexArea,
		row:             direction == "row" || direction == "row-reverse",
		mainReverse:     direction == "row-reverse" || direction == "column-reverse",
		wrapReverse:     st.GetFlexWrap() == "wrap-reverse",
		singleLine:      st.GetFlexWrap() == "nowrap",
		forceStartOnTop: forceStartOnTop,
	}
	rowGap := st.GetRowGap().ResolveOr(flexArea.Width, 0)
	columnGap := st.GetColumnGap().ResolveOr(flexArea.Width, 0)

	// phase 1: main size of the container
	if algo.row {
		algo.mainSize = flexArea.Width
		algo.crossSize = definiteHeight
		algo.lineBudget = algo.mainSize
		algo.mainGap, algo.crossGap = columnGap, rowGap
	} else {
		algo.mainSize = definiteHeight
		algo.crossSize = flexArea.Width
		algo.lineBudget = definiteHeight
		if definiteHeight < 0 {
			// columns wrap at the page bottom
			algo.lineBudget = flexArea.Height
		}
		algo.mainGap, algo.crossGap = rowGap, columnGap
	}

	// phase 2: flex base size and hypothetical main size
	items, err := algo.createItems()
	if err != nil {
		return nil, err
	}

	// phase 3: collect into lines
	lines := algo.collectLines(items)

	// phase 4: resolve flexible lengths
	for _, line := range lines {
		algo.resolveFlexibleLengths(line.items, algo.mainSize)
	}
	// column content taller than the page: the items fitting on the page
	// are resolved again against the page height
	pageHeight := flexArea.Height
	if !algo.row && !algo.mainReverse && pageHeight > 0 && algo.mainSize > pageHeight+utils.Epsilon {
		for _, line := range lines {
			algo.repackLine(line, pageHeight)
		}
	}

	// phase 5: hypothetical cross sizes
	for _, item := range items {
		algo.determineHypotheticalCrossSize(item)
	}

	// phase 6: cross size of the lines
	algo.calculateLinesCrossSize(lines)

	// phase 7: stretched lines
	algo.stretchLines(lines)

	// phase 8: used cross size of the items
	for _, line := range lines {
		for _, item := range line.items {
			algo.determineUsedCrossSize(item, line.crossSize)
		}
	}

	// phase 9 and 12 (main gaps): main axis alignment
	for _, line := range lines {
		if line.pageCount == 0 {
			algo.justifyContent(line.items, algo.mainSize)
			continue
		}
		visible := line.items[:line.pageCount]
		algo.justifyContent(visible, pageHeight)
		algo.pushBelow(visible, line.items[line.pageCount:], pageHeight)
	}

	// phase 11 and 12 (cross gaps): line positions
	algo.alignContent(lines)

	// phase 10: cross axis alignment of the items in their line
	for _, line := range lines {
		algo.alignItems(line)
	}

	return algo.toFlexLines(lines), nil
}

// orderedChildren returns the children sorted by their order property.
func orderedChildren(container Renderer) []Renderer {
	children := append([]Renderer(nil), container.Base().Children...)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Base().Style().GetOrder() < children[j].Base().Style().GetOrder()
	})
	return children
}

func (algo *flexAlgorithm) createItems() ([]*FlexItemCalculationInfo, error) {
	children := orderedChildren(algo.container)
	out := make([]*FlexItemCalculationInfo, 0, len(children))
	containerStyle := algo.container.Base().Style()
	for _, child := range children {
		b := child.Base()
		st := b.Style()
		grow, shrink := Fl(st.GetFlexGrow()), Fl(st.GetFlexShrink())
		if grow < 0 || shrink < 0 {
			return nil, pr.ErrNegativeFlexFactor
		}
		info := &FlexItemCalculationInfo{renderer: child, flexGrow: grow, flexShrink: shrink}
		ref := algo.area.Width
		insets := b.insets(ref)
		if algo.row {
			info.mainDecorations, info.crossDecorations = insets.Horizontal(), insets.Vertical()
		} else {
			info.mainDecorations, info.crossDecorations = insets.Vertical(), insets.Horizontal()
		}
		info.alignSelf = string(st.GetAlignSelf())
		if info.alignSelf == "auto" {
			info.alignSelf = string(containerStyle.GetAlignItems())
		}

		mainSize, hasMain := algo.specifiedMainSize(child)
		crossSize, hasCross := algo.specifiedCrossSize(child)
		info.explicitCross = hasCross
		info.minCross, info.maxCross = algo.crossBounds(child)
		ratio := Fl(st.GetAspectRatio())

		// flex base size
		basis := st.GetFlexBasis()
		var base Fl
		if v, ok := basis.Resolve(algo.mainSize); ok {
			base = v
			if st.GetBoxSizing() == "border-box" {
				base -= algo.mainPaddingsBorders(child)
			}
		} else if basis.IsAuto() && hasMain {
			base = mainSize
		} else if ratio > 0 && hasCross {
			base = algo.transferred(crossSize, ratio)
		} else {
			base = algo.contentMainSize(child, info, false)
		}
		info.flexBaseSize = maxF(base, 0)

		info.minContent, info.maxContent = algo.mainBounds(child, info, mainSize, hasMain, crossSize, hasCross, ratio)
		info.hypotheticalMainSize = utils.Clamp(info.flexBaseSize, info.minContent, info.maxContent)
		out = append(out, info)
	}
	return out, nil
}

func (algo *flexAlgorithm) mainPaddingsBorders(child Renderer) Fl {
	b := child.Base()
	if algo.row {
		return b.borderWidths().Horizontal() + b.paddings(algo.area.Width).Horizontal()
	}
	return b.borderWidths().Vertical() + b.paddings(algo.area.Width).Vertical()
}

func (algo *flexAlgorithm) crossPaddingsBorders(child Renderer) Fl {
	b := child.Base()
	if algo.row {
		return b.borderWidths().Vertical() + b.paddings(algo.area.Width).Vertical()
	}
	return b.borderWidths().Horizontal() + b.paddings(algo.area.Width).Horizontal()
}

// resolveSize resolves a width or height value of child, in content box terms.
func resolveSize(child Renderer, v pr.Value, reference Fl, decorations Fl) (Fl, bool) {
	size, ok := v.Resolve(reference)
	if !ok {
		return 0, false
	}
	if child.Base().Style().GetBoxSizing() == "border-box" {
		size -= decorations
	}
	return maxF(size, 0), true
}

func (algo *flexAlgorithm) specifiedMainSize(child Renderer) (Fl, bool) {
	st := child.Base().Style()
	if algo.row {
		return resolveSize(child, st.GetWidth(), algo.area.Width, algo.mainPaddingsBorders(child))
	}
	return resolveSize(child, st.GetHeight(), algo.mainSize, algo.mainPaddingsBorders(child))
}

func (algo *flexAlgorithm) specifiedCrossSize(child Renderer) (Fl, bool) {
	st := child.Base().Style()
	if algo.row {
		return resolveSize(child, st.GetHeight(), algo.crossSize, algo.crossPaddingsBorders(child))
	}
	return resolveSize(child, st.GetWidth(), algo.area.Width, algo.crossPaddingsBorders(child))
}

func (algo *flexAlgorithm) crossBounds(child Renderer) (min, max Fl) {
	st := child.Base().Style()
	minV, maxV := st.GetMinHeight(), st.GetMaxHeight()
	ref := algo.crossSize
	if !algo.row {
		minV, maxV = st.GetMinWidth(), st.GetMaxWidth()
		ref = algo.area.Width
	}
	decorations := algo.crossPaddingsBorders(child)
	min, _ = resolveSize(child, minV, ref, decorations)
	max = geom.InfiniteHeight
	if v, ok := resolveSize(child, maxV, ref, decorations); ok {
		max = v
	}
	return min, max
}

// transferred returns the main size matching the given cross size
// through the aspect ratio (width / height).
func (algo *flexAlgorithm) transferred(cross, ratio Fl) Fl {
	if algo.row {
		return cross * ratio
	}
	return cross / ratio
}

// contentMainSize returns the max-content (or min-content) main size of child.
func (algo *flexAlgorithm) contentMainSize(child Renderer, info *FlexItemCalculationInfo, minContent bool) Fl {
	if algo.row {
		mm := child.MinMaxWidth(algo.env)
		if minContent {
			return mm.MinWidth
		}
		return mm.MaxWidth
	}
	// in column direction, the content height is measured at the cross size
	crossOuter := algo.area.Width
	if cross, ok := algo.specifiedCrossSize(child); ok {
		crossOuter = cross + info.crossDecorations
	}
	return measureOuterHeight(child, crossOuter, algo.env) - info.mainDecorations
}

// mainBounds returns the min and max main sizes, resolving the
// automatic minimum size.
func (algo *flexAlgorithm) mainBounds(child Renderer, info *FlexItemCalculationInfo, mainSize Fl, hasMain bool,
	crossSize Fl, hasCross bool, ratio Fl,
) (min, max Fl) {
	st := child.Base().Style()
	minV, maxV := st.GetMinWidth(), st.GetMaxWidth()
	if !algo.row {
		minV, maxV = st.GetMinHeight(), st.GetMaxHeight()
	}
	decorations := algo.mainPaddingsBorders(child)
	max = geom.InfiniteHeight
	if v, ok := resolveSize(child, maxV, algo.mainSize, decorations); ok {
		max = v
	}
	if v, ok := resolveSize(child, minV, algo.mainSize, decorations); ok {
		return v, maxF(v, max)
	}
	// automatic minimum size
	if st.GetOverflow() == "hidden" {
		return 0, max
	}
	var content Fl
	if ratio > 0 && hasCross {
		content = algo.transferred(crossSize, ratio)
	} else {
		content = algo.contentMainSize(child, info, true)
	}
	content = minF(content, max)
	if hasMain {
		min = minF(mainSize, content)
	} else if ratio > 0 && hasCross {
		// transferred size suggestion
		min = minF(content, algo.transferred(crossSize, ratio))
	} else {
		min = content
	}
	return maxF(min, 0), max
}

// measureOuterHeight lays child out at the given outer width, with an
// unconstrained height, and returns its outer height.
// Results are cached on the renderer.
func measureOuterHeight(child Renderer, outerWidth Fl, env *Env) Fl {
	b := child.Base()
	if h, ok := b.crossSizeCache[outerWidth]; ok {
		return h
	}
	ctx := LayoutContext{
		Area:          geom.Area{BBox: geom.Rectangle{Width: outerWidth, Height: geom.InfiniteHeight}},
		Floats:        &FloatAreas{},
		ClippedHeight: true,
		Env:           env,
		FlexItem:      &FlexItemSize{Width: outerWidth},
	}
	var h Fl
	if res := child.Layout(ctx); res.OccupiedArea != nil {
		h = res.OccupiedArea.BBox.Height
	}
	if b.crossSizeCache == nil {
		b.crossSizeCache = make(map[Fl]Fl)
	}
	b.crossSizeCache[outerWidth] = h
	return h
}

func (algo *flexAlgorithm) collectLines(items []*FlexItemCalculationInfo) []*flexLine {
	if algo.singleLine || algo.lineBudget < 0 {
		return []*flexLine{{items: items}}
	}
	var (
		lines   []*flexLine
		current []*FlexItemCalculationInfo
		used    Fl
	)
	for _, item := range items {
		size := item.outerMain(item.hypotheticalMainSize)
		gap := algo.mainGap
		if len(current) == 0 {
			gap = 0
		}
		if len(current) != 0 && used+gap+size > algo.lineBudget+utils.Epsilon {
			lines = append(lines, &flexLine{items: current})
			current, used, gap = nil, 0, 0
		}
		current = append(current, item)
		used += gap + size
	}
	if len(current) != 0 {
		lines = append(lines, &flexLine{items: current})
	}
	return lines
}

// resolveFlexibleLengths sets the main size of the items of one line,
// distributing the free space of a container of main size `mainSize`,
// -1 meaning indefinite.
func (algo *flexAlgorithm) resolveFlexibleLengths(items []*FlexItemCalculationInfo, mainSize Fl) {
	if mainSize < 0 {
		for _, item := range items {
			item.mainSize = item.hypotheticalMainSize
		}
		return
	}
	gaps := algo.mainGap * Fl(maxInt(len(items)-1, 0))
	var hypotheticalSum Fl
	for _, item := range items {
		hypotheticalSum += item.outerMain(item.hypotheticalMainSize)
	}
	grow := hypotheticalSum+gaps < mainSize

	// size inflexible items
	for _, item := range items {
		item.frozen = false
		item.targetMainSize = item.flexBaseSize
		factor := item.flexShrink
		if grow {
			factor = item.flexGrow
		}
		if factor == 0 || (grow && item.flexBaseSize > item.hypotheticalMainSize) ||
			(!grow && item.flexBaseSize < item.hypotheticalMainSize) {
			item.frozen = true
			item.targetMainSize = item.hypotheticalMainSize
		}
	}

	remainingFreeSpace := func() Fl {
		out := mainSize - gaps
		for _, item := range items {
			if item.frozen {
				out -= item.outerMain(item.targetMainSize)
			} else {
				out -= item.outerMain(item.flexBaseSize)
			}
		}
		return out
	}
	initialFreeSpace := remainingFreeSpace()

	for {
		var unfrozen []*FlexItemCalculationInfo
		for _, item := range items {
			if !item.frozen {
				unfrozen = append(unfrozen, item)
			}
		}
		if len(unfrozen) == 0 {
			break
		}
		freeSpace := remainingFreeSpace()
		var factorSum Fl
		for _, item := range unfrozen {
			if grow {
				factorSum += item.flexGrow
			} else {
				factorSum += item.flexShrink
			}
		}
		if factorSum < 1 {
			if scaled := initialFreeSpace * factorSum; abs(scaled) < abs(freeSpace) {
				freeSpace = scaled
			}
		}

		if freeSpace != 0 {
			if grow {
				for _, item := range unfrozen {
					item.targetMainSize = item.flexBaseSize + freeSpace*item.flexGrow/factorSum
				}
			} else {
				var scaledSum Fl
				for _, item := range unfrozen {
					item.scaledFlexShrinkFactor = item.flexShrink * item.flexBaseSize
					scaledSum += item.scaledFlexShrinkFactor
				}
				for _, item := range unfrozen {
					item.targetMainSize = item.flexBaseSize
					if scaledSum > 0 {
						item.targetMainSize -= abs(freeSpace) * item.scaledFlexShrinkFactor / scaledSum
					}
				}
			}
		}

		// fix min/max violations
		var totalViolation Fl
		violations := make([]Fl, len(unfrozen))
		for i, item := range unfrozen {
			clamped := utils.Clamp(item.targetMainSize, item.minContent, item.maxContent)
			clamped = maxF(clamped, 0)
			violations[i] = clamped - item.targetMainSize
			totalViolation += violations[i]
			item.targetMainSize = clamped
		}
		for i, item := range unfrozen {
			switch {
			case totalViolation == 0,
				totalViolation > 0 && violations[i] > 0,
				totalViolation < 0 && violations[i] < 0:
				item.frozen = true
			}
		}
	}

	for _, item := range items {
		item.mainSize = item.targetMainSize
	}
}

func (algo *flexAlgorithm) determineHypotheticalCrossSize(item *FlexItemCalculationInfo) {
	child := item.renderer
	var cross Fl
	if c, ok := algo.specifiedCrossSize(child); ok {
		cross = c
	} else if ratio := Fl(item.renderer.Base().Style().GetAspectRatio()); ratio > 0 {
		if algo.row {
			cross = item.mainSize / ratio
		} else {
			cross = item.mainSize * ratio
		}
	} else if algo.row {
		cross = measureOuterHeight(child, item.outerMain(item.mainSize), algo.env) - item.crossDecorations
	} else {
		// shrink to fit the container width
		mm := child.MinMaxWidth(algo.env)
		available := algo.area.Width - item.crossDecorations
		cross = minF(maxF(mm.MinWidth, available), mm.MaxWidth)
	}
	item.hypotheticalCrossSize = maxF(0, utils.Clamp(cross, item.minCross, item.maxCross))
}

func (algo *flexAlgorithm) calculateLinesCrossSize(lines []*flexLine) {
	if algo.singleLine && algo.crossSize >= 0 && len(lines) == 1 {
		lines[0].crossSize = algo.crossSize
		return
	}
	for _, line := range lines {
		var m Fl
		for _, item := range line.items {
			m = maxF(m, item.hypotheticalCrossSize+item.crossDecorations)
		}
		line.crossSize = m
	}
	if algo.singleLine && len(lines) == 1 && algo.row {
		// clamp to the container bounds
		st := algo.container.Base().Style()
		if min, ok := st.GetMinHeight().Resolve(-1); ok {
			lines[0].crossSize = maxF(lines[0].crossSize, min)
		}
		if max, ok := st.GetMaxHeight().Resolve(-1); ok {
			lines[0].crossSize = minF(lines[0].crossSize, max)
		}
	}
}

// stretchLines distributes the cross space left among the lines fitting
// on the current page.
func (algo *flexAlgorithm) stretchLines(lines []*flexLine) {
	alignContent := algo.container.Base().Style().GetAlignContent()
	if algo.crossSize < 0 || (alignContent != "stretch" && alignContent != "normal") || algo.singleLine {
		return
	}
	free := algo.crossSize - algo.crossGap*Fl(maxInt(len(lines)-1, 0))
	for _, line := range lines {
		free -= line.crossSize
	}
	if free <= 0 {
		return
	}
	fitting := len(lines)
	if algo.row {
		// lines beyond the page bottom are not stretched
		fitting = 0
		var used Fl
		for i, line := range lines {
			if i > 0 {
				used += algo.crossGap
			}
			used += line.crossSize
			if used > algo.area.Height+utils.Epsilon {
				break
			}
			fitting++
		}
	}
	if fitting == 0 {
		return
	}
	share := free / Fl(fitting)
	for _, line := range lines[:fitting] {
		line.crossSize += share
	}
}

func (algo *flexAlgorithm) determineUsedCrossSize(item *FlexItemCalculationInfo, lineCrossSize Fl) {
	if (item.alignSelf == "stretch" || item.alignSelf == "normal") && !item.explicitCross {
		size := lineCrossSize - item.crossDecorations
		item.crossSize = maxF(0, utils.Clamp(size, item.minCross, item.maxCross))
		return
	}
	item.crossSize = item.hypotheticalCrossSize
}

// distributeSpace returns the offset of the first element and the space
// added between elements, for `count` elements and `free` free space.
func distributeSpace(mode string, free Fl, count int) (start, between Fl) {
	if count == 0 {
		return 0, 0
	}
	n := Fl(count)
	switch mode {
	case "flex-end", "end", "right":
		return free, 0
	case "center":
		return free / 2, 0
	case "space-between":
		if free < 0 || count == 1 {
			return 0, 0
		}
		return 0, free / (n - 1)
	case "space-around":
		if free < 0 {
			return free / 2, 0
		}
		return free / n / 2, free / n
	case "space-evenly":
		if free < 0 {
			return free / 2, 0
		}
		return free / (n + 1), free / (n + 1)
	default: // flex-start, start, left, normal, stretch
		return 0, 0
	}
}

// repackLine keeps on the page the first items of line fitting in
// pageHeight, at least one, and resolves their lengths against it.
func (algo *flexAlgorithm) repackLine(line *flexLine, pageHeight Fl) {
	var cursor Fl
	count := 0
	for i, item := range line.items {
		if i > 0 {
			cursor += algo.mainGap
		}
		cursor += item.outerMain(item.mainSize)
		if i > 0 && cursor > pageHeight+utils.Epsilon {
			break
		}
		count = i + 1
	}
	if count == len(line.items) {
		return
	}
	line.pageCount = count
	algo.resolveFlexibleLengths(line.items[:count], pageHeight)
}

// pushBelow moves the items left to the next page after the page bottom.
func (algo *flexAlgorithm) pushBelow(visible, rest []*FlexItemCalculationInfo, pageHeight Fl) {
	var end Fl
	for _, item := range visible {
		end += item.yShift + item.outerMain(item.mainSize)
	}
	for i, item := range rest {
		item.yShift = algo.mainGap
		if i == 0 {
			item.yShift = maxF(pageHeight-end, 0)
		}
	}
}

// justifyContent sets the main axis shifts of the items of one line,
// distributing the free space left in mainSize.
// Shifts are offsets from the end of the previous item.
func (algo *flexAlgorithm) justifyContent(items []*FlexItemCalculationInfo, mainSize Fl) {
	used := algo.mainGap * Fl(maxInt(len(items)-1, 0))
	for _, item := range items {
		used += item.outerMain(item.mainSize)
	}
	var free Fl
	if mainSize >= 0 {
		free = mainSize - used
	}
	mode := string(algo.container.Base().Style().GetJustifyContent())
	start, between := distributeSpace(mode, free, len(items))
	for i, item := range items {
		shift := between + algo.mainGap
		if i == 0 {
			shift = start
		}
		if algo.row {
			item.xShift = shift
		} else {
			item.yShift = shift
		}
	}
}

// alignContent computes the cross position of each line.
func (algo *flexAlgorithm) alignContent(lines []*flexLine) {
	used := algo.crossGap * Fl(maxInt(len(lines)-1, 0))
	for _, line := range lines {
		used += line.crossSize
	}
	var free Fl
	if algo.crossSize >= 0 && !algo.singleLine {
		free = algo.crossSize - used
	}
	mode := string(algo.container.Base().Style().GetAlignContent())
	if algo.forceStartOnTop {
		mode = "flex-start"
	}
	start, between := distributeSpace(mode, free, len(lines))
	nextLineShift := start
	for _, line := range lines {
		line.crossShift = nextLineShift
		nextLineShift += line.crossSize + between + algo.crossGap
	}
	if algo.wrapReverse {
		total := used
		if algo.crossSize >= 0 && !algo.singleLine {
			total = algo.crossSize
		}
		for _, line := range lines {
			line.crossShift = total - line.crossShift - line.crossSize
		}
	}
}

// alignItems sets the cross shifts of the items of line, relative to the line start.
func (algo *flexAlgorithm) alignItems(line *flexLine) {
	for _, item := range line.items {
		free := line.crossSize - item.outerCross()
		var shift Fl
		switch item.alignSelf {
		case "flex-end", "end", "self-end":
			shift = free
		case "center":
			shift = free / 2
		default: // flex-start, stretch, baseline
		}
		if algo.wrapReverse {
			shift = free - shift
		}
		if algo.row {
			item.yShift = shift
		} else {
			item.xShift = shift
		}
	}
}

func (algo *flexAlgorithm) toFlexLines(lines []*flexLine) []FlexLine {
	out := make([]FlexLine, len(lines))
	for i, line := range lines {
		items := make([]FlexItemInfo, len(line.items))
		var cursor, total Fl
		for _, item := range line.items {
			total += item.outerMain(item.mainSize)
			if algo.row {
				total += item.xShift
			} else {
				total += item.yShift
			}
		}
		extent := algo.mainSize
		if extent < 0 {
			extent = total
		}
		for j, item := range line.items {
			mainOuter := item.outerMain(item.mainSize)
			var mainShift, crossShift Fl
			if algo.row {
				mainShift, crossShift = item.xShift, item.yShift
			} else {
				mainShift, crossShift = item.yShift, item.xShift
			}
			cursor += mainShift
			mainPos := cursor
			if algo.mainReverse {
				mainPos = extent - cursor - mainOuter
			}
			cursor += mainOuter
			crossPos := line.crossShift + crossShift
			var rect geom.Rectangle
			if algo.row {
				rect = geom.Rectangle{X: mainPos, Y: crossPos, Width: mainOuter, Height: item.outerCross()}
			} else {
				rect = geom.Rectangle{X: crossPos, Y: mainPos, Width: item.outerCross(), Height: mainOuter}
			}
			items[j] = FlexItemInfo{Renderer: item.renderer, Rectangle: rect}
		}
		if algo.mainReverse {
			// keep the visual order
			for l, r := 0, len(items)-1; l < r; l, r = l+1, r-1 {
				items[l], items[r] = items[r], items[l]
			}
		}
		nextPage := len(items)
		if line.pageCount > 0 {
			nextPage = line.pageCount
		}
		out[i] = FlexLine{Items: items, CrossSize: line.crossSize, NextPage: nextPage}
	}
	if algo.wrapReverse {
		for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
			out[l], out[r] = out[r], out[l]
		}
	}
	return out
}

func abs(v Fl) Fl {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int { return utils.MaxInt(a, b) }
