package properties

// Typed accessors, one pair per property.

func (s Style) GetWidth() Value { return s.Get(PWidth).(Value) }
func (s Properties) SetWidth(v Value) { s[PWidth] = v }

func (s Style) GetHeight() Value { return s.Get(PHeight).(Value) }
func (s Properties) SetHeight(v Value) { s[PHeight] = v }

func (s Style) GetMinWidth() Value { return s.Get(PMinWidth).(Value) }
func (s Properties) SetMinWidth(v Value) { s[PMinWidth] = v }

func (s Style) GetMaxWidth() Value { return s.Get(PMaxWidth).(Value) }
func (s Properties) SetMaxWidth(v Value) { s[PMaxWidth] = v }

func (s Style) GetMinHeight() Value { return s.Get(PMinHeight).(Value) }
func (s Properties) SetMinHeight(v Value) { s[PMinHeight] = v }

func (s Style) GetMaxHeight() Value { return s.Get(PMaxHeight).(Value) }
func (s Properties) SetMaxHeight(v Value) { s[PMaxHeight] = v }

func (s Style) GetBoxSizing() String { return s.Get(PBoxSizing).(String) }
func (s Properties) SetBoxSizing(v String) { s[PBoxSizing] = v }

func (s Style) GetMarginTop() Value { return s.Get(PMarginTop).(Value) }
func (s Properties) SetMarginTop(v Value) { s[PMarginTop] = v }

func (s Style) GetMarginRight() Value { return s.Get(PMarginRight).(Value) }
func (s Properties) SetMarginRight(v Value) { s[PMarginRight] = v }

func (s Style) GetMarginBottom() Value { return s.Get(PMarginBottom).(Value) }
func (s Properties) SetMarginBottom(v Value) { s[PMarginBottom] = v }

func (s Style) GetMarginLeft() Value { return s.Get(PMarginLeft).(Value) }
func (s Properties) SetMarginLeft(v Value) { s[PMarginLeft] = v }

func (s Style) GetPaddingTop() Value { return s.Get(PPaddingTop).(Value) }
func (s Properties) SetPaddingTop(v Value) { s[PPaddingTop] = v }

func (s Style) GetPaddingRight() Value { return s.Get(PPaddingRight).(Value) }
func (s Properties) SetPaddingRight(v Value) { s[PPaddingRight] = v }

func (s Style) GetPaddingBottom() Value { return s.Get(PPaddingBottom).(Value) }
func (s Properties) SetPaddingBottom(v Value) { s[PPaddingBottom] = v }

func (s Style) GetPaddingLeft() Value { return s.Get(PPaddingLeft).(Value) }
func (s Properties) SetPaddingLeft(v Value) { s[PPaddingLeft] = v }

func (s Style) GetBorderTop() Border { return s.Get(PBorderTop).(Border) }
func (s Properties) SetBorderTop(v Border) { s[PBorderTop] = v }

func (s Style) GetBorderRight() Border { return s.Get(PBorderRight).(Border) }
func (s Properties) SetBorderRight(v Border) { s[PBorderRight] = v }

func (s Style) GetBorderBottom() Border { return s.Get(PBorderBottom).(Border) }
func (s Properties) SetBorderBottom(v Border) { s[PBorderBottom] = v }

func (s Style) GetBorderLeft() Border { return s.Get(PBorderLeft).(Border) }
func (s Properties) SetBorderLeft(v Border) { s[PBorderLeft] = v }

func (s Style) GetDisplay() String { return s.Get(PDisplay).(String) }
func (s Properties) SetDisplay(v String) { s[PDisplay] = v }

func (s Style) GetFloat() String { return s.Get(PFloat).(String) }
func (s Properties) SetFloat(v String) { s[PFloat] = v }

func (s Style) GetClear() String { return s.Get(PClear).(String) }
func (s Properties) SetClear(v String) { s[PClear] = v }

func (s Style) GetKeepTogether() Bool { return s.Get(PKeepTogether).(Bool) }
func (s Properties) SetKeepTogether(v Bool) { s[PKeepTogether] = v }

func (s Style) GetForcedPlacement() Bool { return s.Get(PForcedPlacement).(Bool) }
func (s Properties) SetForcedPlacement(v Bool) { s[PForcedPlacement] = v }

func (s Style) GetFillAvailableArea() Bool { return s.Get(PFillAvailableArea).(Bool) }
func (s Properties) SetFillAvailableArea(v Bool) { s[PFillAvailableArea] = v }

func (s Style) GetRotationAngle() Float { return s.Get(PRotationAngle).(Float) }
func (s Properties) SetRotationAngle(v Float) { s[PRotationAngle] = v }

func (s Style) GetRotationPointX() Value { return s.Get(PRotationPointX).(Value) }
func (s Properties) SetRotationPointX(v Value) { s[PRotationPointX] = v }

func (s Style) GetRotationPointY() Value { return s.Get(PRotationPointY).(Value) }
func (s Properties) SetRotationPointY(v Value) { s[PRotationPointY] = v }

func (s Style) GetVerticalAlignment() String { return s.Get(PVerticalAlignment).(String) }
func (s Properties) SetVerticalAlignment(v String) { s[PVerticalAlignment] = v }

func (s Style) GetOverflow() String { return s.Get(POverflow).(String) }
func (s Properties) SetOverflow(v String) { s[POverflow] = v }

func (s Style) GetCollapsingMargins() Bool { return s.Get(PCollapsingMargins).(Bool) }
func (s Properties) SetCollapsingMargins(v Bool) { s[PCollapsingMargins] = v }

func (s Style) GetColumnCount() Int { return s.Get(PColumnCount).(Int) }
func (s Properties) SetColumnCount(v Int) { s[PColumnCount] = v }

func (s Style) GetBreakBefore() String { return s.Get(PBreakBefore).(String) }
func (s Properties) SetBreakBefore(v String) { s[PBreakBefore] = v }

func (s Style) GetFlexDirection() String { return s.Get(PFlexDirection).(String) }
func (s Properties) SetFlexDirection(v String) { s[PFlexDirection] = v }

func (s Style) GetFlexWrap() String { return s.Get(PFlexWrap).(String) }
func (s Properties) SetFlexWrap(v String) { s[PFlexWrap] = v }

func (s Style) GetJustifyContent() String { return s.Get(PJustifyContent).(String) }
func (s Properties) SetJustifyContent(v String) { s[PJustifyContent] = v }

func (s Style) GetAlignItems() String { return s.Get(PAlignItems).(String) }
func (s Properties) SetAlignItems(v String) { s[PAlignItems] = v }

func (s Style) GetAlignSelf() String { return s.Get(PAlignSelf).(String) }
func (s Properties) SetAlignSelf(v String) { s[PAlignSelf] = v }

func (s Style) GetAlignContent() String { return s.Get(PAlignContent).(String) }
func (s Properties) SetAlignContent(v String) { s[PAlignContent] = v }

func (s Style) GetFlexGrow() Float { return s.Get(PFlexGrow).(Float) }
func (s Properties) SetFlexGrow(v Float) { s[PFlexGrow] = v }

func (s Style) GetFlexShrink() Float { return s.Get(PFlexShrink).(Float) }
func (s Properties) SetFlexShrink(v Float) { s[PFlexShrink] = v }

func (s Style) GetFlexBasis() Value { return s.Get(PFlexBasis).(Value) }
func (s Properties) SetFlexBasis(v Value) { s[PFlexBasis] = v }

func (s Style) GetOrder() Int { return s.Get(POrder).(Int) }
func (s Properties) SetOrder(v Int) { s[POrder] = v }

func (s Style) GetAspectRatio() Float { return s.Get(PAspectRatio).(Float) }
func (s Properties) SetAspectRatio(v Float) { s[PAspectRatio] = v }

func (s Style) GetRowGap() Value { return s.Get(PRowGap).(Value) }
func (s Properties) SetRowGap(v Value) { s[PRowGap] = v }

func (s Style) GetColumnGap() Value { return s.Get(PColumnGap).(Value) }
func (s Properties) SetColumnGap(v Value) { s[PColumnGap] = v }

func (s Style) GetGridTemplateColumns() TrackSizes { return s.Get(PGridTemplateColumns).(TrackSizes) }
func (s Properties) SetGridTemplateColumns(v TrackSizes) { s[PGridTemplateColumns] = v }

func (s Style) GetGridTemplateRows() TrackSizes { return s.Get(PGridTemplateRows).(TrackSizes) }
func (s Properties) SetGridTemplateRows(v TrackSizes) { s[PGridTemplateRows] = v }

func (s Style) GetGridAutoColumns() TrackSizes { return s.Get(PGridAutoColumns).(TrackSizes) }
func (s Properties) SetGridAutoColumns(v TrackSizes) { s[PGridAutoColumns] = v }

func (s Style) GetGridAutoRows() TrackSizes { return s.Get(PGridAutoRows).(TrackSizes) }
func (s Properties) SetGridAutoRows(v TrackSizes) { s[PGridAutoRows] = v }

func (s Style) GetGridColumnStart() GridLine { return s.Get(PGridColumnStart).(GridLine) }
func (s Properties) SetGridColumnStart(v GridLine) { s[PGridColumnStart] = v }

func (s Style) GetGridColumnEnd() GridLine { return s.Get(PGridColumnEnd).(GridLine) }
func (s Properties) SetGridColumnEnd(v GridLine) { s[PGridColumnEnd] = v }

func (s Style) GetGridRowStart() GridLine { return s.Get(PGridRowStart).(GridLine) }
func (s Properties) SetGridRowStart(v GridLine) { s[PGridRowStart] = v }

func (s Style) GetGridRowEnd() GridLine { return s.Get(PGridRowEnd).(GridLine) }
func (s Properties) SetGridRowEnd(v GridLine) { s[PGridRowEnd] = v }

func (s Style) GetBorderCollapse() String { return s.Get(PBorderCollapse).(String) }
func (s Properties) SetBorderCollapse(v String) { s[PBorderCollapse] = v }

func (s Style) GetBorderSpacing() Value { return s.Get(PBorderSpacing).(Value) }
func (s Properties) SetBorderSpacing(v Value) { s[PBorderSpacing] = v }

func (s Style) GetColspan() Int { return s.Get(PColspan).(Int) }
func (s Properties) SetColspan(v Int) { s[PColspan] = v }

func (s Style) GetRowspan() Int { return s.Get(PRowspan).(Int) }
func (s Properties) SetRowspan(v Int) { s[PRowspan] = v }

func (s Style) GetColumnWidths() Values { return s.Get(PColumnWidths).(Values) }
func (s Properties) SetColumnWidths(v Values) { s[PColumnWidths] = v }

func (s Style) GetSkipFirstHeader() Bool { return s.Get(PSkipFirstHeader).(Bool) }
func (s Properties) SetSkipFirstHeader(v Bool) { s[PSkipFirstHeader] = v }

func (s Style) GetSkipLastFooter() Bool { return s.Get(PSkipLastFooter).(Bool) }
func (s Properties) SetSkipLastFooter(v Bool) { s[PSkipLastFooter] = v }

func (s Style) GetFontSize() Value { return s.Get(PFontSize).(Value) }
func (s Properties) SetFontSize(v Value) { s[PFontSize] = v }

func (s Style) GetLeading() Leading { return s.Get(PLeading).(Leading) }
func (s Properties) SetLeading(v Leading) { s[PLeading] = v }

func (s Style) GetTextAlign() String { return s.Get(PTextAlign).(String) }
func (s Properties) SetTextAlign(v String) { s[PTextAlign] = v }

func (s Style) GetFirstLineIndent() Value { return s.Get(PFirstLineIndent).(Value) }
func (s Properties) SetFirstLineIndent(v Value) { s[PFirstLineIndent] = v }

func (s Style) GetOrphans() Int { return s.Get(POrphans).(Int) }
func (s Properties) SetOrphans(v Int) { s[POrphans] = v }

func (s Style) GetWidows() Int { return s.Get(PWidows).(Int) }
func (s Properties) SetWidows(v Int) { s[PWidows] = v }

func (s Style) GetAutoScale() Bool { return s.Get(PAutoScale).(Bool) }
func (s Properties) SetAutoScale(v Bool) { s[PAutoScale] = v }

func (s Style) GetListStyleType() String { return s.Get(PListStyleType).(String) }
func (s Properties) SetListStyleType(v String) { s[PListStyleType] = v }

func (s Style) GetListSymbolIndent() Value { return s.Get(PListSymbolIndent).(Value) }
func (s Properties) SetListSymbolIndent(v Value) { s[PListSymbolIndent] = v }
