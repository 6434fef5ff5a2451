package layout

// collapseMargin returns the resulting margin of adjoining margins:
// the largest positive margin plus the most negative one.
func collapseMargin(adjoiningMargins []Fl) Fl {
	var maxPos, minNeg Fl
	for _, m := range adjoiningMargins {
		if m > maxPos {
			maxPos = m
		} else if m < minNeg {
			minNeg = m
		}
	}
	return maxPos + minNeg
}

// collapsedTopMargin returns the top margin actually applied by a block
// following a sibling whose bottom margin has already been placed.
func collapsedTopMargin(info *MarginsCollapseInfo, top Fl) Fl {
	if info == nil {
		return top
	}
	prev := info.PreviousBottomMargin
	return collapseMargin([]Fl{prev, top}) - prev
}

// marginsCollapser tracks the bottom margin of the last in-flow child
// of a block with collapsing margins.
type marginsCollapser struct {
	enabled    bool
	lastBottom Fl
}

func (mc *marginsCollapser) info() *MarginsCollapseInfo {
	if !mc.enabled {
		return nil
	}
	return &MarginsCollapseInfo{PreviousBottomMargin: mc.lastBottom}
}

// childPlaced records the bottom margin of a placed child.
func (mc *marginsCollapser) childPlaced(child Renderer, reference Fl) {
	if !mc.enabled {
		return
	}
	mc.lastBottom = child.Base().margins(reference)[2]
}

func (mc *marginsCollapser) reset() { mc.lastBottom = 0 }
