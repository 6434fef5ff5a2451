package layout

import (
	"sort"

	pr "github.com/benoitkugler/boxlayout/properties"
)

// Axis selects the grid tracks to size.
type Axis uint8

const (
	AxisColumn Axis = iota
	AxisRow
)

// Track is a column or a row being sized. A GrowthLimit of -1 means unbounded.
type Track struct {
	Template    pr.TrackSize
	BaseSize    Fl
	GrowthLimit Fl
}

func (t Track) isFlexible() bool { return t.Template.Max.Kind == pr.BreadthFlex }

// GridCell is an item placed in the grid, with zero based
// start indexes.
type GridCell struct {
	Renderer            Renderer
	Column, Row         int
	ColumnSpan, RowSpan int
}

func (c *GridCell) start(axis Axis) int {
	if axis == AxisColumn {
		return c.Column
	}
	return c.Row
}

func (c *GridCell) span(axis Axis) int {
	if axis == AxisColumn {
		return c.ColumnSpan
	}
	return c.RowSpan
}

// Grid is the result of the placement of the items.
type Grid struct {
	Cells         []*GridCell
	Columns, Rows int
}

// TrackContributor provides the size contributions of the items, as outer sizes.
type TrackContributor interface {
	MinContent(cell *GridCell, axis Axis) Fl
	MaxContent(cell *GridCell, axis Axis) Fl
}

// TrackSizingResult stores the resolved tracks of one axis.
type TrackSizingResult struct {
	Tracks []Track
	Gap    Fl
}

// Sizes returns the track sizes.
func (res TrackSizingResult) Sizes() []Fl {
	out := make([]Fl, len(res.Tracks))
	for i, t := range res.Tracks {
		out[i] = t.BaseSize
	}
	return out
}

// Offsets returns the start position of each track, and the total size
// as last element.
func (res TrackSizingResult) Offsets() []Fl {
	out := make([]Fl, len(res.Tracks)+1)
	var pos Fl
	for i, t := range res.Tracks {
		out[i] = pos
		pos += t.BaseSize
		if i+1 < len(res.Tracks) {
			pos += res.Gap
		}
	}
	out[len(res.Tracks)] = pos
	return out
}

// Span returns the size of the tracks [start, start+span), including the gaps.
func (res TrackSizingResult) Span(start, span int) Fl {
	offsets := res.Offsets()
	end := start + span
	if end > len(res.Tracks) {
		end = len(res.Tracks)
	}
	if start >= end {
		return 0
	}
	return offsets[end] - offsets[start] - gapAfter(res, end)
}

func gapAfter(res TrackSizingResult, end int) Fl {
	if end < len(res.Tracks) {
		return res.Gap
	}
	return 0
}

type trackSizer struct {
	grid      *Grid
	tracks    []Track
	gap       Fl
	available Fl
	axis      Axis
	c         TrackContributor
}

// SizeTracks runs the grid track sizing algorithm for the given axis.
// `templates` has one entry per track. `available` is -1 if indefinite.
// The stretch of auto tracks is not performed.
func SizeTracks(grid *Grid, templates []pr.TrackSize, gap, available Fl, axis Axis, c TrackContributor) TrackSizingResult {
	ts := trackSizer{grid: grid, gap: gap, available: available, axis: axis, c: c}
	ts.tracks = make([]Track, len(templates))
	for i, t := range templates {
		ts.tracks[i] = Track{Template: t}
	}
	ts.initializeTrackSizes()
	ts.resolveIntrinsicTrackSizes()
	ts.maximizeTracks()
	ts.expandFlexibleTracks()
	return TrackSizingResult{Tracks: ts.tracks, Gap: gap}
}

// resolveBreadth returns the fixed size of b, or -1.
func (ts *trackSizer) resolveBreadth(b pr.TrackBreadth) Fl {
	switch b.Kind {
	case pr.BreadthFixed:
		return maxF(b.Value, 0)
	case pr.BreadthPercent:
		if ts.available >= 0 {
			return maxF(b.Value*ts.available/100, 0)
		}
	}
	return -1
}

// breadth returns the kind of b, mapping unresolvable percentages to auto.
func (ts *trackSizer) breadth(b pr.TrackBreadth) pr.BreadthKind {
	if b.Kind == pr.BreadthPercent && ts.available < 0 {
		return pr.BreadthAuto
	}
	return b.Kind
}

func (ts *trackSizer) initializeTrackSizes() {
	for i := range ts.tracks {
		t := &ts.tracks[i]
		t.BaseSize = maxF(ts.resolveBreadth(t.Template.Min), 0)
		t.GrowthLimit = -1
		if !t.Template.FitContent {
			t.GrowthLimit = ts.resolveBreadth(t.Template.Max)
		}
		if t.GrowthLimit >= 0 && t.GrowthLimit < t.BaseSize {
			t.GrowthLimit = t.BaseSize
		}
	}
}

func (ts *trackSizer) spansFlexible(cell *GridCell) bool {
	start, span := cell.start(ts.axis), cell.span(ts.axis)
	for i := start; i < start+span && i < len(ts.tracks); i++ {
		if ts.tracks[i].isFlexible() {
			return true
		}
	}
	return false
}

func (ts *trackSizer) resolveIntrinsicTrackSizes() {
	// items spanning exactly one track
	for _, cell := range ts.grid.Cells {
		if cell.span(ts.axis) != 1 {
			continue
		}
		index := cell.start(ts.axis)
		if index >= len(ts.tracks) {
			continue
		}
		t := &ts.tracks[index]
		minC := maxF(ts.c.MinContent(cell, ts.axis), 0)
		maxC := maxF(ts.c.MaxContent(cell, ts.axis), minC)

		switch ts.breadth(t.Template.Min) {
		case pr.BreadthMaxContent:
			t.BaseSize = maxF(t.BaseSize, maxC)
		case pr.BreadthAuto, pr.BreadthMinContent:
			t.BaseSize = maxF(t.BaseSize, minC)
		}

		if t.Template.FitContent {
			limit := ts.resolveBreadth(t.Template.Max)
			grown := maxF(t.GrowthLimit, maxC)
			if limit >= 0 {
				grown = minF(grown, maxF(limit, t.BaseSize))
			}
			t.GrowthLimit = grown
		} else {
			switch ts.breadth(t.Template.Max) {
			case pr.BreadthMinContent:
				t.GrowthLimit = maxF(t.GrowthLimit, minC)
			case pr.BreadthAuto, pr.BreadthMaxContent:
				t.GrowthLimit = maxF(t.GrowthLimit, maxC)
			}
		}
		if t.GrowthLimit >= 0 && t.GrowthLimit < t.BaseSize {
			t.GrowthLimit = t.BaseSize
		}
	}

	// spanning items, by increasing span, those crossing flexible
	// tracks being handled afterwards
	var spanning, flexible []*GridCell
	for _, cell := range ts.grid.Cells {
		if cell.span(ts.axis) < 2 {
			continue
		}
		if ts.spansFlexible(cell) {
			flexible = append(flexible, cell)
		} else {
			spanning = append(spanning, cell)
		}
	}
	sort.SliceStable(spanning, func(i, j int) bool { return spanning[i].span(ts.axis) < spanning[j].span(ts.axis) })
	for _, cell := range spanning {
		ts.distributeSpanning(cell)
	}

	// infinite growth limits are set to the base size
	for i := range ts.tracks {
		t := &ts.tracks[i]
		if t.GrowthLimit < 0 && !t.isFlexible() {
			t.GrowthLimit = t.BaseSize
		}
	}

	for _, cell := range flexible {
		ts.distributeToFlexible(cell)
	}
}

// spannedTracks returns the indexes of the tracks spanned by cell.
func (ts *trackSizer) spannedTracks(cell *GridCell) []int {
	start, span := cell.start(ts.axis), cell.span(ts.axis)
	var out []int
	for i := start; i < start+span && i < len(ts.tracks); i++ {
		out = append(out, i)
	}
	return out
}

// distribute adds `extra` to the sizes of the given tracks, proportionally
// to their remaining room (limit - size), sharing what exceeds the total
// room equally. A negative room is unbounded.
func distribute(indexes []int, extra Fl, room func(int) Fl, grow func(int, Fl)) {
	if extra <= 0 || len(indexes) == 0 {
		return
	}
	var unbounded []int
	var totalRoom Fl
	for _, i := range indexes {
		r := room(i)
		if r < 0 {
			unbounded = append(unbounded, i)
		} else {
			totalRoom += r
		}
	}
	if len(unbounded) != 0 {
		share := extra / Fl(len(unbounded))
		for _, i := range unbounded {
			grow(i, share)
		}
		return
	}
	if totalRoom > 0 {
		used := minF(extra, totalRoom)
		for _, i := range indexes {
			grow(i, used*room(i)/totalRoom)
		}
		extra -= used
	}
	if extra > 0 {
		share := extra / Fl(len(indexes))
		for _, i := range indexes {
			grow(i, share)
		}
	}
}

func (ts *trackSizer) distributeSpanning(cell *GridCell) {
	indexes := ts.spannedTracks(cell)
	gaps := ts.gap * Fl(len(indexes)-1)
	minC := maxF(ts.c.MinContent(cell, ts.axis), 0)
	maxC := maxF(ts.c.MaxContent(cell, ts.axis), minC)

	// fixed tracks do not grow
	var intrinsicMin, intrinsicMax []int
	var baseSum, limitSum Fl
	for _, i := range indexes {
		t := ts.tracks[i]
		baseSum += t.BaseSize
		if t.GrowthLimit >= 0 {
			limitSum += t.GrowthLimit
		} else {
			limitSum += t.BaseSize
		}
		if ts.breadth(t.Template.Min) != pr.BreadthFixed && ts.breadth(t.Template.Min) != pr.BreadthPercent {
			intrinsicMin = append(intrinsicMin, i)
		}
		if t.Template.FitContent || ts.breadth(t.Template.Max).IsIntrinsic() {
			intrinsicMax = append(intrinsicMax, i)
		}
	}

	distribute(intrinsicMin, minC-baseSum-gaps,
		func(i int) Fl {
			t := ts.tracks[i]
			if t.GrowthLimit < 0 {
				return -1
			}
			return maxF(t.GrowthLimit-t.BaseSize, 0)
		},
		func(i int, v Fl) { ts.tracks[i].BaseSize += v },
	)
	for _, i := range indexes {
		t := &ts.tracks[i]
		if t.GrowthLimit >= 0 && t.GrowthLimit < t.BaseSize {
			t.GrowthLimit = t.BaseSize
		}
	}

	limitSum = 0
	for _, i := range indexes {
		t := ts.tracks[i]
		if t.GrowthLimit >= 0 {
			limitSum += t.GrowthLimit
		} else {
			limitSum += t.BaseSize
		}
	}
	distribute(intrinsicMax, maxC-limitSum-gaps,
		func(int) Fl { return -1 },
		func(i int, v Fl) {
			t := &ts.tracks[i]
			if t.GrowthLimit < 0 {
				t.GrowthLimit = t.BaseSize
			}
			t.GrowthLimit += v
		},
	)
}

// distributeToFlexible grows the base sizes of the flexible tracks spanned
// by cell, proportionally to their flex factor.
func (ts *trackSizer) distributeToFlexible(cell *GridCell) {
	indexes := ts.spannedTracks(cell)
	extra := maxF(ts.c.MinContent(cell, ts.axis), 0) - ts.gap*Fl(len(indexes)-1)
	var flexSum Fl
	var flexible []int
	for _, i := range indexes {
		t := ts.tracks[i]
		extra -= t.BaseSize
		if t.isFlexible() {
			flexible = append(flexible, i)
			flexSum += t.Template.Max.Value
		}
	}
	if extra <= 0 || len(flexible) == 0 {
		return
	}
	for _, i := range flexible {
		t := &ts.tracks[i]
		if flexSum > 0 {
			t.BaseSize += extra * t.Template.Max.Value / flexSum
		} else {
			t.BaseSize += extra / Fl(len(flexible))
		}
	}
}

func (ts *trackSizer) gaps() Fl { return ts.gap * Fl(maxInt(len(ts.tracks)-1, 0)) }

func (ts *trackSizer) maximizeTracks() {
	if ts.available < 0 {
		for i := range ts.tracks {
			if t := &ts.tracks[i]; t.GrowthLimit >= 0 {
				t.BaseSize = t.GrowthLimit
			}
		}
		return
	}
	free := ts.available - ts.gaps()
	for _, t := range ts.tracks {
		free -= t.BaseSize
	}
	for free > 0 {
		var eligible []int
		for i, t := range ts.tracks {
			if t.GrowthLimit >= 0 && t.BaseSize < t.GrowthLimit {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			break
		}
		share := free / Fl(len(eligible))
		filled := false
		for _, i := range eligible {
			t := &ts.tracks[i]
			inc := share
			if room := t.GrowthLimit - t.BaseSize; room <= share {
				inc = room
				filled = true
			}
			t.BaseSize += inc
			free -= inc
		}
		if !filled {
			break
		}
	}
}

// findFrSize returns the size of one fr unit, for the given
// space available for the flexible tracks.
func (ts *trackSizer) findFrSize(space Fl) Fl {
	frozen := make([]bool, len(ts.tracks))
	for {
		leftover := space
		var flexSum Fl
		for i, t := range ts.tracks {
			if !t.isFlexible() {
				continue
			}
			if frozen[i] {
				leftover -= t.BaseSize
			} else {
				flexSum += t.Template.Max.Value
			}
		}
		if flexSum <= 0 {
			return 0
		}
		if flexSum < 1 {
			flexSum = 1
		}
		frSize := maxF(leftover/flexSum, 0)
		changed := false
		for i, t := range ts.tracks {
			if t.isFlexible() && !frozen[i] && t.BaseSize > frSize*t.Template.Max.Value {
				frozen[i] = true
				changed = true
			}
		}
		if !changed {
			return frSize
		}
	}
}

func (ts *trackSizer) expandFlexibleTracks() {
	hasFlexible := false
	for _, t := range ts.tracks {
		if t.isFlexible() {
			hasFlexible = true
			break
		}
	}
	if !hasFlexible {
		return
	}
	var frSize Fl
	if ts.available >= 0 {
		space := ts.available - ts.gaps()
		for _, t := range ts.tracks {
			if !t.isFlexible() {
				space -= t.BaseSize
			}
		}
		frSize = ts.findFrSize(space)
	} else {
		for _, t := range ts.tracks {
			if !t.isFlexible() {
				continue
			}
			factor := t.Template.Max.Value
			if factor > 1 {
				frSize = maxF(frSize, t.BaseSize/factor)
			} else {
				frSize = maxF(frSize, t.BaseSize)
			}
		}
	}
	for i := range ts.tracks {
		t := &ts.tracks[i]
		if !t.isFlexible() {
			continue
		}
		if size := frSize * t.Template.Max.Value; size > t.BaseSize {
			t.BaseSize = size
		}
		t.GrowthLimit = t.BaseSize
	}
}
