package properties

import "testing"

func TestInitialValues(t *testing.T) {
	for p := KnownProp(1); p < NbProperties; p++ {
		if InitialValues[p] == nil {
			t.Errorf("missing initial value for %s", p)
		}
		if PropsFromNames[p.String()] != p {
			t.Errorf("invalid name for %d", p)
		}
	}
}

func TestAccessors(t *testing.T) {
	props := Properties{}
	props.SetWidth(FToV(20))
	props.SetFlexGrow(2)
	style := Style{chain{props, InitialValues}}
	if style.GetWidth() != FToV(20) || style.GetFlexGrow() != 2 {
		t.Fatal("unexpected accessors")
	}
	if !style.GetHeight().IsAuto() {
		t.Fatal("expected auto height")
	}
}

type chain [2]Properties

func (c chain) Get(key KnownProp) interface{} {
	if v := c[0][key]; v != nil {
		return v
	}
	return c[1][key]
}

func TestResolve(t *testing.T) {
	if v, ok := PercToV(50).Resolve(200); !ok || v != 100 {
		t.Fatalf("unexpected %g", v)
	}
	if _, ok := PercToV(50).Resolve(-1); ok {
		t.Fatal("percentage of an indefinite length")
	}
	if _, ok := SAuto.Resolve(100); ok {
		t.Fatal("auto is not a length")
	}
	if v := SAuto.ResolveOr(100, 7); v != 7 {
		t.Fatal("expected default")
	}
}

func TestBorder(t *testing.T) {
	if (Border{Width: 2, Style: "none"}).Ptr() != nil {
		t.Fatal("style none is empty")
	}
	b := Border{Width: 2, Style: "solid", Color: "red"}
	if p := b.Ptr(); p == nil || *p != b {
		t.Fatal("unexpected pointer")
	}
}

func TestTrackSize(t *testing.T) {
	fr := NewTrackSize(TrackBreadth{Kind: BreadthFlex, Value: 1})
	if fr.Min.Kind != BreadthAuto || fr.Max.Kind != BreadthFlex {
		t.Fatalf("unexpected %s", fr)
	}
	if s := NewFitContent(TrackBreadth{Value: 40}).String(); s != "fit-content(40pt)" {
		t.Fatalf("unexpected %s", s)
	}
}

func TestBreadthKindIntrinsic(t *testing.T) {
	for _, k := range []BreadthKind{BreadthAuto, BreadthMinContent, BreadthMaxContent} {
		if !k.IsIntrinsic() || !(TrackBreadth{Kind: k}).IsIntrinsic() {
			t.Errorf("%d should be intrinsic", k)
		}
	}
	for _, k := range []BreadthKind{BreadthFixed, BreadthPercent, BreadthFlex} {
		if k.IsIntrinsic() {
			t.Errorf("%d should not be intrinsic", k)
		}
	}
}
