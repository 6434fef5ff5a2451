package layout

import (
	"go.uber.org/zap"
)

// ImageRenderer is an atomic box with an intrinsic size. It is never split.
type ImageRenderer struct {
	BaseRenderer
	IntrinsicWidth, IntrinsicHeight Fl
}

func NewImageRenderer(el *Element, width, height Fl) *ImageRenderer {
	return &ImageRenderer{BaseRenderer: BaseRenderer{Element: el}, IntrinsicWidth: width, IntrinsicHeight: height}
}

func (img *ImageRenderer) Kind() Kind { return KindImage }

func (img *ImageRenderer) Copy() Renderer {
	out := *img
	out.BaseRenderer = img.BaseRenderer.copy()
	return &out
}

func (img *ImageRenderer) ratio() Fl {
	if img.IntrinsicWidth <= 0 {
		return 1
	}
	return img.IntrinsicHeight / img.IntrinsicWidth
}

// naturalWidth is the content width used when the width is not given:
// derived from an explicit height, or the intrinsic width.
func (img *ImageRenderer) naturalWidth() Fl {
	st := img.Style()
	if h, ok := st.GetHeight().Resolve(-1); ok && img.IntrinsicHeight > 0 {
		return h / img.ratio()
	}
	return img.IntrinsicWidth
}

func (img *ImageRenderer) MinMaxWidth(env *Env) MinMaxWidth {
	return boxMinMaxWidth(img, func() MinMaxWidth {
		w := img.naturalWidth()
		if img.Style().GetAutoScale() {
			return MinMaxWidth{MinWidth: 0, MaxWidth: w}
		}
		return MinMaxWidth{MinWidth: w, MaxWidth: w}
	})
}

func (img *ImageRenderer) Layout(ctx LayoutContext) LayoutResult {
	f, res, ok := beginBlock(img, ctx)
	if !ok {
		return res
	}
	st := img.Style()
	width := f.content.Width
	var height Fl
	if f.fixedHeight >= 0 {
		height = f.fixedHeight
	} else {
		height = width * img.ratio()
		height = maxF(height, f.minHeight)
		if f.maxHeight >= 0 {
			height = minF(height, f.maxHeight)
		}
	}

	if height > f.available+1e-3 && st.GetAutoScale() && f.fixedHeight < 0 && f.available > 0 {
		// scale down to fit the height
		scale := f.available / height
		height = f.available
		width *= scale
		f.content.Width = width
	}
	if f.area.Width > f.bounds.Width+1e-3 && f.rotation == 0 {
		if !f.forced {
			f.rollbackFloats()
			return nothing(img, img)
		}
		f.env.warn("image does not fit the area by width: it is forced in", img,
			zap.Float32("width", f.area.Width), zap.Float32("available", f.bounds.Width))
	}
	if height > f.available+1e-3 && f.rotation == 0 {
		switch {
		case f.forced:
			f.env.warn("image does not fit the area: it is forced in", img,
				zap.Float32("height", height), zap.Float32("available", f.available))
		case f.ctx.ClippedHeight:
		default:
			f.rollbackFloats()
			return nothing(img, img)
		}
	}
	if !f.place(img, f.outerBox(height)) {
		f.rollbackFloats()
		return nothing(img, img)
	}
	return LayoutResult{Status: Full, OccupiedArea: img.OccupiedArea}
}
