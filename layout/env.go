// Package layout implements the box layout engine: renderers are laid out
// into occupied areas on fixed size pages, and split across pages when
// their content overflows.
package layout

import (
	"github.com/benoitkugler/boxlayout/layout/text"
	"github.com/benoitkugler/boxlayout/logger"
	"github.com/benoitkugler/boxlayout/utils"
	"go.uber.org/zap"
)

type Fl = utils.Fl

// Env groups the services shared by a whole layout:
// the diagnostics sink and the text measurement.
type Env struct {
	Logger   *zap.Logger
	Measurer text.Measurer

	warning  *zap.Logger
	progress *zap.Logger
}

// NewEnv returns an environment. Nil arguments are replaced by
// a no-op logger and the default measurer.
func NewEnv(l *zap.Logger, m text.Measurer) *Env {
	if l == nil {
		l = logger.Nop()
	}
	if m == nil {
		m = text.DefaultMeasurer
	}
	return &Env{Logger: l, Measurer: m, warning: logger.Warning(l), progress: logger.Progress(l)}
}

func (env *Env) warn(msg string, r Renderer, fields ...zap.Field) {
	if r != nil {
		fields = append(fields, zap.String("renderer", describe(r)))
		if area := r.Base().OccupiedArea; area != nil {
			fields = append(fields, zap.Int("page", area.PageNumber))
		}
	}
	env.warning.Warn(msg, fields...)
}

func (env *Env) debug(msg string, fields ...zap.Field) {
	env.progress.Debug(msg, fields...)
}
