package ebitenview

import (
	"time"

	"go.uber.org/zap"
)

// debugLog reports the frame's draw time and the widget state. Only called
// in debug mode.
func (v *View) debugLog(drawTime time.Duration) {
	fields := []zap.Field{
		zap.Duration("draw", drawTime),
		zap.Float64("shake", v.shake),
		zap.Float64("offset", v.handle.OffsetX),
		zap.Int("captured", v.input.captured),
		zap.Int("queued_input", len(v.injectQueue)),
	}
	if w := v.widget; w != nil {
		fields = append(fields,
			zap.Stringer("phase", w.Phase()),
			zap.Int("attempts", w.Attempts()),
		)
	}
	v.log.Debug("frame", fields...)
}
