package graph

import (
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
	"github.com/SafetImamovic/oxide-sub000/engine/renderer/pipeline"
	"github.com/SafetImamovic/oxide-sub000/engine/ui"
)

// backgroundPass clears the frame to a solid color. Stacking several in the
// graph is allowed; each enabled one clears over its predecessors, so the
// last enabled background wins.
type backgroundPass struct {
	name    string
	enabled bool
	color   device.Color
}

var _ Pass = &backgroundPass{}

// NewBackgroundPass creates an enabled pass that clears the target to color.
// The color is editable at runtime through the debug overlay.
func NewBackgroundPass(name string, color device.Color) Pass {
	return &backgroundPass{
		name:    name,
		enabled: true,
		color:   color,
	}
}

func (p *backgroundPass) Name() string {
	return p.name
}

func (p *backgroundPass) Enabled() bool {
	return p.enabled
}

func (p *backgroundPass) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *backgroundPass) DescribeUI(b ui.Builder) {
	b.Heading(p.name)
	b.Checkbox("Enabled", &p.enabled)
	b.ColorPicker("Clear color", &p.color)
}

func (p *backgroundPass) Record(target device.Target, rec device.Recorder, _ pipeline.Manager) {
	pass := rec.BeginPass(target, device.LoadOpClear, p.color)
	pass.End()
}
