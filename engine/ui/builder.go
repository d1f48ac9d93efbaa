package ui

import (
	"log"

	"github.com/SafetImamovic/oxide-sub000/engine/renderer/device"
)

// Builder is the widget surface a render pass describes itself onto. Passes
// expose their tweakable state through it each frame without knowing what is
// rendering the widgets; mutating widgets write through the supplied pointers
// and report whether the value changed this frame.
type Builder interface {
	// Heading renders a section title.
	Heading(text string)

	// Label renders a static line of text.
	Label(text string)

	// Checkbox renders a toggle bound to value.
	//
	// Returns:
	//   - bool: true if the value changed this frame
	Checkbox(label string, value *bool) bool

	// ColorPicker renders an RGBA color editor bound to color.
	//
	// Returns:
	//   - bool: true if the color changed this frame
	ColorPicker(label string, color *device.Color) bool

	// Selector renders an exclusive choice between options, bound to selected.
	//
	// Returns:
	//   - bool: true if the selection changed this frame
	Selector(label string, options []string, selected *int) bool
}

// nullBuilder discards every widget. Used when the debug overlay is hidden so
// passes can describe themselves unconditionally.
type nullBuilder struct{}

var _ Builder = nullBuilder{}

// NewNullBuilder returns a builder that renders nothing and never reports a change.
func NewNullBuilder() Builder {
	return nullBuilder{}
}

func (nullBuilder) Heading(string) {}

func (nullBuilder) Label(string) {}

func (nullBuilder) Checkbox(string, *bool) bool { return false }

func (nullBuilder) ColorPicker(string, *device.Color) bool { return false }

func (nullBuilder) Selector(string, []string, *int) bool { return false }

// logBuilder prints the described widgets to the standard logger. It is a
// stand-in overlay for headless runs and tests; its widgets never mutate.
type logBuilder struct{}

var _ Builder = logBuilder{}

// NewLogBuilder returns a builder that logs each widget instead of drawing it.
func NewLogBuilder() Builder {
	return logBuilder{}
}

func (logBuilder) Heading(text string) {
	log.Printf("[ui] == %s ==", text)
}

func (logBuilder) Label(text string) {
	log.Printf("[ui] %s", text)
}

func (logBuilder) Checkbox(label string, value *bool) bool {
	log.Printf("[ui] %s: %t", label, *value)
	return false
}

func (logBuilder) ColorPicker(label string, color *device.Color) bool {
	log.Printf("[ui] %s: (%.2f, %.2f, %.2f, %.2f)", label, color.R, color.G, color.B, color.A)
	return false
}

func (logBuilder) Selector(label string, options []string, selected *int) bool {
	if *selected >= 0 && *selected < len(options) {
		log.Printf("[ui] %s: %s", label, options[*selected])
	}
	return false
}
