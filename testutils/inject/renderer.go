// Package inject provides test doubles whose behavior is set per test through function fields.
package inject

import (
	"github.com/quatfk/quatfk/scene"
)

// Renderer implements scene.Renderer for testing.
type Renderer struct {
	scene.Renderer
	RenderFunc func(frame scene.Frame) error
}

// Render calls RenderFunc.
func (r *Renderer) Render(frame scene.Frame) error {
	if r.RenderFunc == nil {
		return r.Renderer.Render(frame)
	}
	return r.RenderFunc(frame)
}
