package generator

import (
	"github.com/mark3labs/swagen/internal/emitter/ng1jsemitter"
	"github.com/mark3labs/swagen/internal/emitter/ng1tsemitter"
	"github.com/mark3labs/swagen/internal/emitter/ngtsemitter"
)

// DefaultMode is the mode used when a profile names none.
const DefaultMode = ng1tsemitter.Mode

// DefaultRegistry returns a registry holding the built-in dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry(DefaultMode)
	r.Register(ng1tsemitter.New(), "ng1-ts")
	r.Register(ng1jsemitter.New(), "ng1-js")
	r.Register(ngtsemitter.New(), "ng-ts")
	return r
}
