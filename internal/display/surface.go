package display

import (
	"context"
	"sync"

	"dikra-store/internal/catalog"
	"dikra-store/internal/logger"

	"go.uber.org/zap"
)

// Loader fetches an image resource before it is shown.
type Loader interface {
	Load(ctx context.Context, res catalog.Resource) error
}

type nopLoader struct{}

func (nopLoader) Load(context.Context, catalog.Resource) error { return nil }

// NopLoader treats every resource as loaded.
var NopLoader Loader = nopLoader{}

type State struct {
	Src     catalog.Resource `json:"src"`
	Alt     string           `json:"alt,omitempty"`
	Visible bool             `json:"visible"`
}

// Surface holds the image currently on screen. A transition hides the image,
// loads the new one and shows it again whether or not the load succeeded.
type Surface struct {
	mu     sync.Mutex
	loader Loader
	state  State
}

func NewSurface(loader Loader, initial catalog.Resource) *Surface {
	if loader == nil {
		loader = NopLoader
	}
	return &Surface{
		loader: loader,
		state:  State{Src: initial, Visible: true},
	}
}

// Transition swaps the surface to res. An empty alt keeps the previous alt text.
func (s *Surface) Transition(ctx context.Context, res catalog.Resource, alt string) {
	s.mu.Lock()
	s.state.Visible = false
	s.state.Src = res
	if alt != "" {
		s.state.Alt = alt
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state.Visible = true
		s.mu.Unlock()
	}()

	if err := s.loader.Load(ctx, res); err != nil {
		logger.FromCtx(ctx).Warn("image failed to load",
			zap.String("src", string(res)),
			zap.Error(err),
		)
	}
}

func (s *Surface) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
