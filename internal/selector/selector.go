package selector

import (
	"context"
	"fmt"

	"dikra-store/internal/catalog"
)

// Display is the surface the selector renders into.
type Display interface {
	Transition(ctx context.Context, res catalog.Resource, alt string)
}

// ViewListener is told which gallery view is active after a color pins one.
type ViewListener func(view int)

type Variant struct {
	Color catalog.Color `json:"color"`
	View  int           `json:"view"`
}

// Selector tracks the selected color and gallery view and keeps the display
// in step with them. It is not safe for concurrent use.
type Selector struct {
	catalog     *catalog.Catalog
	display     Display
	productName string

	color     catalog.Color
	view      int
	listeners []ViewListener
}

func New(c *catalog.Catalog, display Display, productName string) *Selector {
	return &Selector{
		catalog:     c,
		display:     display,
		productName: productName,
		color:       c.DefaultColor(),
		view:        catalog.MainView,
	}
}

// OnViewSync registers a listener for views changed by a color selection.
func (s *Selector) OnViewSync(l ViewListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Selector) Current() Variant {
	return Variant{Color: s.color, View: s.view}
}

// SelectColor switches the color. A color that pins a gallery view also moves
// the view there and notifies view listeners; otherwise the view is kept.
func (s *Selector) SelectColor(ctx context.Context, color catalog.Color) Variant {
	s.color = color

	if view, ok := s.catalog.PinnedView(color); ok {
		s.view = view
		for _, l := range s.listeners {
			l(view)
		}
		s.display.Transition(ctx, s.catalog.ImageFor(s.color, s.view), s.altText())
		return s.Current()
	}

	s.display.Transition(ctx, s.catalog.ImageFor(s.color, s.view), "")
	return s.Current()
}

// SelectView switches the gallery view and keeps the color.
func (s *Selector) SelectView(ctx context.Context, view int) Variant {
	s.view = view
	s.display.Transition(ctx, s.catalog.ImageFor(s.color, s.view), s.altText())
	return s.Current()
}

func (s *Selector) altText() string {
	return fmt.Sprintf("%s - %s", s.productName, s.catalog.LabelFor(s.view))
}
