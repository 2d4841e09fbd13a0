package catalog

// Color identifies one of the product's finishes, e.g. "black".
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorPurple Color = "purple"
	ColorGold   Color = "gold"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
)

// Resource is a reference to an image asset, relative to the asset base URL.
type Resource string

type GalleryItem struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Image     Resource `json:"image"`
	Thumbnail Resource `json:"thumbnail"`
}

type ColorOption struct {
	Color Color    `json:"color"`
	Name  string   `json:"name"`
	Image Resource `json:"image"`

	// PinnedView forces the gallery to this view when the color is picked.
	PinnedView int `json:"pinned_view,omitempty"`
}
