package catalog

// MainView is the gallery view whose image depends on the selected color.
const MainView = 1

// Catalog answers image and label lookups over static product data.
// Every lookup is total: unknown colors and views resolve to defaults.
type Catalog struct {
	defaultColor Color
	colors       []ColorOption
	byColor      map[Color]ColorOption
	gallery      []GalleryItem
}

// New builds a catalog. gallery must not be empty and defaultColor must be
// one of colors; New panics otherwise since the data is compiled in.
func New(defaultColor Color, colors []ColorOption, gallery []GalleryItem) *Catalog {
	if len(gallery) == 0 {
		panic("catalog: empty gallery")
	}

	byColor := make(map[Color]ColorOption, len(colors))
	for _, c := range colors {
		byColor[c.Color] = c
	}
	if _, ok := byColor[defaultColor]; !ok {
		panic("catalog: default color " + string(defaultColor) + " not in color list")
	}

	return &Catalog{
		defaultColor: defaultColor,
		colors:       append([]ColorOption(nil), colors...),
		byColor:      byColor,
		gallery:      append([]GalleryItem(nil), gallery...),
	}
}

func (c *Catalog) DefaultColor() Color {
	return c.defaultColor
}

func (c *Catalog) HasColor(color Color) bool {
	_, ok := c.byColor[color]
	return ok
}

// Colors returns the selectable colors in display order.
func (c *Catalog) Colors() []ColorOption {
	return append([]ColorOption(nil), c.colors...)
}

func (c *Catalog) Gallery() []GalleryItem {
	return append([]GalleryItem(nil), c.gallery...)
}

// ImageFor resolves the image for a color/view pair. The main view shows the
// color's own image; other views show the gallery image for that view.
func (c *Catalog) ImageFor(color Color, view int) Resource {
	if view == MainView {
		if opt, ok := c.byColor[color]; ok {
			return opt.Image
		}
		return c.byColor[c.defaultColor].Image
	}
	return c.galleryItem(view).Image
}

func (c *Catalog) ThumbnailFor(view int) Resource {
	return c.galleryItem(view).Thumbnail
}

// LabelFor returns the gallery name of a view.
func (c *Catalog) LabelFor(view int) string {
	return c.galleryItem(view).Name
}

// ColorName returns the display name of a color, or the raw id when the
// color is not in the catalog.
func (c *Catalog) ColorName(color Color) string {
	if opt, ok := c.byColor[color]; ok && opt.Name != "" {
		return opt.Name
	}
	return string(color)
}

// PinnedView reports the view a color forces onto the gallery, if any.
func (c *Catalog) PinnedView(color Color) (int, bool) {
	opt, ok := c.byColor[color]
	if !ok || opt.PinnedView == 0 {
		return 0, false
	}
	return opt.PinnedView, true
}

func (c *Catalog) galleryItem(view int) GalleryItem {
	for _, item := range c.gallery {
		if item.ID == view {
			return item
		}
	}
	return c.gallery[0]
}
