package catalog

const (
	imageMain  Resource = "51JkiHBv2GL._AC_SL1001_.jpg"
	imageFilms Resource = "61pT41KcGlL._AC_SL1001_.png"
	imageBalls Resource = "71P2vxByl8L._AC_SL1500_.jpg"
	imageInUse Resource = "810WyZXNoFL._AC_SX679_.png"
)

// Default returns the storefront's compiled-in catalog.
func Default() *Catalog {
	colors := []ColorOption{
		{Color: ColorBlack, Name: "أسود", Image: imageMain, PinnedView: 1},
		{Color: ColorWhite, Name: "أبيض", Image: imageBalls, PinnedView: 3},
		{Color: ColorRed, Name: "أحمر كلاسيكي", Image: imageMain},
		{Color: ColorBlue, Name: "أزرق محيطي", Image: imageFilms},
		{Color: ColorPurple, Name: "بنفسجي ملكي", Image: imageBalls},
		{Color: ColorGold, Name: "ذهبي فاخر", Image: imageInUse},
	}

	gallery := []GalleryItem{
		{ID: 1, Name: "العرض الرئيسي", Image: imageMain, Thumbnail: imageMain},
		{ID: 2, Name: "مع الأفلام", Image: imageFilms, Thumbnail: imageFilms},
		{ID: 3, Name: "الكرات الملونة", Image: imageBalls, Thumbnail: imageBalls},
		{ID: 4, Name: "في الاستخدام", Image: imageInUse, Thumbnail: imageInUse},
	}

	return New(ColorBlack, colors, gallery)
}
