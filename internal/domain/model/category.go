// Package model contains the core domain entities of the classifieds bot:
// users, ads, their locations and categories, and the per-chat
// conversation session.
package model

// Category classifies an ad. The zero value means "no category".
type Category string

const (
	CategoryAuto       Category = "auto"
	CategoryTech       Category = "tech"
	CategoryRealEstate Category = "real_estate"
	CategoryClothing   Category = "clothing"
	CategoryOther      Category = "other"
	CategoryPets       Category = "pets"
)

var categoryLabels = map[Category]string{
	CategoryAuto:       "🚗 Авто",
	CategoryTech:       "📱 Техника",
	CategoryRealEstate: "🏠 Недвижимость",
	CategoryClothing:   "👗 Одежда/Обувь",
	CategoryOther:      "📦 Прочее",
	CategoryPets:       "🐾 Товары для животных",
}

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryAuto,
		CategoryTech,
		CategoryRealEstate,
		CategoryClothing,
		CategoryOther,
		CategoryPets,
	}
}

// ParseCategory returns the category for key and whether it is known.
func ParseCategory(key string) (Category, bool) {
	c := Category(key)
	if _, ok := categoryLabels[c]; !ok {
		return "", false
	}
	return c, true
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable label, or the raw key for unknown values.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
