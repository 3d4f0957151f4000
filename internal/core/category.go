package core

// Category is the closed set of spending categories. Unknown values are
// rejected at the boundary; free-form strings never reach the store.
type Category string

const (
	CategoryTuition   Category = "tuition"
	CategoryBooks     Category = "books"
	CategoryFood      Category = "food"
	CategoryTravel    Category = "travel"
	CategoryLeisure   Category = "leisure"
	CategoryRent      Category = "rent"
	CategoryUtilities Category = "utilities"
	CategoryOther     Category = "other"
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryTuition,
		CategoryBooks,
		CategoryFood,
		CategoryTravel,
		CategoryLeisure,
		CategoryRent,
		CategoryUtilities,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTuition, CategoryBooks, CategoryFood, CategoryTravel,
		CategoryLeisure, CategoryRent, CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

// ParseCategory validates a raw string against the closed category set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrUnknownCategory
	}
	return c, nil
}
