package models

// Category представляет категорию услуг из фиксированного каталога.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// JobCategories — каталог категорий. Набор фиксированный, в хранилище
// не дублируется.
var JobCategories = []Category{
	{ID: "handyman", Label: "Handyman", Icon: "hammer-outline"},
	{ID: "cleaning", Label: "Cleaning", Icon: "sparkles-outline"},
	{ID: "hvac", Label: "HVAC", Icon: "thermometer-outline"},
	{ID: "remodeling", Label: "Remodeling", Icon: "construct-outline"},
	{ID: "moving", Label: "Moving", Icon: "cube-outline"},
	{ID: "tutoring", Label: "Tutoring", Icon: "school-outline"},
	{ID: "babysitting", Label: "Babysitting", Icon: "people-outline"},
	{ID: "plumbing", Label: "Plumbing", Icon: "water-outline"},
}

// CategoryByID возвращает категорию по идентификатору.
func CategoryByID(id string) (Category, bool) {
	for _, c := range JobCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabel возвращает название категории либо сам id, если
// категория неизвестна.
func CategoryLabel(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Label
	}
	return id
}
