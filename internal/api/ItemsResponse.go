package api

// Item is one entry of the Grand Exchange catalogue.
//
// Members is kept as the literal "true"/"false" string the catalogue sends.
type Item struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	TypeIcon    string `json:"type_icon"`
	Icon        string `json:"icon"`
	IconLarge   string `json:"icon_large"`
	Members     string `json:"members"`
}

type catalogueResponse struct {
	Items *[]catalogueItem `json:"items"`
}

// catalogueItem mirrors one element of items.json. Price trend objects
// (current, today) are not decoded.
type catalogueItem struct {
	Icon        *string `json:"icon"`
	IconLarge   *string `json:"icon_large"`
	ID          *uint64 `json:"id"`
	Type        *string `json:"type"`
	TypeIcon    *string `json:"typeIcon"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Members     *string `json:"members"`
}

func (r *catalogueResponse) validate() error {
	if r.Items == nil {
		return missingField("items")
	}
	for i, it := range *r.Items {
		required := []struct {
			name    string
			present bool
		}{
			{"icon", it.Icon != nil},
			{"icon_large", it.IconLarge != nil},
			{"id", it.ID != nil},
			{"type", it.Type != nil},
			{"typeIcon", it.TypeIcon != nil},
			{"name", it.Name != nil},
			{"description", it.Description != nil},
			{"members", it.Members != nil},
		}
		for _, f := range required {
			if !f.present {
				return missingElementField("items", i, f.name)
			}
		}
	}
	return nil
}

func mapCatalogueToItems(r catalogueResponse) []Item {
	items := make([]Item, 0, len(*r.Items))
	for _, it := range *r.Items {
		items = append(items, Item{
			ID:          *it.ID,
			Name:        *it.Name,
			Description: *it.Description,
			Type:        *it.Type,
			TypeIcon:    *it.TypeIcon,
			Icon:        *it.Icon,
			IconLarge:   *it.IconLarge,
			Members:     *it.Members,
		})
	}
	return items
}
