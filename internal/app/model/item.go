package model

type ItemCategory string

const (
	CategoryBeverages    ItemCategory = "beverages"
	CategorySnacks       ItemCategory = "snacks"
	CategoryDairy        ItemCategory = "dairy"
	CategoryFrozen       ItemCategory = "frozen"
	CategoryHousehold    ItemCategory = "household"
	CategoryPersonalCare ItemCategory = "personal_care"
	CategoryOtherItem    ItemCategory = "other"
)

var ItemCategories = []ItemCategory{
	CategoryBeverages,
	CategorySnacks,
	CategoryDairy,
	CategoryFrozen,
	CategoryHousehold,
	CategoryPersonalCare,
	CategoryOtherItem,
}

func (c ItemCategory) Valid() bool {
	for _, known := range ItemCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Item is a catalog item, independent of any store. Items relate to stores
// many-to-many through Inventory records.
type Item struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	Category        ItemCategory `json:"category"`
	Brand           string       `json:"brand,omitempty"`
	Barcode         string       `json:"barcode,omitempty"`
	IsActive        bool         `json:"is_active"`
	StoreCount      int          `json:"store_count,omitempty"`
	AvailableStores int          `json:"available_stores,omitempty"`
	CreatedAt       string       `json:"created_at,omitempty"`
	UpdatedAt       string       `json:"updated_at,omitempty"`
}

// ItemWrite is the create/update payload for an item.
type ItemWrite struct {
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Category    ItemCategory `json:"category"`
	Brand       *string      `json:"brand"`
	Barcode     *string      `json:"barcode"`
	IsActive    bool         `json:"is_active"`
}
