package model

// Inventory joins a store and an item with an availability flag. The
// backend enforces at most one record per (store, item) pair; a conflict on
// create surfaces as a field error.
type Inventory struct {
	ID           int64        `json:"id"`
	StoreID      int64        `json:"store"`
	StoreName    string       `json:"store_name,omitempty"`
	StoreAddress string       `json:"store_address,omitempty"`
	ItemID       int64        `json:"item"`
	ItemName     string       `json:"item_name,omitempty"`
	ItemCategory ItemCategory `json:"item_category,omitempty"`
	IsAvailable  bool         `json:"is_available"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// InventoryWrite is the create/update payload. is_available is the only
// mutable field besides the foreign keys.
type InventoryWrite struct {
	StoreID     int64 `json:"store"`
	ItemID      int64 `json:"item"`
	IsAvailable bool  `json:"is_available"`
}
