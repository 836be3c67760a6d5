package form

import (
	"github.com/vtnguyen/storeboard/internal/app/model"
)

// InventoryForm is the draft state of the inventory form. Store and item
// are chosen through searchable selectors; only availability is otherwise
// editable.
type InventoryForm struct {
	StoreID     *int64
	ItemID      *int64
	IsAvailable bool
}

// NewInventoryForm returns a draft with the create-dialog defaults.
func NewInventoryForm() *InventoryForm {
	return &InventoryForm{IsAvailable: true}
}

// FromInventory pre-populates the draft for editing.
func FromInventory(record model.Inventory) *InventoryForm {
	storeID, itemID := record.StoreID, record.ItemID
	return &InventoryForm{
		StoreID:     &storeID,
		ItemID:      &itemID,
		IsAvailable: record.IsAvailable,
	}
}

// Validate checks the draft and returns per-field errors.
func (f *InventoryForm) Validate() Errors {
	errs := Errors{}
	if f.StoreID == nil {
		errs["store"] = "Please select a store"
	}
	if f.ItemID == nil {
		errs["item"] = "Please select an item"
	}
	return errs
}

// ToWrite converts a validated draft into the API write payload.
func (f *InventoryForm) ToWrite() model.InventoryWrite {
	write := model.InventoryWrite{IsAvailable: f.IsAvailable}
	if f.StoreID != nil {
		write.StoreID = *f.StoreID
	}
	if f.ItemID != nil {
		write.ItemID = *f.ItemID
	}
	return write
}
