package form

import (
	"strings"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// ItemForm is the draft state of the catalog item form.
type ItemForm struct {
	Name        string
	Description string
	Category    string
	Brand       string
	Barcode     string
	IsActive    bool
}

// NewItemForm returns a draft with the create-dialog defaults.
func NewItemForm() *ItemForm {
	return &ItemForm{Category: string(model.CategoryOtherItem), IsActive: true}
}

// FromItem pre-populates the draft for editing.
func FromItem(item model.Item) *ItemForm {
	return &ItemForm{
		Name:        item.Name,
		Description: item.Description,
		Category:    string(item.Category),
		Brand:       item.Brand,
		Barcode:     item.Barcode,
		IsActive:    item.IsActive,
	}
}

// Validate checks the draft and returns per-field errors.
func (f *ItemForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Item name is required"
	}
	if !model.ItemCategory(f.Category).Valid() {
		errs["category"] = "Please choose a category"
	}
	if f.Barcode != "" && !ValidBarcode(f.Barcode) {
		errs["barcode"] = "Barcode must be 8-20 digits"
	}

	return errs
}

// ToWrite converts a validated draft into the API write payload.
func (f *ItemForm) ToWrite() model.ItemWrite {
	write := model.ItemWrite{
		Name:     strings.TrimSpace(f.Name),
		Category: model.ItemCategory(f.Category),
		IsActive: f.IsActive,
	}
	if f.Description != "" {
		desc := f.Description
		write.Description = &desc
	}
	if f.Brand != "" {
		brand := f.Brand
		write.Brand = &brand
	}
	if f.Barcode != "" {
		barcode := f.Barcode
		write.Barcode = &barcode
	}
	return write
}
