// Package export writes xlsx reports for offline sharing of the store and
// inventory views.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

const (
	storeSheet     = "Stores"
	inventorySheet = "Inventory"
)

// Report accumulates sheets and writes them to one workbook.
type Report struct {
	file   *excelize.File
	sheets int
}

// NewReport creates an empty workbook.
func NewReport() *Report {
	return &Report{file: excelize.NewFile()}
}

// AddStores writes the store sheet: one row per store with the columns of
// the store table plus coordinates.
func (r *Report) AddStores(stores []model.Store) error {
	header := []interface{}{
		"ID", "Name", "Type", "Address", "District", "City",
		"Phone", "Email", "Latitude", "Longitude", "Rating", "Active",
	}
	rows := make([][]interface{}, 0, len(stores))
	for _, store := range stores {
		row := []interface{}{
			store.ID,
			store.Name,
			model.DisplayStoreType(string(store.StoreType)),
			store.Address,
			store.District,
			store.City,
			store.Phone,
			store.Email,
			cellFloat(store.Latitude),
			cellFloat(store.Longitude),
			cellFloat(store.Rating),
			store.IsActive,
		}
		rows = append(rows, row)
	}
	return r.addSheet(storeSheet, header, rows)
}

// AddInventory writes the inventory sheet.
func (r *Report) AddInventory(records []model.Inventory) error {
	header := []interface{}{
		"ID", "Store", "Store Address", "Item", "Category", "Available",
	}
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		rows = append(rows, []interface{}{
			record.ID,
			record.StoreName,
			record.StoreAddress,
			record.ItemName,
			string(record.ItemCategory),
			record.IsAvailable,
		})
	}
	return r.addSheet(inventorySheet, header, rows)
}

// Save writes the workbook to path and returns the path.
func (r *Report) Save(path string) (string, error) {
	if r.sheets == 0 {
		return "", fmt.Errorf("report has no sheets")
	}
	if err := r.file.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

// Close releases the workbook resources.
func (r *Report) Close() error {
	return r.file.Close()
}

func (r *Report) addSheet(name string, header []interface{}, rows [][]interface{}) error {
	if r.sheets == 0 {
		// Rename the default sheet instead of leaving an empty "Sheet1".
		if err := r.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else {
		if _, err := r.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	r.sheets++

	if err := r.file.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header on %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := r.file.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+2, name, err)
		}
	}
	return nil
}

// cellFloat renders an optional float, leaving the cell empty when unset so
// Excel does not show a bogus zero.
func cellFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
