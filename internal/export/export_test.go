package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

func TestReport_StoresAndInventory(t *testing.T) {
	lat, lng, rating := 10.7731, 106.6983, 4.5
	stores := []model.Store{
		{
			ID: 1, Name: "GS25 Le Loi", StoreType: model.StoreTypeGS25,
			Address: "87 Le Loi", District: "District 1", City: "Ho Chi Minh City",
			Latitude: &lat, Longitude: &lng, Rating: &rating, IsActive: true,
		},
		{ID: 2, Name: "No Coords", StoreType: model.StoreTypeOther, City: "Ho Chi Minh City"},
	}
	records := []model.Inventory{
		{ID: 7, StoreName: "GS25 Le Loi", ItemName: "Green Tea", ItemCategory: model.CategoryBeverages, IsAvailable: true},
	}

	report := NewReport()
	defer report.Close()
	require.NoError(t, report.AddStores(stores))
	require.NoError(t, report.AddInventory(records))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	saved, err := report.Save(path)
	require.NoError(t, err)
	assert.Equal(t, path, saved)

	// Read the workbook back and check the cells.
	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t, []string{"Stores", "Inventory"}, file.GetSheetList())

	name, err := file.GetCellValue("Stores", "B2")
	require.NoError(t, err)
	assert.Equal(t, "GS25 Le Loi", name)

	displayType, err := file.GetCellValue("Stores", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Type", displayType)

	displayType, err = file.GetCellValue("Stores", "C2")
	require.NoError(t, err)
	assert.Equal(t, "GS25", displayType)

	// Missing coordinates leave the cell empty instead of zero.
	emptyLat, err := file.GetCellValue("Stores", "I3")
	require.NoError(t, err)
	assert.Empty(t, emptyLat)

	item, err := file.GetCellValue("Inventory", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", item)
}

func TestReport_SaveWithoutSheets(t *testing.T) {
	report := NewReport()
	defer report.Close()

	_, err := report.Save(filepath.Join(t.TempDir(), "empty.xlsx"))
	assert.Error(t, err)
}
