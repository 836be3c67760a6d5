package model

// AnalyticsSnapshot is the aggregate view served by the analytics endpoint.
type AnalyticsSnapshot struct {
	TotalStores               int              `json:"totalStores"`
	ActiveStores              int              `json:"activeStores"`
	InactiveStores            int              `json:"inactiveStores"`
	TotalDistricts            int              `json:"totalDistricts"`
	TotalInventoryItems       int              `json:"totalInventoryItems"`
	AvailableInventoryItems   int              `json:"availableInventoryItems"`
	UnavailableInventoryItems int              `json:"unavailableInventoryItems"`
	StoresByDistrict          map[string]int   `json:"storesByDistrict"`
	StoresByType              map[string]int   `json:"storesByType"`
	AverageStoresPerDistrict  float64          `json:"averageStoresPerDistrict"`
	TopDistricts              []DistrictCount  `json:"topDistricts"`
	InventoryAvailabilityRate float64          `json:"inventoryAvailabilityRate"`
	TopStoreTypes             []StoreTypeShare `json:"topStoreTypes"`
	InventoryByCategory       map[string]int   `json:"inventoryByCategory"`
	TotalItems                int              `json:"totalItems"`
	AverageInventoryPerStore  float64          `json:"averageInventoryPerStore"`
}

type DistrictCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type StoreTypeShare struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// storeTypeDisplayNames maps brand tags to their display form.
var storeTypeDisplayNames = map[string]string{
	"7-eleven":      "7-Eleven",
	"satrafoods":    "Satrafoods",
	"familymart":    "FamilyMart",
	"ministop":      "MINISTOP",
	"bach-hoa-xanh": "Bách hóa XANH",
	"gs25":          "GS25",
	"circle-k":      "Circle K",
	"winmart":       "WinMart",
	"coopxtra":      "Co.opXtra",
	"other":         "Other",
	"unknown":       "Unknown",
}

// DisplayStoreType formats a store type tag for display.
func DisplayStoreType(t string) string {
	if name, ok := storeTypeDisplayNames[t]; ok {
		return name
	}
	return t
}
