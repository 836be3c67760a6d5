package model

type StoreType string

const (
	StoreTypeSevenEleven StoreType = "7-eleven"
	StoreTypeSatrafoods  StoreType = "satrafoods"
	StoreTypeFamilyMart  StoreType = "familymart"
	StoreTypeMinistop    StoreType = "ministop"
	StoreTypeBachHoaXanh StoreType = "bach-hoa-xanh"
	StoreTypeGS25        StoreType = "gs25"
	StoreTypeCircleK     StoreType = "circle-k"
	StoreTypeWinMart     StoreType = "winmart"
	StoreTypeCoopXtra    StoreType = "coopxtra"
	StoreTypeOther       StoreType = "other"
)

// StoreTypes lists the closed set of brand tags in display order.
var StoreTypes = []StoreType{
	StoreTypeSevenEleven,
	StoreTypeSatrafoods,
	StoreTypeFamilyMart,
	StoreTypeMinistop,
	StoreTypeBachHoaXanh,
	StoreTypeGS25,
	StoreTypeCircleK,
	StoreTypeWinMart,
	StoreTypeCoopXtra,
	StoreTypeOther,
}

func (t StoreType) Valid() bool {
	for _, known := range StoreTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Store is the API-facing shape of a store. Persistence belongs to the
// backend; this is a render-scoped copy.
type Store struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	StoreType    StoreType `json:"store_type"`
	District     string    `json:"district,omitempty"`
	DistrictID   *int64    `json:"district_obj,omitempty"`
	City         string    `json:"city"`
	OpeningHours string    `json:"opening_hours,omitempty"`
	IsActive     bool      `json:"is_active"`
	Rating       *float64  `json:"rating,omitempty"`
	CreatedAt    string    `json:"created_at,omitempty"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
}

// GeoPoint is the GeoJSON point the backend expects on writes. Coordinate
// order on the wire is [longitude, latitude], the reverse of the (lat, lng)
// convention used everywhere else in this codebase.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds the wire point from the internal (lat, lng) order.
func NewGeoPoint(latitude, longitude float64) GeoPoint {
	return GeoPoint{
		Type:        "Point",
		Coordinates: [2]float64{longitude, latitude},
	}
}

// Latitude returns the latitude from the wire ordering.
func (p GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// Longitude returns the longitude from the wire ordering.
func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }

// StoreWrite is the create/update payload for a store.
type StoreWrite struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        *string   `json:"phone"`
	Email        *string   `json:"email"`
	Location     GeoPoint  `json:"location"`
	StoreType    StoreType `json:"store_type"`
	District     string    `json:"district"`
	City         string    `json:"city"`
	OpeningHours *string   `json:"opening_hours"`
	IsActive     bool      `json:"is_active"`
	Rating       *float64  `json:"rating"`
}

// StoreLocation is the lightweight shape returned by the locations endpoint
// for map rendering.
type StoreLocation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	StoreType StoreType `json:"store_type"`
	IsActive  bool      `json:"is_active"`
}
