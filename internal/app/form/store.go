package form

import (
	"strconv"
	"strings"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

// StoreForm is the draft state of the store create/edit form. All inputs
// are kept as strings the way the controls hold them; parsing happens at
// validation time.
type StoreForm struct {
	Name         string
	Address      string
	Phone        string
	Email        string
	Latitude     string
	Longitude    string
	StoreType    string
	District     string
	City         string
	OpeningHours string
	IsActive     bool
	Rating       string

	// locationResolved marks district/city as auto-filled from a reverse
	// lookup; both render read-only from then on.
	locationResolved bool
}

// NewStoreForm returns a draft with the defaults of the create dialog.
func NewStoreForm() *StoreForm {
	return &StoreForm{
		StoreType: string(model.StoreTypeOther),
		City:      "Ho Chi Minh City",
		IsActive:  true,
	}
}

// FromStore pre-populates the draft for editing.
func FromStore(store model.Store) *StoreForm {
	f := &StoreForm{
		Name:         store.Name,
		Address:      store.Address,
		Phone:        store.Phone,
		Email:        store.Email,
		StoreType:    string(store.StoreType),
		District:     store.District,
		City:         store.City,
		OpeningHours: store.OpeningHours,
		IsActive:     store.IsActive,
	}
	if store.Latitude != nil {
		f.Latitude = strconv.FormatFloat(*store.Latitude, 'f', -1, 64)
	}
	if store.Longitude != nil {
		f.Longitude = strconv.FormatFloat(*store.Longitude, 'f', -1, 64)
	}
	if store.Rating != nil {
		f.Rating = strconv.FormatFloat(*store.Rating, 'f', -1, 64)
	}
	if store.District != "" {
		f.locationResolved = true
	}
	return f
}

// ResolveLocation fills district and city from a reverse lookup and makes
// them read-only.
func (f *StoreForm) ResolveLocation(district, city string) {
	f.District = district
	f.City = city
	f.locationResolved = true
}

// LocationResolved reports whether district/city are auto-filled.
func (f *StoreForm) LocationResolved() bool { return f.locationResolved }

// Validate checks the draft and returns per-field errors.
func (f *StoreForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Store name is required"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Address is required"
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if f.Phone != "" && !ValidPhone(f.Phone) {
		errs["phone"] = "Please enter a valid Vietnamese phone number"
	}

	if f.Latitude == "" {
		errs["latitude"] = "Latitude is required"
	} else if lat, err := strconv.ParseFloat(f.Latitude, 64); err != nil || !ValidLatitude(lat) {
		errs["latitude"] = "Latitude must be between -90 and 90"
	}
	if f.Longitude == "" {
		errs["longitude"] = "Longitude is required"
	} else if lng, err := strconv.ParseFloat(f.Longitude, 64); err != nil || !ValidLongitude(lng) {
		errs["longitude"] = "Longitude must be between -180 and 180"
	}

	if !model.StoreType(f.StoreType).Valid() {
		errs["store_type"] = "Please choose a store type"
	}

	if f.Rating != "" {
		rating, err := strconv.ParseFloat(f.Rating, 64)
		if err != nil || rating < 0 || rating > 5 {
			errs["rating"] = "Rating must be between 0 and 5"
		}
	}

	return errs
}

// ToWrite converts a validated draft into the API write payload. The wire
// coordinate order is [longitude, latitude] regardless of the (lat, lng)
// order the form holds.
func (f *StoreForm) ToWrite() model.StoreWrite {
	lat, _ := strconv.ParseFloat(f.Latitude, 64)
	lng, _ := strconv.ParseFloat(f.Longitude, 64)

	write := model.StoreWrite{
		Name:      strings.TrimSpace(f.Name),
		Address:   strings.TrimSpace(f.Address),
		Location:  model.NewGeoPoint(lat, lng),
		StoreType: model.StoreType(f.StoreType),
		District:  f.District,
		City:      f.City,
		IsActive:  f.IsActive,
	}
	if f.Phone != "" {
		phone := f.Phone
		write.Phone = &phone
	}
	if f.Email != "" {
		email := f.Email
		write.Email = &email
	}
	if f.OpeningHours != "" {
		hours := f.OpeningHours
		write.OpeningHours = &hours
	}
	if f.Rating != "" {
		if rating, err := strconv.ParseFloat(f.Rating, 64); err == nil {
			write.Rating = &rating
		}
	}
	return write
}
