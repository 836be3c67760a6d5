package model

type DistrictType string

const (
	DistrictUrban      DistrictType = "urban"
	DistrictSuburban   DistrictType = "suburban"
	DistrictRural      DistrictType = "rural"
	DistrictIndustrial DistrictType = "industrial"
	DistrictTourist    DistrictType = "tourist"
	DistrictOther      DistrictType = "other"
)

var DistrictTypes = []DistrictType{
	DistrictUrban,
	DistrictSuburban,
	DistrictRural,
	DistrictIndustrial,
	DistrictTourist,
	DistrictOther,
}

func (t DistrictType) Valid() bool {
	for _, known := range DistrictTypes {
		if t == known {
			return true
		}
	}
	return false
}

// District is read-mostly reference data used for filtering and for
// auto-detection on store location changes.
type District struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	City         string       `json:"city"`
	DistrictType DistrictType `json:"district_type"`
	IsActive     bool         `json:"is_active"`
}

// DistrictLookup is the result of resolving a district from coordinates.
type DistrictLookup struct {
	District *District `json:"district"`
	City     string    `json:"city"`
}
