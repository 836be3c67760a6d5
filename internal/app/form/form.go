// Package form holds the draft state and local validation for the modal
// forms. Validation runs before any network call; errors are keyed by field
// and cleared as soon as that field is edited.
package form

import (
	"regexp"
	"strings"
)

// Errors maps field name to its validation message.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// Clear removes the error for one field, used when the user edits it.
func (e Errors) Clear(field string) { delete(e, field) }

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Vietnamese phone numbers, spaces stripped before matching.
	phonePattern   = regexp.MustCompile(`^(\+84|84|0)[1-9][0-9]{8,9}$`)
	barcodePattern = regexp.MustCompile(`^[0-9]{8,20}$`)
)

// ValidEmail checks the email format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone checks a Vietnamese phone number, ignoring spaces.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// ValidBarcode accepts only all-digit strings of 8 to 20 characters.
func ValidBarcode(barcode string) bool {
	return barcodePattern.MatchString(barcode)
}

// ValidLatitude checks the decimal-degree range.
func ValidLatitude(lat float64) bool { return lat >= -90 && lat <= 90 }

// ValidLongitude checks the decimal-degree range.
func ValidLongitude(lng float64) bool { return lng >= -180 && lng <= 180 }
