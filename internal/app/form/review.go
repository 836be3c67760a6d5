package form

import (
	"strings"
	"unicode/utf8"

	"github.com/vtnguyen/storeboard/internal/app/model"
)

const maxCommentLength = 1000

// ReviewForm is the draft state of the review form. GuestName is used when
// no user is logged in.
type ReviewForm struct {
	StoreID   int64
	GuestName string
	Rating    int
	Comment   string
}

// FromReview pre-populates the draft for editing.
func FromReview(review model.Review) *ReviewForm {
	return &ReviewForm{
		StoreID:   review.StoreID,
		GuestName: review.GuestName,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}
}

// Validate checks the draft and returns per-field errors.
func (f *ReviewForm) Validate() Errors {
	errs := Errors{}

	if f.StoreID == 0 {
		errs["store"] = "Review must belong to a store"
	}
	if f.Rating < 1 || f.Rating > 5 {
		errs["rating"] = "Rating must be between 1 and 5"
	}
	if strings.TrimSpace(f.Comment) == "" {
		errs["comment"] = "Comment is required"
	} else if utf8.RuneCountInString(f.Comment) > maxCommentLength {
		errs["comment"] = "Comment must be at most 1000 characters"
	}

	return errs
}

// ToWrite converts a validated draft into the API write payload.
func (f *ReviewForm) ToWrite() model.ReviewWrite {
	write := model.ReviewWrite{
		StoreID: f.StoreID,
		Rating:  f.Rating,
		Comment: strings.TrimSpace(f.Comment),
	}
	if f.GuestName != "" {
		guest := f.GuestName
		write.GuestName = &guest
	}
	return write
}
