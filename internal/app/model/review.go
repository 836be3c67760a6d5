package model

// Review belongs to a store and to either a registered user or a guest.
// Ownership checks are the backend's responsibility; the client only hides
// edit/delete affordances for non-owners.
type Review struct {
	ID            int64  `json:"id"`
	StoreID       int64  `json:"store"`
	UserID        *int64 `json:"user,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	UserFirstName string `json:"user_first_name,omitempty"`
	UserLastName  string `json:"user_last_name,omitempty"`
	GuestName     string `json:"guest_name,omitempty"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	IsApproved    bool   `json:"is_approved"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// DisplayName returns the name to render for the reviewer.
func (r Review) DisplayName() string {
	if r.UserFirstName != "" || r.UserLastName != "" {
		name := r.UserFirstName
		if r.UserLastName != "" {
			if name != "" {
				name += " "
			}
			name += r.UserLastName
		}
		return name
	}
	if r.UserName != "" {
		return r.UserName
	}
	if r.GuestName != "" {
		return r.GuestName
	}
	return "Anonymous"
}

// ReviewWrite is the create/update payload for a review.
type ReviewWrite struct {
	StoreID   int64   `json:"store"`
	GuestName *string `json:"guest_name,omitempty"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
}
