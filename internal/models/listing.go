package models

import "time"

// Listing is a single afisha entry. ReleaseDate is free-form text, not a
// parsed calendar date. Poster holds the public reference returned by the
// poster store ("/uploads/<name>" on the disk backend).
type Listing struct {
	ID          int64
	Title       string
	Description string
	ReleaseDate string
	Poster      string
	Genre       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
