package domain

import "time"

// Person is a CRM contact, optionally linked to a business and labelled with
// tags. Email and Phone are nullable columns.
type Person struct {
	ID           string
	FirstName    string
	LastName     string
	Email        *string
	Phone        *string
	BusinessID   *string
	BusinessName *string
	Tags         []TagRef
	CreatedAt    time.Time
}

// TagRef is the compact tag view embedded in list rows.
type TagRef struct {
	ID   string
	Name string
}

// CategoryRef is the compact category view embedded in list rows.
type CategoryRef struct {
	ID   string
	Name string
}
