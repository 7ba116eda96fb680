package domain

import "time"

// Business is an organisation contactable through an optional email address,
// classified by categories and labelled with tags.
type Business struct {
	ID           string
	Name         string
	ContactEmail *string
	Categories   []CategoryRef
	Tags         []TagRef
	CreatedAt    time.Time
}

// Category groups businesses. Names are unique.
type Category struct {
	ID   string
	Name string
}

// Tag labels people and businesses. Names are unique.
type Tag struct {
	ID   string
	Name string
}
