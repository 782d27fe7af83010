package entity

import (
	"strings"
	"time"
)

type Listing struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description *string   `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	Category    string    `json:"category" firestore:"category"`
	SellerEmail string    `json:"seller_email" firestore:"sellerEmail"`
	Location    string    `json:"location" firestore:"location"`
	ImageURL    *string   `json:"image_url" firestore:"imageUrl"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// ListingFilter narrows a listing query. Empty fields do not filter.
type ListingFilter struct {
	Category string
	Search   string
}

// ListingChanges holds a partial update; nil fields are left untouched.
type ListingChanges struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	SellerEmail *string  `json:"seller_email,omitempty"`
	Location    *string  `json:"location,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

func (c ListingChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Price == nil && c.Category == nil &&
		c.SellerEmail == nil && c.Location == nil && c.ImageURL == nil
}

// Apply merges the non-nil fields of c into l.
func (c ListingChanges) Apply(l *Listing) {
	if c.Title != nil {
		l.Title = *c.Title
	}
	if c.Description != nil {
		l.Description = c.Description
	}
	if c.Price != nil {
		l.Price = *c.Price
	}
	if c.Category != nil {
		l.Category = *c.Category
	}
	if c.SellerEmail != nil {
		l.SellerEmail = *c.SellerEmail
	}
	if c.Location != nil {
		l.Location = *c.Location
	}
	if c.ImageURL != nil {
		l.ImageURL = c.ImageURL
	}
}

// MatchesSearch reports whether the title or description contains search,
// ignoring case. A blank search matches everything.
func (l *Listing) MatchesSearch(search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(l.Title), needle) {
		return true
	}
	return l.Description != nil && strings.Contains(strings.ToLower(*l.Description), needle)
}
