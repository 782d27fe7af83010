package view

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"marketplace/internal/domain/entity"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders a whole-dollar USD amount, e.g. "$1,250".
func FormatPrice(price float64) string {
	dollars := int64(math.Round(math.Abs(price)))
	if price < 0 && dollars != 0 {
		return pricePrinter.Sprintf("-$%d", dollars)
	}
	return pricePrinter.Sprintf("$%d", dollars)
}

// TimeAgo describes how long before now t happened, coarsest unit first
// capped at weeks.
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 604800:
		return plural(seconds/86400, "day")
	default:
		return plural(seconds/604800, "week")
	}
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// ListingCard is the grid/list rendering of one listing.
type ListingCard struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	PriceLabel string  `json:"price_label"`
	Location   string  `json:"location"`
	Category   string  `json:"category"`
	ImageURL   *string `json:"image_url"`
	Href       string  `json:"href"`
}

func NewListingCard(l *entity.Listing) ListingCard {
	return ListingCard{
		ID:         l.ID,
		Title:      l.Title,
		PriceLabel: FormatPrice(l.Price),
		Location:   l.Location,
		Category:   l.Category,
		ImageURL:   l.ImageURL,
		Href:       ListingPath(l.ID),
	}
}

func ListingCards(listings []*entity.Listing) []ListingCard {
	cards := make([]ListingCard, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, NewListingCard(l))
	}
	return cards
}
