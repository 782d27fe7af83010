package view

import (
	"context"
	"sync"

	"marketplace/internal/domain/entity"
	"marketplace/pkg/errors"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

const allListingsTitle = "All listings"

// HomeView is a point-in-time copy of the home page.
type HomeView struct {
	Title      string                   `json:"title"`
	Category   string                   `json:"category"`
	Search     string                   `json:"search"`
	ViewMode   ViewMode                 `json:"view_mode"`
	Categories []string                 `json:"categories"`
	Listings   State[[]*entity.Listing] `json:"listings"`
	Cards      []ListingCard            `json:"cards"`
	Empty      bool                     `json:"empty"`
}

// HomeController refetches listings whenever the category or search query
// changes. Superseded fetches are not cancelled; their results are dropped.
type HomeController struct {
	listings ListingLister

	mu       sync.Mutex
	gen      generation
	category string
	search   string
	viewMode ViewMode
	state    State[[]*entity.Listing]
}

func NewHomeController(listings ListingLister) *HomeController {
	return &HomeController{
		listings: listings,
		viewMode: ViewGrid,
		state:    State[[]*entity.Listing]{Status: StatusIdle},
	}
}

// Load performs the initial fetch.
func (c *HomeController) Load(ctx context.Context) {
	c.fetch(ctx)
}

func (c *HomeController) SetCategory(ctx context.Context, category string) {
	c.mu.Lock()
	c.category = category
	c.mu.Unlock()
	c.fetch(ctx)
}

func (c *HomeController) SetSearch(ctx context.Context, query string) {
	c.mu.Lock()
	c.search = query
	c.mu.Unlock()
	c.fetch(ctx)
}

// Browse sets both category and search, then fetches once.
func (c *HomeController) Browse(ctx context.Context, category, query string) {
	c.mu.Lock()
	c.category = category
	c.search = query
	c.mu.Unlock()
	c.fetch(ctx)
}

// Retry repeats the fetch for the current category and query.
func (c *HomeController) Retry(ctx context.Context) {
	c.fetch(ctx)
}

// SetViewMode only changes presentation and never refetches.
func (c *HomeController) SetViewMode(mode ViewMode) {
	if mode != ViewGrid && mode != ViewList {
		return
	}
	c.mu.Lock()
	c.viewMode = mode
	c.mu.Unlock()
}

func (c *HomeController) Snapshot() HomeView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := HomeView{
		Title:      allListingsTitle,
		Category:   c.category,
		Search:     c.search,
		ViewMode:   c.viewMode,
		Categories: entity.Categories(),
		Listings:   c.state,
	}
	if c.category != "" {
		view.Title = c.category
	}
	if c.state.Status == StatusLoaded {
		view.Cards = ListingCards(c.state.Data)
		view.Empty = len(c.state.Data) == 0
	}
	return view
}

func (c *HomeController) fetch(ctx context.Context) {
	c.mu.Lock()
	token := c.gen.next()
	filter := entity.ListingFilter{Category: c.category, Search: c.search}
	c.state = c.state.loading()
	c.mu.Unlock()

	listings, err := c.listings.List(ctx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.current(token) {
		return
	}
	if err != nil {
		c.state = failed[[]*entity.Listing](errors.Message(err, "Failed to load listings. Please try again later."))
		return
	}
	c.state = loaded(listings)
}
