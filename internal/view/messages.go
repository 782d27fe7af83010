package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// maxListingLookups bounds the enrichment fan-out.
const maxListingLookups = 8

const replyBody = "Hi,%0D%0A%0D%0AThank you for your interest in my listing.%0D%0A%0D%0A"

// Inbox is what the messages page loads: the seller's messages plus the
// listings they refer to, keyed by id.
type Inbox struct {
	Messages []*entity.Message          `json:"messages"`
	Listings map[string]*entity.Listing `json:"listings"`
}

type MessageItem struct {
	ID           string  `json:"id"`
	BuyerEmail   string  `json:"buyer_email"`
	Message      string  `json:"message"`
	Received     string  `json:"received"`
	ListingID    string  `json:"listing_id"`
	ListingTitle string  `json:"listing_title,omitempty"`
	PriceLabel   string  `json:"price_label,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	ReplyURL     string  `json:"reply_url"`
}

type MessagesView struct {
	Email string        `json:"email"`
	Inbox State[Inbox]  `json:"inbox"`
	Items []MessageItem `json:"items"`
	Empty bool          `json:"empty"`
}

// MessagesController shows the acting seller every message sent about their
// listings.
type MessagesController struct {
	inbox     SellerInbox
	listings  ListingGetter
	principal usecase.Principal
	now       func() time.Time

	mu    sync.Mutex
	gen   generation
	state State[Inbox]
}

func NewMessagesController(inbox SellerInbox, listings ListingGetter, principal usecase.Principal) *MessagesController {
	return &MessagesController{
		inbox:     inbox,
		listings:  listings,
		principal: principal,
		now:       time.Now,
		state:     State[Inbox]{Status: StatusIdle},
	}
}

// Load fetches the inbox, then looks up each referenced listing in parallel.
// A listing that cannot be fetched is left out of the lookup table.
func (c *MessagesController) Load(ctx context.Context) {
	c.mu.Lock()
	token := c.gen.next()
	c.state = c.state.loading()
	c.mu.Unlock()

	inbox, err := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.current(token) {
		return
	}
	if err != nil {
		c.state = failed[Inbox](errors.Message(err, "Failed to load messages. Please try again later."))
		return
	}
	c.state = loaded(inbox)
}

// Retry repeats Load.
func (c *MessagesController) Retry(ctx context.Context) {
	c.Load(ctx)
}

func (c *MessagesController) load(ctx context.Context) (Inbox, error) {
	messages, err := c.inbox.ListBySeller(ctx, c.principal.Email())
	if err != nil {
		return Inbox{}, err
	}

	var (
		mu       sync.Mutex
		listings = make(map[string]*entity.Listing)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxListingLookups)
	for _, id := range distinctListingIDs(messages) {
		id := id
		g.Go(func() error {
			listing, err := c.listings.GetByID(gctx, id)
			if err != nil {
				logger.Warn("Skipping listing %s for inbox: %v", id, err)
				return nil
			}
			mu.Lock()
			listings[id] = listing
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return Inbox{Messages: messages, Listings: listings}, nil
}

func (c *MessagesController) Snapshot() MessagesView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := MessagesView{
		Email: c.principal.Email(),
		Inbox: c.state,
	}
	if c.state.Status != StatusLoaded {
		return view
	}

	now := c.now()
	view.Items = make([]MessageItem, 0, len(c.state.Data.Messages))
	for _, m := range c.state.Data.Messages {
		view.Items = append(view.Items, newMessageItem(m, c.state.Data.Listings[m.ListingID], now))
	}
	view.Empty = len(view.Items) == 0
	return view
}

func newMessageItem(m *entity.Message, listing *entity.Listing, now time.Time) MessageItem {
	item := MessageItem{
		ID:         m.ID,
		BuyerEmail: m.BuyerEmail,
		Message:    m.Message,
		Received:   TimeAgo(m.CreatedAt, now),
		ListingID:  m.ListingID,
	}
	title := ""
	if listing != nil {
		title = listing.Title
		item.ListingTitle = listing.Title
		item.PriceLabel = FormatPrice(listing.Price)
		item.ImageURL = listing.ImageURL
	}
	item.ReplyURL = ReplyURL(m.BuyerEmail, title)
	return item
}

// ReplyURL builds the mailto link for answering a buyer.
func ReplyURL(buyerEmail, listingTitle string) string {
	if listingTitle == "" {
		listingTitle = "Your inquiry"
	}
	return fmt.Sprintf("mailto:%s?subject=Re: %s&body=%s", buyerEmail, listingTitle, replyBody)
}

func distinctListingIDs(messages []*entity.Message) []string {
	seen := make(map[string]bool, len(messages))
	var ids []string
	for _, m := range messages {
		if m.ListingID == "" || seen[m.ListingID] {
			continue
		}
		seen[m.ListingID] = true
		ids = append(ids, m.ListingID)
	}
	return ids
}
