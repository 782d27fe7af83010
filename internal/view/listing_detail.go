package view

import (
	"context"
	"sync"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/internal/validate"
	"marketplace/pkg/errors"
)

const (
	DefaultComposeMessage = "I want to buy your bike!"
	// SentNoticeDuration is how long the "message sent" notice stays up.
	SentNoticeDuration = 3 * time.Second
)

type ComposeForm struct {
	BuyerEmail string `json:"buyer_email"`
	Message    string `json:"message"`
}

type ListingDetailView struct {
	ID         string                 `json:"id"`
	Listing    State[*entity.Listing] `json:"listing"`
	NotFound   bool                   `json:"not_found"`
	PriceLabel string                 `json:"price_label,omitempty"`
	Posted     string                 `json:"posted,omitempty"`
	Compose    ComposeForm            `json:"compose"`
	Submission Submission             `json:"submission"`
}

// ListingDetailController loads one listing and runs the "message the
// seller" form beside it.
type ListingDetailController struct {
	listings ListingGetter
	messages MessageSender

	// SentNotice overrides SentNoticeDuration, mainly for tests.
	SentNotice time.Duration
	now        func() time.Time

	mu         sync.Mutex
	gen        generation
	id         string
	state      State[*entity.Listing]
	notFound   bool
	compose    ComposeForm
	submission Submission
	sendSeq    uint64
	resetTimer *time.Timer
}

func NewListingDetailController(listings ListingGetter, messages MessageSender) *ListingDetailController {
	return &ListingDetailController{
		listings:   listings,
		messages:   messages,
		SentNotice: SentNoticeDuration,
		now:        time.Now,
		state:      State[*entity.Listing]{Status: StatusIdle},
		compose:    ComposeForm{Message: DefaultComposeMessage},
		submission: Submission{Status: SubmitIdle},
	}
}

// Load fetches the listing for id. A missing listing ends in the loaded
// state with no data and NotFound set, not in the failed state.
func (c *ListingDetailController) Load(ctx context.Context, id string) {
	c.mu.Lock()
	c.id = id
	token := c.gen.next()
	c.state = State[*entity.Listing]{Status: StatusLoading}
	c.notFound = false
	c.mu.Unlock()

	listing, err := c.listings.GetByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.current(token) {
		return
	}
	switch {
	case errors.Is(err, errors.CodeNotFound):
		c.state = loaded[*entity.Listing](nil)
		c.notFound = true
	case err != nil:
		c.state = failed[*entity.Listing](errors.Message(err, "Failed to load listing. Please try again later."))
	default:
		c.state = loaded(listing)
	}
}

// Retry reloads the current listing.
func (c *ListingDetailController) Retry(ctx context.Context) {
	c.mu.Lock()
	id := c.id
	c.mu.Unlock()
	c.Load(ctx, id)
}

func (c *ListingDetailController) SetBuyerEmail(email string) {
	c.mu.Lock()
	c.compose.BuyerEmail = email
	c.mu.Unlock()
}

func (c *ListingDetailController) SetMessage(message string) {
	c.mu.Lock()
	c.compose.Message = message
	c.mu.Unlock()
}

// SendMessage posts the compose form to the listing's seller. Blank fields
// are rejected before any service call. On success the form is cleared and
// the sent notice reverts to idle after SentNotice; on failure the form is
// kept as typed.
func (c *ListingDetailController) SendMessage(ctx context.Context) {
	c.mu.Lock()
	if c.submission.Status == SubmitSubmitting {
		c.mu.Unlock()
		return
	}
	form := c.compose
	listing := c.state.Data
	if msg := validateCompose(form); msg != "" {
		c.submission = Submission{Status: SubmitFailed, Error: msg}
		c.mu.Unlock()
		return
	}
	if listing == nil {
		c.submission = Submission{Status: SubmitFailed, Error: "Listing is not loaded"}
		c.mu.Unlock()
		return
	}
	c.stopResetLocked()
	c.submission = Submission{Status: SubmitSubmitting, Progress: "Sending..."}
	c.mu.Unlock()

	_, err := c.messages.Send(ctx, usecase.SendMessageInput{
		ListingID:   listing.ID,
		BuyerEmail:  form.BuyerEmail,
		SellerEmail: listing.SellerEmail,
		Message:     form.Message,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.submission = Submission{Status: SubmitFailed, Error: errors.Message(err, "Failed to send message. Please try again.")}
		return
	}

	c.submission = Submission{Status: SubmitSucceeded}
	c.compose = ComposeForm{}
	c.sendSeq++
	seq := c.sendSeq
	c.resetTimer = time.AfterFunc(c.SentNotice, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.sendSeq == seq && c.submission.Status == SubmitSucceeded {
			c.submission = Submission{Status: SubmitIdle}
		}
	})
}

// Close stops pending timers; call it when the page is left.
func (c *ListingDetailController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopResetLocked()
}

func (c *ListingDetailController) Snapshot() ListingDetailView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := ListingDetailView{
		ID:         c.id,
		Listing:    c.state,
		NotFound:   c.notFound,
		Compose:    c.compose,
		Submission: c.submission,
	}
	if l := c.state.Data; l != nil && c.state.Status == StatusLoaded {
		view.PriceLabel = FormatPrice(l.Price)
		view.Posted = TimeAgo(l.CreatedAt, c.now())
	}
	return view
}

func (c *ListingDetailController) stopResetLocked() {
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

func validateCompose(form ComposeForm) string {
	if validate.Blank(form.BuyerEmail) || validate.Blank(form.Message) {
		return "Please fill in all fields"
	}
	return ""
}
