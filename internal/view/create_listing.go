package view

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/internal/validate"
	"marketplace/pkg/errors"
)

const (
	// RedirectDelay is the pause between a successful create and navigating
	// to the new listing.
	RedirectDelay = 1500 * time.Millisecond

	// AttachMaxSize caps images at attach time, before the upload service
	// applies its own limit.
	AttachMaxSize = 5 * 1024 * 1024

	ProgressPreparing = "Preparing your listing..."
	ProgressUploading = "Uploading image..."
	ProgressCreating  = "Creating listing..."
	ProgressRedirect  = "Success! Redirecting..."
)

type ListingForm struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	SellerEmail string `json:"seller_email"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

// DefaultListingForm is the form a fresh create page starts with.
func DefaultListingForm() ListingForm {
	return ListingForm{
		Category: entity.CategoryVehicles,
		Location: usecase.DefaultLocation,
	}
}

type AttachedImage struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type CreateListingView struct {
	Form         ListingForm     `json:"form"`
	Image        *AttachedImage  `json:"image,omitempty"`
	ImageError   string          `json:"image_error,omitempty"`
	PricePreview string          `json:"price_preview"`
	Categories   []string        `json:"categories"`
	Submission   Submission      `json:"submission"`
	Created      *entity.Listing `json:"created,omitempty"`
}

// CreateListingController runs the create form. Submitting uploads the
// attached image first, when there is one, and creates the listing only if
// that upload succeeded.
type CreateListingController struct {
	uploader ImageUploader
	listings ListingCreator
	nav      Navigator

	// Redirect overrides RedirectDelay, mainly for tests.
	Redirect time.Duration

	mu            sync.Mutex
	form          ListingForm
	image         *entity.SourceFile
	imageError    string
	submission    Submission
	created       *entity.Listing
	redirectTimer *time.Timer
}

func NewCreateListingController(uploader ImageUploader, listings ListingCreator, nav Navigator) *CreateListingController {
	return &CreateListingController{
		uploader:   uploader,
		listings:   listings,
		nav:        nav,
		Redirect:   RedirectDelay,
		form:       DefaultListingForm(),
		submission: Submission{Status: SubmitIdle},
	}
}

// SetForm replaces the text fields of the form.
func (c *CreateListingController) SetForm(form ListingForm) {
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()
}

// AttachImage checks the file against the attach-time limits and keeps it
// for submission. A rejected file leaves any previously attached image in
// place.
func (c *CreateListingController) AttachImage(file *entity.SourceFile) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case file == nil:
		return false
	case file.Size > AttachMaxSize:
		c.imageError = "Image size should be less than 5MB"
		return false
	case !validate.IsImage(file.ContentType):
		c.imageError = "Please upload an image file"
		return false
	}
	c.image = file
	c.imageError = ""
	return true
}

func (c *CreateListingController) RemoveImage() {
	c.mu.Lock()
	c.image = nil
	c.imageError = ""
	c.mu.Unlock()
}

// Submit runs the two submission phases. It returns once the outcome is
// known; navigation to the new listing fires later on a timer.
func (c *CreateListingController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.submission.Status == SubmitSubmitting || c.submission.Status == SubmitSucceeded {
		c.mu.Unlock()
		return
	}
	form := c.form
	image := c.image
	c.submission = Submission{Status: SubmitSubmitting, Progress: ProgressPreparing}
	c.mu.Unlock()

	var imageURL string
	if image != nil {
		c.progress(ProgressUploading)
		asset, err := c.uploader.UploadOne(ctx, image, usecase.UploadOptions{})
		if err != nil {
			c.fail(errors.Message(err, "Failed to upload image"))
			return
		}
		imageURL = asset.URL
	}

	c.progress(ProgressCreating)
	listing, err := c.listings.Create(ctx, usecase.CreateListingInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       parsePrice(form.Price),
		Category:    form.Category,
		SellerEmail: form.SellerEmail,
		Location:    form.Location,
		ImageURL:    imageURL,
	})
	if err != nil {
		c.fail(errors.Message(err, "Failed to create listing"))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = listing
	c.submission = Submission{Status: SubmitSucceeded, Progress: ProgressRedirect}
	path := ListingPath(listing.ID)
	c.redirectTimer = time.AfterFunc(c.Redirect, func() {
		c.nav.Navigate(path)
	})
}

// Close cancels a pending redirect.
func (c *CreateListingController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.redirectTimer != nil {
		c.redirectTimer.Stop()
		c.redirectTimer = nil
	}
}

func (c *CreateListingController) Snapshot() CreateListingView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := CreateListingView{
		Form:         c.form,
		ImageError:   c.imageError,
		PricePreview: PricePreview(c.form.Price),
		Categories:   entity.Categories(),
		Submission:   c.submission,
		Created:      c.created,
	}
	if c.image != nil {
		view.Image = &AttachedImage{
			Name:        c.image.Name,
			ContentType: c.image.ContentType,
			Size:        c.image.Size,
		}
	}
	return view
}

func (c *CreateListingController) progress(label string) {
	c.mu.Lock()
	c.submission.Progress = label
	c.mu.Unlock()
}

func (c *CreateListingController) fail(message string) {
	c.mu.Lock()
	c.submission = Submission{Status: SubmitFailed, Error: message}
	c.mu.Unlock()
}

// PricePreview formats the typed price the way the listing card will show
// it. It is empty while the field is empty or unparseable, leaving the
// placeholder to the view.
func PricePreview(raw string) string {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ""
	}
	return FormatPrice(price)
}

// parsePrice reads a typed price; anything unparseable is treated as not
// supplied.
func parsePrice(raw string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return price
}
