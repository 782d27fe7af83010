package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
)

const sellerEmail = "contactdanyael@gmail.com"

func TestMessagesController_LoadEnriches(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inbox := new(MockMessageService)
	inbox.On("ListBySeller", ctx, sellerEmail).Return([]*entity.Message{
		{ID: "m1", ListingID: "l1", BuyerEmail: "a@example.com", Message: "Hi", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m2", ListingID: "l1", BuyerEmail: "b@example.com", Message: "Hello", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: "m3", ListingID: "gone", BuyerEmail: "c@example.com", Message: "Yo", CreatedAt: now.Add(-2 * 24 * time.Hour)},
	}, nil).Once()

	listings := new(MockListingService)
	listings.On("GetByID", mock.Anything, "l1").Return(&entity.Listing{ID: "l1", Title: "Bike", Price: 250, ImageURL: strPtr("https://cdn/bike.png")}, nil).Once()
	listings.On("GetByID", mock.Anything, "gone").Return(nil, errors.NotFound("Listing", nil)).Once()

	c := NewMessagesController(inbox, listings, usecase.StaticPrincipal(sellerEmail))
	c.now = func() time.Time { return now }
	c.Load(ctx)

	view := c.Snapshot()
	assert.Equal(t, StatusLoaded, view.Inbox.Status)
	assert.Equal(t, sellerEmail, view.Email)
	assert.Len(t, view.Inbox.Data.Listings, 1)
	if assert.Len(t, view.Items, 3) {
		assert.Equal(t, "Bike", view.Items[0].ListingTitle)
		assert.Equal(t, "$250", view.Items[0].PriceLabel)
		assert.Equal(t, "2 minutes ago", view.Items[0].Received)
		assert.Equal(t, "3 hours ago", view.Items[1].Received)

		assert.Empty(t, view.Items[2].ListingTitle)
		assert.Equal(t, "2 days ago", view.Items[2].Received)
		assert.Contains(t, view.Items[2].ReplyURL, "subject=Re: Your inquiry")
	}
	listings.AssertExpectations(t)
	inbox.AssertExpectations(t)
}

func TestMessagesController_InboxFailure(t *testing.T) {
	ctx := context.Background()
	inbox := new(MockMessageService)
	inbox.On("ListBySeller", ctx, sellerEmail).Return(nil, errors.Transport("Failed to fetch messages", nil)).Once()
	listings := new(MockListingService)

	c := NewMessagesController(inbox, listings, usecase.StaticPrincipal(sellerEmail))
	c.Load(ctx)

	view := c.Snapshot()
	assert.Equal(t, StatusFailed, view.Inbox.Status)
	assert.Equal(t, "Failed to fetch messages", view.Inbox.Error)
	assert.Nil(t, view.Items)
	listings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMessagesController_EmptyInbox(t *testing.T) {
	ctx := context.Background()
	inbox := new(MockMessageService)
	inbox.On("ListBySeller", ctx, sellerEmail).Return([]*entity.Message{}, nil).Once()

	c := NewMessagesController(inbox, new(MockListingService), usecase.StaticPrincipal(sellerEmail))
	c.Load(ctx)

	view := c.Snapshot()
	assert.True(t, view.Empty)
	assert.NotNil(t, view.Items)
}

func TestReplyURL(t *testing.T) {
	assert.Equal(t,
		"mailto:buyer@example.com?subject=Re: Bike&body=Hi,%0D%0A%0D%0AThank you for your interest in my listing.%0D%0A%0D%0A",
		ReplyURL("buyer@example.com", "Bike"))
}

func TestDistinctListingIDs(t *testing.T) {
	ids := distinctListingIDs([]*entity.Message{
		{ListingID: "a"}, {ListingID: "b"}, {ListingID: "a"}, {ListingID: ""},
	})
	assert.Equal(t, []string{"a", "b"}, ids)
}
