package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/domain/entity"
	"marketplace/pkg/errors"
)

func validMessageInput() SendMessageInput {
	return SendMessageInput{
		ListingID:   "listing-1",
		BuyerEmail:  "buyer@example.com",
		SellerEmail: "seller@example.com",
		Message:     "Is this still available?",
	}
}

func TestMessageUseCase_SendLengthBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"single character", "a", ""},
		{"exactly the limit", strings.Repeat("a", 1000), ""},
		{"multibyte at the limit", strings.Repeat("é", 1000), ""},
		{"one over the limit", strings.Repeat("a", 1001), "Message is too long (max 1000 characters)"},
		{"astral characters at the limit", strings.Repeat("😀", 500), ""},
		{"astral characters count twice", strings.Repeat("😀", 600), "Message is too long (max 1000 characters)"},
		{"astral character tips over the limit", strings.Repeat("a", 999) + "😀", "Message is too long (max 1000 characters)"},
		{"whitespace only", "   \n\t", "Message content cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMessageRepository)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Message")).Return(nil).Maybe()
			uc := NewMessageUseCase(repo)

			input := validMessageInput()
			input.Message = tt.body
			msg, err := uc.Send(context.Background(), input)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, msg)
				return
			}
			assert.Nil(t, msg)
			assert.True(t, errors.Is(err, errors.CodeValidation))
			assert.Equal(t, tt.wantErr, errors.Message(err, ""))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMessageUseCase_SendValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*SendMessageInput)
		expected string
	}{
		{"missing fields", func(in *SendMessageInput) { in.ListingID = ""; in.Message = "" }, "Missing required fields: listing_id, message"},
		{"bad buyer email", func(in *SendMessageInput) { in.BuyerEmail = "buyer" }, "Invalid buyer email format"},
		{"bad seller email", func(in *SendMessageInput) { in.SellerEmail = "seller @example.com" }, "Invalid seller email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewMessageUseCase(new(MockMessageRepository))

			input := validMessageInput()
			tt.mutate(&input)
			_, err := uc.Send(context.Background(), input)

			assert.Equal(t, tt.expected, errors.Message(err, ""))
		})
	}
}

func TestMessageUseCase_SendTrimsStoredFields(t *testing.T) {
	repo := new(MockMessageRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Message == "Hello there" && m.ListingID == "listing-1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Message).ID = "m1"
	}).Return(nil).Once()
	uc := NewMessageUseCase(repo)

	input := validMessageInput()
	input.Message = "  Hello there  "
	msg, err := uc.Send(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "m1", msg.ID)
	repo.AssertExpectations(t)
}

func TestMessageUseCase_SendTransportError(t *testing.T) {
	repo := new(MockMessageRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.Transport("Failed to send message", nil))
	uc := NewMessageUseCase(repo)

	_, err := uc.Send(context.Background(), validMessageInput())

	assert.True(t, errors.Is(err, errors.CodeTransport))
	assert.Equal(t, "Failed to send message", errors.Message(err, ""))
}

func TestMessageUseCase_Lists(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	repo.On("ListByListingID", ctx, "listing-1").Return([]*entity.Message{{ID: "m1"}}, nil)
	repo.On("ListBySellerEmail", ctx, "seller@example.com").Return(nil, nil)
	uc := NewMessageUseCase(repo)

	byListing, err := uc.ListByListing(ctx, "listing-1")
	require.NoError(t, err)
	assert.Len(t, byListing, 1)

	bySeller, err := uc.ListBySeller(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.NotNil(t, bySeller)
	assert.Empty(t, bySeller)

	_, err = uc.ListByListing(ctx, "")
	assert.Equal(t, "Listing ID is required", errors.Message(err, ""))
	_, err = uc.ListBySeller(ctx, "")
	assert.Equal(t, "Seller email is required", errors.Message(err, ""))
}

func TestMessageUseCase_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	repo.On("Delete", ctx, "missing").Return(nil)
	uc := NewMessageUseCase(repo)

	ok, err := uc.Delete(ctx, "missing")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.Delete(ctx, "")
	assert.False(t, ok)
	assert.Equal(t, "Message ID is required", errors.Message(err, ""))
}
