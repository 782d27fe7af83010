package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/validate"
	"marketplace/pkg/errors"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
}

func NewMessageUseCase(messageRepo repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
	}
}

type SendMessageInput struct {
	ListingID   string `json:"listing_id"`
	BuyerEmail  string `json:"buyer_email"`
	SellerEmail string `json:"seller_email"`
	Message     string `json:"message"`
}

func (uc *MessageUseCase) ListByListing(ctx context.Context, listingID string) ([]*entity.Message, error) {
	if listingID == "" {
		return nil, fail("Error fetching messages", "", errors.InvalidInput("Listing ID is required"))
	}

	messages, err := uc.messageRepo.ListByListingID(ctx, listingID)
	if err != nil {
		return nil, fail("Error fetching messages", "Failed to fetch messages", err)
	}
	return nonNilMessages(messages), nil
}

func (uc *MessageUseCase) ListBySeller(ctx context.Context, sellerEmail string) ([]*entity.Message, error) {
	if sellerEmail == "" {
		return nil, fail("Error fetching seller messages", "", errors.InvalidInput("Seller email is required"))
	}

	messages, err := uc.messageRepo.ListBySellerEmail(ctx, sellerEmail)
	if err != nil {
		return nil, fail("Error fetching seller messages", "Failed to fetch messages", err)
	}
	return nonNilMessages(messages), nil
}

// Send validates and stores a buyer's message. Stored fields are trimmed.
func (uc *MessageUseCase) Send(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	if err := validateMessage(input); err != nil {
		return nil, fail("Error sending message", "", err)
	}

	message := &entity.Message{
		ListingID:   strings.TrimSpace(input.ListingID),
		BuyerEmail:  strings.TrimSpace(input.BuyerEmail),
		SellerEmail: strings.TrimSpace(input.SellerEmail),
		Message:     strings.TrimSpace(input.Message),
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fail("Error sending message", "Failed to send message", err)
	}
	return message, nil
}

// Delete removes a message. Deleting a missing message still succeeds.
func (uc *MessageUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fail("Error deleting message", "", errors.InvalidInput("Message ID is required"))
	}

	if err := uc.messageRepo.Delete(ctx, id); err != nil {
		return false, fail("Error deleting message", "Failed to delete message", err)
	}
	return true, nil
}

func validateMessage(input SendMessageInput) error {
	missing := validate.Required(
		validate.Field{Name: "listing_id", Present: input.ListingID != ""},
		validate.Field{Name: "buyer_email", Present: input.BuyerEmail != ""},
		validate.Field{Name: "seller_email", Present: input.SellerEmail != ""},
		validate.Field{Name: "message", Present: input.Message != ""},
	)
	if len(missing) > 0 {
		return errors.Validation(validate.MissingFieldsMessage(missing))
	}

	if !validate.Email(input.BuyerEmail) {
		return errors.Validation("Invalid buyer email format")
	}
	if !validate.Email(input.SellerEmail) {
		return errors.Validation("Invalid seller email format")
	}

	if validate.Blank(input.Message) {
		return errors.Validation("Message content cannot be empty")
	}
	if validate.MessageTooLong(input.Message) {
		return errors.Validation("Message is too long (max 1000 characters)")
	}

	return nil
}

func nonNilMessages(messages []*entity.Message) []*entity.Message {
	if messages == nil {
		return []*entity.Message{}
	}
	return messages
}
