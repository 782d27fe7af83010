package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByListingID(ctx context.Context, listingID string) ([]*entity.Message, error)
	ListBySellerEmail(ctx context.Context, sellerEmail string) ([]*entity.Message, error)
	Delete(ctx context.Context, id string) error
}
