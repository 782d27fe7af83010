package repository

import (
	"context"

	"marketplace/internal/domain/entity"
)

// ListingRepository is the table side of the hosted backend for listings.
// GetByID and Update report a missing row as an errors.NotFound AppError.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error)
	Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error)
	Delete(ctx context.Context, id string) error
}
