package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/validate"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

// DefaultLocation is applied to listings created without one.
const DefaultLocation = "Palo Alto, CA"

type ListingUseCase struct {
	listingRepo repository.ListingRepository
}

func NewListingUseCase(listingRepo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
	}
}

type CreateListingInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	SellerEmail string  `json:"seller_email"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"image_url"`
}

// List returns listings newest first. An empty result is not an error.
func (uc *ListingUseCase) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, fail("Error fetching listings", "Failed to fetch listings", err)
	}
	if listings == nil {
		listings = []*entity.Listing{}
	}
	return listings, nil
}

func (uc *ListingUseCase) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	if id == "" {
		return nil, fail("Error fetching listing", "", errors.InvalidInput("Listing ID is required"))
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fail("Error fetching listing", "Failed to fetch listing", err)
	}
	return listing, nil
}

func (uc *ListingUseCase) Create(ctx context.Context, input CreateListingInput) (*entity.Listing, error) {
	if err := validateListing(input); err != nil {
		return nil, fail("Error creating listing", "", err)
	}

	listing := &entity.Listing{
		Title:       input.Title,
		Price:       input.Price,
		Category:    input.Category,
		SellerEmail: input.SellerEmail,
		Location:    input.Location,
		Description: optional(input.Description),
		ImageURL:    optional(input.ImageURL),
	}
	if listing.Location == "" {
		listing.Location = DefaultLocation
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, fail("Error creating listing", "Failed to create listing", err)
	}

	logger.Info("Created listing %s in %s", listing.ID, listing.Category)
	return listing, nil
}

// Update merges changes into the stored listing. Callers are trusted, so
// nothing is re-validated here.
func (uc *ListingUseCase) Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error) {
	if id == "" {
		return nil, fail("Error updating listing", "", errors.InvalidInput("Listing ID is required"))
	}

	listing, err := uc.listingRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, fail("Error updating listing", "Failed to update listing", err)
	}
	return listing, nil
}

// Delete removes a listing. Deleting a missing listing still succeeds.
func (uc *ListingUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fail("Error deleting listing", "", errors.InvalidInput("Listing ID is required"))
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return false, fail("Error deleting listing", "Failed to delete listing", err)
	}
	return true, nil
}

func validateListing(input CreateListingInput) error {
	// A zero price counts as not supplied.
	missing := validate.Required(
		validate.Field{Name: "title", Present: input.Title != ""},
		validate.Field{Name: "price", Present: input.Price != 0},
		validate.Field{Name: "seller_email", Present: input.SellerEmail != ""},
		validate.Field{Name: "category", Present: input.Category != ""},
	)
	if len(missing) > 0 {
		return errors.Validation(validate.MissingFieldsMessage(missing))
	}

	if !validate.Email(input.SellerEmail) {
		return errors.Validation("Invalid email format")
	}

	if !(input.Price > 0) {
		return errors.Validation("Price must be greater than 0")
	}

	if !entity.IsCategory(input.Category) {
		return errors.Validation("Invalid category")
	}

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fail logs a caught failure and normalizes it into an AppError.
func fail(action, fallback string, err error) error {
	logger.Error("%s: %v", action, err)
	return errors.From(err, fallback)
}
