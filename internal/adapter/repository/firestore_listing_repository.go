package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
)

const listingsCollection = "listings"

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	doc := r.client.Collection(listingsCollection).NewDoc()
	listing.ID = doc.ID
	listing.CreatedAt = time.Now().UTC()

	if _, err := doc.Create(ctx, listing); err != nil {
		return errors.Transport("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection(listingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Transport("Failed to fetch listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Transport("Failed to fetch listing", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	query := r.client.Collection(listingsCollection).Query

	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	// Firestore has no substring match, so the title/description search runs
	// over the category-filtered result.
	listings := []*entity.Listing{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Transport("Failed to fetch listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			logger.Error("Failed to parse listing %s: %v", doc.Ref.ID, err)
			continue
		}
		if listing.MatchesSearch(filter.Search) {
			listings = append(listings, &listing)
		}
	}

	return listings, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error) {
	if changes.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, listingUpdates(changes))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Transport("Failed to update listing", err)
	}

	return r.GetByID(ctx, id)
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	// Deleting a missing document is not an error in Firestore.
	_, err := r.client.Collection(listingsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Transport("Failed to delete listing", err)
	}

	return nil
}

func listingUpdates(changes entity.ListingChanges) []firestore.Update {
	var updates []firestore.Update
	if changes.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *changes.Title})
	}
	if changes.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *changes.Description})
	}
	if changes.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *changes.Price})
	}
	if changes.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *changes.Category})
	}
	if changes.SellerEmail != nil {
		updates = append(updates, firestore.Update{Path: "sellerEmail", Value: *changes.SellerEmail})
	}
	if changes.Location != nil {
		updates = append(updates, firestore.Update{Path: "location", Value: *changes.Location})
	}
	if changes.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *changes.ImageURL})
	}
	return updates
}
