package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/pkg/errors"
)

const messagesCollection = "messages"

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(messagesCollection).Doc(message.ID).Create(ctx, message)
	if err != nil {
		return errors.Transport("Failed to send message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByListingID(ctx context.Context, listingID string) ([]*entity.Message, error) {
	return r.list(ctx, "listingId", listingID)
}

func (r *firestoreMessageRepository) ListBySellerEmail(ctx context.Context, sellerEmail string) ([]*entity.Message, error) {
	return r.list(ctx, "sellerEmail", sellerEmail)
}

func (r *firestoreMessageRepository) list(ctx context.Context, field, value string) ([]*entity.Message, error) {
	query := r.client.Collection(messagesCollection).
		Where(field, "==", value).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	messages := []*entity.Message{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Transport("Failed to fetch messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Transport("Failed to fetch messages", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(messagesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Transport("Failed to delete message", err)
	}

	return nil
}
