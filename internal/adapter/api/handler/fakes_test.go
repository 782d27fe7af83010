package handler

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
	"marketplace/pkg/errors"
)

type memListings struct {
	mu   sync.Mutex
	seq  int
	rows map[string]entity.Listing
}

func newMemListings() *memListings {
	return &memListings{rows: make(map[string]entity.Listing)}
}

func (r *memListings) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	listing.ID = fmt.Sprintf("listing-%d", r.seq)
	listing.CreatedAt = time.Date(2024, 5, 1, 12, r.seq, 0, 0, time.UTC)
	r.rows[listing.ID] = *listing
	return nil
}

func (r *memListings) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return &row, nil
}

func (r *memListings) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, row := range r.rows {
		row := row
		if (filter.Category == "" || row.Category == filter.Category) && row.MatchesSearch(filter.Search) {
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memListings) Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	changes.Apply(&row)
	r.rows[id] = row
	return &row, nil
}

func (r *memListings) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

type memMessages struct {
	mu   sync.Mutex
	rows []entity.Message
}

func (r *memMessages) Create(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = fmt.Sprintf("message-%d", len(r.rows)+1)
	message.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, *message)
	return nil
}

func (r *memMessages) ListByListingID(ctx context.Context, listingID string) ([]*entity.Message, error) {
	return r.filter(func(m entity.Message) bool { return m.ListingID == listingID }), nil
}

func (r *memMessages) ListBySellerEmail(ctx context.Context, sellerEmail string) ([]*entity.Message, error) {
	return r.filter(func(m entity.Message) bool { return m.SellerEmail == sellerEmail }), nil
}

func (r *memMessages) filter(keep func(entity.Message) bool) []*entity.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.rows {
		m := m
		if keep(m) {
			out = append(out, &m)
		}
	}
	return out
}

func (r *memMessages) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.rows {
		if m.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			break
		}
	}
	return nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string]service.PutOptions
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string]service.PutOptions)}
}

func (s *memStorage) Put(ctx context.Context, bucket, path string, content io.Reader, size int64, opts service.PutOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := bucket + "/" + path
	if _, exists := s.objects[key]; exists && opts.NoOverwrite {
		return errors.Conflict("The resource already exists", nil)
	}
	s.objects[key] = opts
	return nil
}

func (s *memStorage) PublicURL(bucket, path string) string {
	return "https://storage.test/" + bucket + "/" + path
}

func (s *memStorage) Remove(ctx context.Context, bucket string, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range paths {
		delete(s.objects, bucket+"/"+p)
	}
	return nil
}

func (s *memStorage) Close() error {
	return nil
}
