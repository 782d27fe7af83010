package usecase

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"
	"marketplace/pkg/errors"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByListingID(ctx context.Context, listingID string) ([]*entity.Message, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) ListBySellerEmail(ctx context.Context, sellerEmail string) ([]*entity.Message, error) {
	args := m.Called(ctx, sellerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, bucket, path string, content io.Reader, size int64, opts service.PutOptions) error {
	args := m.Called(ctx, bucket, path, content, size, opts)
	return args.Error(0)
}

func (m *MockObjectStorage) PublicURL(bucket, path string) string {
	args := m.Called(bucket, path)
	return args.String(0)
}

func (m *MockObjectStorage) Remove(ctx context.Context, bucket string, paths []string) error {
	args := m.Called(ctx, bucket, paths)
	return args.Error(0)
}

func (m *MockObjectStorage) Close() error {
	return m.Called().Error(0)
}

// memListingRepository behaves like the table backend closely enough for
// round-trip tests.
type memListingRepository struct {
	mu   sync.Mutex
	seq  int
	rows map[string]entity.Listing
	now  time.Time
}

func newMemListingRepository() *memListingRepository {
	return &memListingRepository{
		rows: make(map[string]entity.Listing),
		now:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *memListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	listing.ID = "listing-" + strconv.Itoa(r.seq)
	listing.CreatedAt = r.now.Add(time.Duration(r.seq) * time.Minute)
	r.rows[listing.ID] = *listing
	return nil
}

func (r *memListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return &row, nil
}

func (r *memListingRepository) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Listing
	for _, row := range r.rows {
		row := row
		if filter.Category != "" && row.Category != filter.Category {
			continue
		}
		if !row.MatchesSearch(filter.Search) {
			continue
		}
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memListingRepository) Update(ctx context.Context, id string, changes entity.ListingChanges) (*entity.Listing, error) {
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

func (r *memListingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}
