package view

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Listing), args.Error(1)
}

func (m *MockListingService) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, input usecase.CreateListingInput) (*entity.Listing, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Listing), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, input usecase.SendMessageInput) (*entity.Message, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *MockMessageService) ListBySeller(ctx context.Context, sellerEmail string) ([]*entity.Message, error) {
	args := m.Called(ctx, sellerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadOne(ctx context.Context, file *entity.SourceFile, opts usecase.UploadOptions) (*entity.UploadedAsset, error) {
	args := m.Called(ctx, file, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UploadedAsset), args.Error(1)
}

// gatedLister answers List calls only when the test releases them, so the
// order in which fetches resolve can be controlled.
type gatedLister struct {
	calls   chan entity.ListingFilter
	release map[string]chan []*entity.Listing
}

func newGatedLister(searches ...string) *gatedLister {
	g := &gatedLister{
		calls:   make(chan entity.ListingFilter, len(searches)),
		release: make(map[string]chan []*entity.Listing),
	}
	for _, s := range searches {
		g.release[s] = make(chan []*entity.Listing, 1)
	}
	return g
}

func (g *gatedLister) List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error) {
	g.calls <- filter
	return <-g.release[filter.Search], nil
}

// gatedGetter answers GetByID calls only when the test releases them.
type gatedGetter struct {
	calls   chan string
	release map[string]chan *entity.Listing
}

func newGatedGetter(ids ...string) *gatedGetter {
	g := &gatedGetter{
		calls:   make(chan string, len(ids)),
		release: make(map[string]chan *entity.Listing),
	}
	for _, id := range ids {
		g.release[id] = make(chan *entity.Listing, 1)
	}
	return g
}

func (g *gatedGetter) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	g.calls <- id
	return <-g.release[id], nil
}

func strPtr(s string) *string {
	return &s
}
