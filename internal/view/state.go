// Package view holds the page controllers: small state machines that own a
// page's transient state and drive the resource services.
package view

import (
	"context"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// State is a fetch lifecycle. Error is set only when Status is StatusFailed.
type State[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
}

func (s State[T]) loading() State[T] {
	return State[T]{Status: StatusLoading, Data: s.Data}
}

func loaded[T any](data T) State[T] {
	return State[T]{Status: StatusLoaded, Data: data}
}

func failed[T any](message string) State[T] {
	return State[T]{Status: StatusFailed, Error: message}
}

type SubmitStatus string

const (
	SubmitIdle       SubmitStatus = "idle"
	SubmitSubmitting SubmitStatus = "submitting"
	SubmitSucceeded  SubmitStatus = "submitted"
	SubmitFailed     SubmitStatus = "failed"
)

// Submission is the nested state of a form post.
type Submission struct {
	Status   SubmitStatus `json:"status"`
	Progress string       `json:"progress,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// generation hands out fetch tokens. Only the newest token may commit, so a
// slow response to an older request can never overwrite a newer one.
type generation struct {
	latest uint64
}

func (g *generation) next() uint64 {
	g.latest++
	return g.latest
}

func (g *generation) current(token uint64) bool {
	return token == g.latest
}

type ListingLister interface {
	List(ctx context.Context, filter entity.ListingFilter) ([]*entity.Listing, error)
}

type ListingGetter interface {
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
}

type ListingCreator interface {
	Create(ctx context.Context, input usecase.CreateListingInput) (*entity.Listing, error)
}

type MessageSender interface {
	Send(ctx context.Context, input usecase.SendMessageInput) (*entity.Message, error)
}

type SellerInbox interface {
	ListBySeller(ctx context.Context, sellerEmail string) ([]*entity.Message, error)
}

type ImageUploader interface {
	UploadOne(ctx context.Context, file *entity.SourceFile, opts usecase.UploadOptions) (*entity.UploadedAsset, error)
}

// Navigator moves the client to another page.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

func ListingPath(id string) string {
	return "/listing/" + id
}
