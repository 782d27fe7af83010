package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type listListingsRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
}

// Field rules are enforced by the use case so its messages reach the client
// unchanged; only the update request is shape-checked here.
type createListingRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       looseNumber `json:"price"`
	Category    string      `json:"category"`
	SellerEmail string      `json:"seller_email"`
	Location    string      `json:"location"`
	ImageURL    string      `json:"image_url"`
}

// looseNumber accepts a JSON number or a numeric string. A string that does
// not parse decodes as 0, which the use case reports as a missing price.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			value = 0
		}
		*n = looseNumber(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*n = looseNumber(value)
	return nil
}

type updateListingRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	SellerEmail *string  `json:"seller_email" validate:"omitempty,email"`
	Location    *string  `json:"location"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	var req listListingsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	listings, err := h.listingUseCase.List(c.Request().Context(), entity.ListingFilter{
		Category: req.Category,
		Search:   req.Search,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	listing, err := h.listingUseCase.Create(c.Request().Context(), usecase.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       float64(req.Price),
		Category:    req.Category,
		SellerEmail: req.SellerEmail,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	changes := entity.ListingChanges(req)
	if changes.IsEmpty() {
		return response.Error(c, errors.BadRequest("No fields to update", nil))
	}
	if changes.Category != nil && !entity.IsCategory(*changes.Category) {
		return response.Error(c, errors.Validation("Invalid category"))
	}

	listing, err := h.listingUseCase.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	deleted, err := h.listingUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, deleted)
}

func (h *ListingHandler) ListCategories(c echo.Context) error {
	return response.Success(c, entity.Categories())
}
