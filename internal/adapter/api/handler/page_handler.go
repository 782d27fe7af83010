package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/usecase"
	"marketplace/internal/view"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

// PageHandler renders each page by running its controller for the length of
// one request and returning the resulting snapshot.
type PageHandler struct {
	listingUseCase *usecase.ListingUseCase
	messageUseCase *usecase.MessageUseCase
	uploadUseCase  *usecase.UploadUseCase
}

func NewPageHandler(listingUseCase *usecase.ListingUseCase, messageUseCase *usecase.MessageUseCase, uploadUseCase *usecase.UploadUseCase) *PageHandler {
	return &PageHandler{
		listingUseCase: listingUseCase,
		messageUseCase: messageUseCase,
		uploadUseCase:  uploadUseCase,
	}
}

type homePageRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	View     string `query:"view" validate:"omitempty,oneof=grid list"`
}

type composeRequest struct {
	BuyerEmail string `json:"buyer_email" form:"buyer_email"`
	Message    string `json:"message" form:"message"`
}

type createPageRequest struct {
	Title       string `form:"title"`
	Price       string `form:"price"`
	SellerEmail string `form:"seller_email"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Location    string `form:"location"`
}

type createPageResponse struct {
	view.CreateListingView
	Redirect        string `json:"redirect,omitempty"`
	RedirectAfterMS int64  `json:"redirect_after_ms,omitempty"`
}

func (h *PageHandler) Home(c echo.Context) error {
	var req homePageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid query", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctrl := view.NewHomeController(h.listingUseCase)
	if req.View != "" {
		ctrl.SetViewMode(view.ViewMode(req.View))
	}
	ctrl.Browse(c.Request().Context(), req.Category, req.Search)
	return response.Success(c, ctrl.Snapshot())
}

func (h *PageHandler) ListingDetail(c echo.Context) error {
	ctrl := view.NewListingDetailController(h.listingUseCase, h.messageUseCase)
	defer ctrl.Close()

	ctrl.Load(c.Request().Context(), c.Param("id"))
	return response.Success(c, ctrl.Snapshot())
}

func (h *PageHandler) SendListingMessage(c echo.Context) error {
	var req composeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	ctrl := view.NewListingDetailController(h.listingUseCase, h.messageUseCase)
	defer ctrl.Close()

	ctx := c.Request().Context()
	ctrl.Load(ctx, c.Param("id"))
	ctrl.SetBuyerEmail(req.BuyerEmail)
	ctrl.SetMessage(req.Message)
	ctrl.SendMessage(ctx)
	return response.Success(c, ctrl.Snapshot())
}

func (h *PageHandler) CreateListing(c echo.Context) error {
	var req createPageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid form", err))
	}

	ctrl := view.NewCreateListingController(h.uploadUseCase, h.listingUseCase, view.NavigatorFunc(func(string) {}))
	defer ctrl.Close()

	form := view.DefaultListingForm()
	form.Title = req.Title
	form.Price = req.Price
	form.SellerEmail = req.SellerEmail
	form.Description = req.Description
	if req.Category != "" {
		form.Category = req.Category
	}
	if req.Location != "" {
		form.Location = req.Location
	}
	ctrl.SetForm(form)

	if header, err := c.FormFile("image"); err == nil {
		file, err := readSourceFile(header, view.AttachMaxSize)
		if err != nil {
			return response.Error(c, errors.BadRequest("Missing or invalid file", err))
		}
		if !ctrl.AttachImage(file) {
			return response.Success(c, createPageResponse{CreateListingView: ctrl.Snapshot()})
		}
	}

	ctrl.Submit(c.Request().Context())

	resp := createPageResponse{CreateListingView: ctrl.Snapshot()}
	if resp.Created != nil {
		resp.Redirect = view.ListingPath(resp.Created.ID)
		resp.RedirectAfterMS = view.RedirectDelay.Milliseconds()
	}
	return response.Success(c, resp)
}

func (h *PageHandler) Messages(c echo.Context) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return response.Error(c, errors.InvalidInput("Seller email is required"))
	}

	ctrl := view.NewMessagesController(h.messageUseCase, h.listingUseCase, principal)
	ctrl.Load(c.Request().Context())
	return response.Success(c, ctrl.Snapshot())
}
