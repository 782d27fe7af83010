package handler

import (
	"github.com/labstack/echo/v4"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/usecase"
	"marketplace/pkg/errors"
	"marketplace/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ListingID   string `json:"listing_id"`
	BuyerEmail  string `json:"buyer_email"`
	SellerEmail string `json:"seller_email"`
	Message     string `json:"message"`
}

func (h *MessageHandler) ListListingMessages(c echo.Context) error {
	messages, err := h.messageUseCase.ListByListing(c.Request().Context(), c.QueryParam("listing_id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, messages)
}

// ListSellerMessages answers for the acting user when no email is given.
func (h *MessageHandler) ListSellerMessages(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		if p := middleware.PrincipalFrom(c); p != nil {
			email = p.Email()
		}
	}

	messages, err := h.messageUseCase.ListBySeller(c.Request().Context(), email)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, messages)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	message, err := h.messageUseCase.Send(c.Request().Context(), usecase.SendMessageInput(req))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, message)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	deleted, err := h.messageUseCase.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, deleted)
}
