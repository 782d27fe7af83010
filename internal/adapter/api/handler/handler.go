package handler

import (
	"marketplace/internal/usecase"
)

var (
	listingHandler *ListingHandler
	messageHandler *MessageHandler
	uploadHandler  *UploadHandler
	pageHandler    *PageHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	messageUseCase *usecase.MessageUseCase,
	uploadUseCase *usecase.UploadUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase)
	messageHandler = NewMessageHandler(messageUseCase)
	uploadHandler = NewUploadHandler(uploadUseCase)
	pageHandler = NewPageHandler(listingUseCase, messageUseCase, uploadUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}

func GetUploadHandler() *UploadHandler {
	return uploadHandler
}

func GetPageHandler() *PageHandler {
	return pageHandler
}
