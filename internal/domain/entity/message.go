package entity

import "time"

type Message struct {
	ID          string    `json:"id" firestore:"id"`
	ListingID   string    `json:"listing_id" firestore:"listingId"`
	BuyerEmail  string    `json:"buyer_email" firestore:"buyerEmail"`
	SellerEmail string    `json:"seller_email" firestore:"sellerEmail"`
	Message     string    `json:"message" firestore:"message"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
