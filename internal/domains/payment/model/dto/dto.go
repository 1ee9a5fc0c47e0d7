package dto

import (
	"github.com/stripe/stripe-go/v79"
)

type CreateIntentRequest struct {
	Amount   int64  `json:"amount"   validate:"required,min=1"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
	RoomID   string `json:"room_id"  validate:"omitempty,uuid"`
	RoomName string `json:"room_name" validate:"omitempty,max=100"`
}

type PaymentIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (r *PaymentIntentResponse) FromIntent(intent *stripe.PaymentIntent) {
	r.IntentID = intent.ID
	r.ClientSecret = intent.ClientSecret
	r.Status = string(intent.Status)
	r.Amount = intent.Amount
	r.Currency = string(intent.Currency)
}
