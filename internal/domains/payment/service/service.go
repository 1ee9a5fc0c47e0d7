package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/internal/domains/payment/model/dto"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

const fallbackCurrency = "inr"

// IntentCreator is the slice of the Stripe client the service needs.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Payment interface {
	CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (dto.PaymentIntentResponse, error)
}

type serviceImpl struct {
	intents IntentCreator
	cfg     *config.Config
	otel    otel.Otel
}

func New(intents IntentCreator, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		intents: intents,
		cfg:     cfg,
		otel:    otel,
	}
}

// NewIntentCreator builds the concrete Stripe payment intent client.
func NewIntentCreator(cfg *config.Config) IntentCreator {
	return paymentintent.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: cfg.External.Stripe.SecretKey,
	}
}

func (s *serviceImpl) CreateIntent(ctx context.Context, req dto.CreateIntentRequest) (res dto.PaymentIntentResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	currency := strings.ToLower(req.Currency)
	if currency == constant.Empty {
		currency = s.cfg.External.Stripe.DefaultCurrency
	}

	if currency == constant.Empty {
		currency = fallbackCurrency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	if req.RoomID != constant.Empty {
		params.AddMetadata("room_id", req.RoomID)
	}

	if req.RoomName != constant.Empty {
		params.AddMetadata("room_name", strings.TrimSpace(req.RoomName))
	}

	intent, err := s.intents.New(params)
	if err != nil {
		log.Error().Err(err).Int64("amount", req.Amount).Msg("failed to create payment intent")

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return res, failure.Upstream(stripeErr.Msg) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create payment intent: %w", err)
	}

	res.FromIntent(intent)

	return res, nil
}
