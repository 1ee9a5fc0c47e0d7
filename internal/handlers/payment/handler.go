package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	"roombook/internal/domains/payment/model/dto"
	"roombook/internal/domains/payment/service"
	"roombook/shared/constant"
	"roombook/shared/validator"
	"roombook/transport/http/response"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/intent", handler.CreateIntent)
	})
}

// CreateIntent creates a Stripe payment intent.
// @Summary Create a payment intent
// @Description Create a Stripe payment intent for the given amount and return its client secret.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateIntentRequest true "Create Intent Request"
// @Success 201 {object} dto.PaymentIntentResponse "Payment intent created"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/intent [post]
// @Security BearerAuth
func (handler *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIntent")
	defer scope.End()

	req := dto.CreateIntentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateIntent(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment intent")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment intent created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
