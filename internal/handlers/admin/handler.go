package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	adminService "roombook/internal/domains/admin/service"
	bookingModel "roombook/internal/domains/booking/model"
	bookingService "roombook/internal/domains/booking/service"
	reviewService "roombook/internal/domains/review/service"
	roomDto "roombook/internal/domains/room/model/dto"
	roomService "roombook/internal/domains/room/service"
	userService "roombook/internal/domains/user/service"
	roomHandler "roombook/internal/handlers/room"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/validator"
	"roombook/transport/http/response"
)

// Handler bundles the management surface: room catalogue maintenance,
// review moderation, user and booking oversight, dashboard stats.
type Handler struct {
	adminService   adminService.Admin
	roomService    roomService.Room
	reviewService  reviewService.Review
	userService    userService.User
	bookingService bookingService.Booking
	otel           otel.Otel
}

func New(
	adminService adminService.Admin,
	roomService roomService.Room,
	reviewService reviewService.Review,
	userService userService.User,
	bookingService bookingService.Booking,
	otel otel.Otel,
) Handler {
	return Handler{
		adminService:   adminService,
		roomService:    roomService,
		reviewService:  reviewService,
		userService:    userService,
		bookingService: bookingService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/stats", handler.GetStats)

		routerGroup.Get("/rooms", handler.GetRooms)
		routerGroup.Post("/rooms", handler.CreateRoom)
		routerGroup.Put("/rooms/{id}", handler.UpdateRoom)
		routerGroup.Delete("/rooms/{id}", handler.DeleteRoom)

		routerGroup.Get("/reviews/pending", handler.GetPendingReviews)
		routerGroup.Put("/reviews/{id}/approve", handler.ApproveReview)
		routerGroup.Delete("/reviews/{id}", handler.DeleteReview)

		routerGroup.Get("/users", handler.GetUsers)
		routerGroup.Get("/bookings", handler.GetBookings)
	})
}

// GetStats returns dashboard counters.
// @Summary Get dashboard statistics
// @Description Retrieve aggregate counts of rooms, users, bookings and reviews.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} adminService.DashboardStats "Dashboard statistics"
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.adminService.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetRooms lists rooms for management, including unavailable ones.
// @Summary Get all rooms (admin)
// @Description Retrieve rooms with the same filters as the public listing.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} roomDto.GetRoomsResponse "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rooms, err := handler.roomService.GetAll(ctx, queryParams, roomHandler.FilterFromQuery(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// CreateRoom creates a room.
// @Summary Create a room
// @Description Create a new room with optional base64-encoded images.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body roomDto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} roomDto.RoomResponse "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := roomDto.CreateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.roomService.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdateRoom updates a room.
// @Summary Update a room
// @Description Update room attributes; new images replace the old set.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body roomDto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := roomDto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.roomService.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room and its stored images.
// @Summary Delete a room
// @Description Delete a room by its unique identifier.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.roomService.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room deleted successfully")

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// GetPendingReviews lists reviews awaiting moderation.
// @Summary Get pending reviews
// @Description Retrieve reviews that have not been approved yet.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} reviewDto.GetReviewsResponse "List of pending reviews"
// @Failure 500 {object} response.Error
// @Router /v1/admin/reviews/pending [get]
// @Security BearerAuth
func (handler *Handler) GetPendingReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reviews, err := handler.reviewService.GetPending(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pending reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Pending reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// ApproveReview approves a pending review.
// @Summary Approve a review
// @Description Mark a review as approved so it shows up publicly.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review approved successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reviews/{id}/approve [put]
// @Security BearerAuth
func (handler *Handler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.reviewService.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review approved successfully")

	response.WithMessage(w, http.StatusOK, "Review approved successfully")
}

// DeleteReview deletes any review regardless of owner.
// @Summary Delete a review (admin)
// @Description Delete a review by its unique identifier.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.reviewService.DeleteAny(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review deleted successfully")

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}

// GetUsers lists registered users.
// @Summary Get all users
// @Description Retrieve registered users with pagination.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} userDto.GetUsersResponse "List of users"
// @Failure 500 {object} response.Error
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	users, err := handler.userService.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// GetBookings lists bookings across all users.
// @Summary Get all bookings
// @Description Retrieve bookings with optional room, date and status filters.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Param booking_date query string false "Filter by booking date (YYYY-MM-DD)"
// @Param status query string false "Filter by booking status"
// @Success 200 {object} bookingDto.GetBookingsResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.bookingService.GetAll(ctx, queryParams, bookingFilterFromQuery(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

func bookingFilterFromQuery(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{bookingModel.FieldRoomID, bookingModel.FieldBookingDate, bookingModel.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    bookingModel.TableName,
			})
		}
	}

	return filterGroup
}
