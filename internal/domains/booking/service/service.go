package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/repository"
	roomModel "roombook/internal/domains/room/model"
	roomRepo "roombook/internal/domains/room/repository"
	userModel "roombook/internal/domains/user/model"
	userRepo "roombook/internal/domains/user/repository"
	"roombook/internal/events"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	checkInCodeSize = 256
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	CheckInCode(ctx context.Context, id string) ([]byte, error)
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	userRepo   userRepo.User
	dispatcher events.Dispatcher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	dispatcher events.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.IsAvailable {
		return res, failure.BadRequestFromString("room is not available for booking") // nolint:wrapcheck
	}

	booking, err := req.ToModel(userID, room.PricePerHour)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	conflicting, err := s.repo.Exist(ctx, conflictFilter(booking))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for conflicting bookings")

		return res, fmt.Errorf("failed to check for conflicting bookings: %w", err)
	}

	if conflicting {
		return res, failure.Conflict("room is already booked for this time slot") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	if !user.IsVerified {
		return res, failure.Forbidden("email must be verified before booking") // nolint:wrapcheck
	}

	booking.QRCode = checkInToken(booking, room.Name, user.Email)

	// The database enforces slot exclusivity; two writers can both pass the
	// availability check above, but only one insert survives.
	if err = s.repo.Insert(ctx, booking); err != nil {
		if isSlotTaken(err) {
			return res, failure.Conflict("room is already booked for this time slot") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		event := bookingEvent(booking, room, user)
		if err := s.dispatcher.Dispatch(c, events.TopicBookingCreated, booking.ID, event); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to dispatch booking created event")
		}
	}()

	res.FromModel(booking, room, user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	responses, err := s.buildResponses(ctx, models)
	if err != nil {
		return res, err
	}

	res.FromModels(responses, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetBooking, id, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return res, err
	}

	room, user, err := s.relatedEntities(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, room, user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	// Cancelling twice is a no-op rather than an error.
	if booking.Status == model.StatusCancelled {
		return nil
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		model.FieldPaymentStatus: model.PaymentStatusRefunded,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}

	if err = s.repo.Update(ctx, updatedFields, ownerFilter(id, userID)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetBooking, id))
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		room, user, err := s.relatedEntities(c, booking)
		if err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to load entities for cancellation event")

			return
		}

		event := bookingEvent(booking, room, user)
		if err := s.dispatcher.Dispatch(c, events.TopicBookingCancelled, booking.ID, event); err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to dispatch booking cancelled event")
		}
	}()

	return nil
}

func (s *serviceImpl) CheckInCode(ctx context.Context, id string) (png []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckInCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.StatusConfirmed {
		return nil, failure.BadRequestFromString("booking is not active") // nolint:wrapcheck
	}

	png, err = qrcode.Encode(booking.QRCode, qrcode.Medium, checkInCodeSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode check-in code")

		return nil, fmt.Errorf("failed to encode check-in code: %w", err)
	}

	return png, nil
}

// getOwned fetches a booking scoped to its owner. A booking that exists but
// belongs to someone else is reported as not found.
func (s *serviceImpl) getOwned(ctx context.Context, id, userID string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, ownerFilter(id, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return model.Booking{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) relatedEntities(ctx context.Context, booking model.Booking) (roomModel.Room, userModel.User, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return roomModel.Room{}, userModel.User{}, fmt.Errorf("failed to get room: %w", err)
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return roomModel.Room{}, userModel.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return room, user, nil
}

func (s *serviceImpl) buildResponses(ctx context.Context, models []model.Booking) ([]dto.BookingResponse, error) {
	rooms := map[string]roomModel.Room{}
	users := map[string]userModel.User{}
	responses := make([]dto.BookingResponse, len(models))

	for i, booking := range models {
		room, ok := rooms[booking.RoomID]
		if !ok {
			var err error
			if room, err = s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
				log.Error().Err(err).Msg("failed to get room")

				return nil, fmt.Errorf("failed to get room: %w", err)
			}
			rooms[booking.RoomID] = room
		}

		user, ok := users[booking.UserID]
		if !ok {
			var err error
			if user, err = s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName)); err != nil {
				log.Error().Err(err).Msg("failed to get user")

				return nil, fmt.Errorf("failed to get user: %w", err)
			}
			users[booking.UserID] = user
		}

		responses[i].FromModel(booking, room, user)
	}

	return responses, nil
}

func ownerFilter(id, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// conflictFilter matches confirmed bookings of the same room and date whose
// half-open interval intersects the candidate's.
func conflictFilter(booking model.Booking) gDto.FilterGroup {
	slot := booking.Slot()

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    booking.RoomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Value:    booking.BookingDate,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "slot_end",
				Field:    model.FieldStartMinute,
				Value:    slot.End,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "slot_start",
				Field:    model.FieldEndMinute,
				Value:    slot.Start,
				Operator: gDto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}
}

func checkInToken(booking model.Booking, roomName, email string) string {
	return fmt.Sprintf(
		"%s:%s:%s:%s:%s-%s:%s",
		constant.CheckInTokenPrefix,
		booking.ID,
		roomName,
		booking.BookingDate.Format(constant.DateOnlyFormat),
		model.FormatClock(booking.StartMinute),
		model.FormatClock(booking.EndMinute),
		email,
	)
}

// isSlotTaken reports whether an insert failed on the slot exclusion
// constraint or the duplicate-key path.
func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	code := string(pqErr.Code)

	return code == constant.PqErrorCodeExclusionViolation || code == constant.PqErrorCodeUniqueViolation
}

func bookingEvent(booking model.Booking, room roomModel.Room, user userModel.User) events.BookingEvent {
	return events.BookingEvent{
		BookingID:    booking.ID,
		UserID:       user.ID,
		UserName:     user.Name,
		UserEmail:    user.Email,
		RoomName:     room.Name,
		BookingDate:  booking.BookingDate.Format(constant.DateOnlyFormat),
		StartTime:    model.FormatClock(booking.StartMinute),
		EndTime:      model.FormatClock(booking.EndMinute),
		TotalAmount:  booking.TotalAmount,
		CheckInToken: booking.QRCode,
	}
}
