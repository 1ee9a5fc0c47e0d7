package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	bookingModel "roombook/internal/domains/booking/model"
	bookingRepo "roombook/internal/domains/booking/repository"
	reviewModel "roombook/internal/domains/review/model"
	reviewRepo "roombook/internal/domains/review/repository"
	roomRepo "roombook/internal/domains/room/repository"
	userRepo "roombook/internal/domains/user/repository"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
)

type DashboardStats struct {
	TotalRooms     int `json:"total_rooms"`
	TotalUsers     int `json:"total_users"`
	TotalBookings  int `json:"total_bookings"`
	ActiveBookings int `json:"active_bookings"`
	TotalReviews   int `json:"total_reviews"`
	PendingReviews int `json:"pending_reviews"`
}

type Admin interface {
	Stats(ctx context.Context) (DashboardStats, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	userRepo    userRepo.User
	bookingRepo bookingRepo.Booking
	reviewRepo  reviewRepo.Review
	otel        otel.Otel
}

func New(
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	bookingRepo bookingRepo.Booking,
	reviewRepo reviewRepo.Review,
	otel otel.Otel,
) Admin {
	return &serviceImpl{
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Stats(ctx context.Context) (res DashboardStats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	counts := []struct {
		name   string
		target *int
		count  func(context.Context) (int, error)
	}{
		{"rooms", &res.TotalRooms, func(c context.Context) (int, error) {
			return s.roomRepo.Count(c, gDto.FilterGroup{})
		}},
		{"users", &res.TotalUsers, func(c context.Context) (int, error) {
			return s.userRepo.Count(c, gDto.FilterGroup{})
		}},
		{"bookings", &res.TotalBookings, func(c context.Context) (int, error) {
			return s.bookingRepo.Count(c, gDto.FilterGroup{})
		}},
		{"active bookings", &res.ActiveBookings, func(c context.Context) (int, error) {
			return s.bookingRepo.Count(c, statusFilter())
		}},
		{"reviews", &res.TotalReviews, func(c context.Context) (int, error) {
			return s.reviewRepo.Count(c, gDto.FilterGroup{})
		}},
		{"pending reviews", &res.PendingReviews, func(c context.Context) (int, error) {
			return s.reviewRepo.Count(c, pendingReviewFilter())
		}},
	}

	for _, c := range counts {
		total, err := c.count(ctx)
		if err != nil {
			log.Error().Err(err).Str("counter", c.name).Msg("failed to count for dashboard stats")

			return res, fmt.Errorf("failed to count %s: %w", c.name, err)
		}

		*c.target = total
	}

	return res, nil
}

func statusFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Value:    bookingModel.StatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func pendingReviewFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    reviewModel.FieldIsApproved,
				Value:    false,
				Operator: gDto.FilterOperatorEq,
				Table:    reviewModel.TableName,
			},
		},
	}
}
