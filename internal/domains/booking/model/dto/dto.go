package dto

import (
	"time"

	"github.com/google/uuid"

	"roombook/internal/domains/booking/model"
	roomModel "roombook/internal/domains/room/model"
	userModel "roombook/internal/domains/user/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"      validate:"required,uuid"`
	BookingDate string `json:"booking_date" validate:"required"`
	StartTime   string `json:"start_time"   validate:"required"`
	EndTime     string `json:"end_time"     validate:"required"`
}

func (c *CreateBookingRequest) ToModel(user string, pricePerHour int64) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.DateOnlyFormat, c.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}

	slot, err := model.NewTimeSlot(c.StartTime, c.EndTime)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        user,
		RoomID:        c.RoomID,
		BookingDate:   bookingDate,
		StartMinute:   slot.Start,
		EndMinute:     slot.End,
		TotalHours:    slot.Hours(),
		TotalAmount:   slot.Amount(pricePerHour),
		PaymentStatus: model.PaymentStatusCompleted,
		Status:        model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RoomSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	PricePerHour int64  `json:"price_per_hour"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID            string      `json:"id"`
	Room          RoomSummary `json:"room"`
	User          UserSummary `json:"user"`
	BookingDate   string      `json:"booking_date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	TotalHours    float64     `json:"total_hours"`
	TotalAmount   int64       `json:"total_amount"`
	PaymentStatus string      `json:"payment_status"`
	Status        string      `json:"status"`
	QRCode        string      `json:"qr_code"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, room roomModel.Room, user userModel.User) {
	r.ID = booking.ID
	r.Room = RoomSummary{
		ID:           room.ID,
		Name:         room.Name,
		Location:     room.Location,
		PricePerHour: room.PricePerHour,
	}
	r.User = UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	r.BookingDate = booking.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = model.FormatClock(booking.StartMinute)
	r.EndTime = model.FormatClock(booking.EndMinute)
	r.TotalHours = booking.TotalHours
	r.TotalAmount = booking.TotalAmount
	r.PaymentStatus = booking.PaymentStatus
	r.Status = booking.Status
	r.QRCode = booking.QRCode
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(responses []BookingResponse, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = responses

	if r.Bookings == nil {
		r.Bookings = []BookingResponse{}
	}
}
