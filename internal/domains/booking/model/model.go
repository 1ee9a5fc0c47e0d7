package model

import (
	"time"

	"roombook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldRoomID        = "room_id"
	FieldBookingDate   = "booking_date"
	FieldStartMinute   = "start_minute"
	FieldEndMinute     = "end_minute"
	FieldTotalHours    = "total_hours"
	FieldTotalAmount   = "total_amount"
	FieldPaymentStatus = "payment_status"
	FieldStatus        = "status"
	FieldQRCode        = "qr_code"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

type Booking struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	RoomID        string    `db:"room_id"`
	BookingDate   time.Time `db:"booking_date"`
	StartMinute   int       `db:"start_minute"`
	EndMinute     int       `db:"end_minute"`
	TotalHours    float64   `db:"total_hours"`
	TotalAmount   int64     `db:"total_amount"`
	PaymentStatus string    `db:"payment_status"`
	Status        string    `db:"status"`
	QRCode        string    `db:"qr_code"`
	model.Metadata
}

// Slot returns the booked interval as a TimeSlot.
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{Start: b.StartMinute, End: b.EndMinute}
}
