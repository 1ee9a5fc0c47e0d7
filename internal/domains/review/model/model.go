package model

import (
	"roombook/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldRoomID     = "room_id"
	FieldRating     = "rating"
	FieldComment    = "comment"
	FieldIsApproved = "is_approved"
)

type Review struct {
	ID         string `db:"id"`
	UserID     string `db:"user_id"`
	RoomID     string `db:"room_id"`
	Rating     int    `db:"rating"`
	Comment    string `db:"comment"`
	IsApproved bool   `db:"is_approved"`
	model.Metadata
}
