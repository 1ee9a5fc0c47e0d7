package model

import (
	"github.com/lib/pq"

	"roombook/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldName         = "name"
	FieldType         = "type"
	FieldCapacity     = "capacity"
	FieldLocation     = "location"
	FieldDescription  = "description"
	FieldFacilities   = "facilities"
	FieldPricePerHour = "price_per_hour"
	FieldImages       = "images"
	FieldIsAvailable  = "is_available"
)

const (
	TypeMeeting    = "Meeting"
	TypeConference = "Conference"
	TypeInterview  = "Interview"
)

type Room struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Capacity     int            `db:"capacity"`
	Location     string         `db:"location"`
	Description  string         `db:"description"`
	Facilities   pq.StringArray `db:"facilities"`
	PricePerHour int64          `db:"price_per_hour"`
	Images       pq.StringArray `db:"images"`
	IsAvailable  bool           `db:"is_available"`
	model.Metadata
}
