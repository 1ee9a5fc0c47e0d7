package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"roombook/internal/domains/room/model"
	"roombook/shared"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
)

type CreateRoomRequest struct {
	Name         string   `json:"name"           validate:"required,max=100"`
	Type         string   `json:"type"           validate:"required,oneof=Meeting Conference Interview"`
	Capacity     int      `json:"capacity"       validate:"required,min=1"`
	Location     string   `json:"location"       validate:"required,max=100"`
	Description  string   `json:"description"    validate:"required"`
	Facilities   []string `json:"facilities"     validate:"omitempty,dive,max=100"`
	PricePerHour int64    `json:"price_per_hour" validate:"required,min=0"`
	Images       []string `json:"images"         validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	IsAvailable  *bool    `json:"is_available"   validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURLs []string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Type:         c.Type,
		Capacity:     c.Capacity,
		Location:     c.Location,
		Description:  c.Description,
		Facilities:   pq.StringArray(c.Facilities),
		PricePerHour: c.PricePerHour,
		Images:       pq.StringArray(imageURLs),
		IsAvailable:  available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name         string   `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Type         string   `db:"type"           json:"type"           validate:"omitempty,oneof=Meeting Conference Interview"`
	Capacity     *int     `db:"capacity"       json:"capacity"       validate:"omitempty,min=1"`
	Location     string   `db:"location"       json:"location"       validate:"omitempty,max=100"`
	Description  string   `db:"description"    json:"description"    validate:"omitempty"`
	Facilities   []string `json:"facilities"   validate:"omitempty,dive,max=100"`
	PricePerHour *int64   `db:"price_per_hour" json:"price_per_hour" validate:"omitempty,min=0"`
	Images       []string `json:"images"       validate:"omitempty,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	IsAvailable  *bool    `db:"is_available"   json:"is_available"   validate:"omitempty"`
}

type RoomResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Capacity     int      `json:"capacity"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Facilities   []string `json:"facilities"`
	PricePerHour int64    `json:"price_per_hour"`
	Images       []string `json:"images"`
	IsAvailable  bool     `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Capacity = model.Capacity
	r.Location = model.Location
	r.Description = model.Description
	r.Facilities = model.Facilities
	r.PricePerHour = model.PricePerHour
	r.Images = model.Images
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
