package dto

import (
	"github.com/google/uuid"

	"roombook/internal/domains/review/model"
	"roombook/shared"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
)

type CreateReviewRequest struct {
	RoomID  string `json:"room_id" validate:"required,uuid"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

// ToModel builds an unapproved review; moderation flips the flag.
func (c *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		UserID:     user,
		RoomID:     c.RoomID,
		Rating:     c.Rating,
		Comment:    c.Comment,
		IsApproved: false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Rating  int    `db:"rating"  json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment string `db:"comment" json:"comment" validate:"omitempty,max=1000"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	RoomID     string `json:"room_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	IsApproved bool   `json:"is_approved"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.IsApproved = model.IsApproved
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
