package dto

import (
	"rental/internal/domains/review/model"
	"rental/shared/constant"
	"rental/shared/record"
	"rental/shared/timezone"
)

type CreateReviewRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	Rating    int    `json:"rating"     validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment"    validate:"omitempty"`
}

func (c *CreateReviewRequest) ToModel(userID string) model.Review {
	return model.Review{
		ID:         record.NewID(),
		UserID:     userID,
		VehicleID:  c.VehicleID,
		Rating:     c.Rating,
		Comment:    c.Comment,
		ReviewDate: timezone.Now(),
	}
}

type ReviewResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	VehicleID  string `json:"vehicle_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ReviewDate string `json:"review_date"`
}

func (r *ReviewResponse) FromModel(review model.Review) {
	r.ID = review.ID
	r.UserID = review.UserID
	r.VehicleID = review.VehicleID
	r.Rating = review.Rating
	r.Comment = review.Comment
	r.ReviewDate = timezone.Format(review.ReviewDate, constant.DateTimeFormat)
}

type GetReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	Total         int              `json:"total"`
}

func (g *GetReviewsResponse) FromModels(reviews []model.Review, averageRating float64) {
	g.Reviews = make([]ReviewResponse, 0, len(reviews))

	for _, review := range reviews {
		response := ReviewResponse{}
		response.FromModel(review)
		g.Reviews = append(g.Reviews, response)
	}

	g.AverageRating = averageRating
	g.Total = len(reviews)
}
