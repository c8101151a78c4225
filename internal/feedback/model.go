package feedback

import (
	"encoding/json"
	"time"
)

type Feedback struct {
	ID          string    `json:"feedbackId"`
	UserID      string    `json:"userId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Rating      int       `json:"rating"`
	Feedback    string    `json:"feedback"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type Stats struct {
	TotalFeedbacks     int           `json:"totalFeedbacks"`
	AverageRating      float64       `json:"averageRating"`
	RatingDistribution []RatingCount `json:"ratingDistribution"`
}

// submitRequest accepts rating as a number or a numeric string.
type submitRequest struct {
	Rating   json.Number `json:"rating"`
	Feedback string      `json:"feedback"`
}
