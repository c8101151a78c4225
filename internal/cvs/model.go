package cvs

import (
	"encoding/json"
	"time"

	"cvmaker-backend/internal/ats"
)

// CV is one processed upload: the normalized extraction and its ATS report.
type CV struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	Email         string               `json:"email"`
	FileName      string               `json:"fileName"`
	MimeType      string               `json:"mimeType"`
	SizeBytes     int64                `json:"sizeBytes"`
	JobTitle      string               `json:"jobTitle,omitempty"`
	ExtractedData ats.NormalizedResume `json:"extractedData"`
	ATSScore      int                  `json:"atsScore"`
	ATSResult     ats.Result           `json:"atsResult"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// UploadInput describes a CV file to process for a user.
type UploadInput struct {
	UserID   string
	Email    string
	FileName string
	JobTitle string
}

type scoreCurrentRequest struct {
	JobTitle string `json:"jobTitle"`
}

type scoreRawRequest struct {
	Resume   json.RawMessage `json:"resume"`
	JobTitle string          `json:"jobTitle"`
}
