package httpapi

import (
	"time"

	"github.com/mycompany/credit-platform/internal/creditservice/models"
)

type createApplicationRequest struct {
	Amount     int64  `json:"amount" binding:"required,gte=100000,lte=500000000"`
	TermMonths int    `json:"termMonths" binding:"required,gte=6,lte=120"`
	Purpose    string `json:"purpose" binding:"required,max=500"`
}

// updateApplicationRequest is the privileged free-form edit; absent fields
// stay untouched.
type updateApplicationRequest struct {
	Status       *string  `json:"status"`
	AnalystNotes *string  `json:"analystNotes" binding:"omitempty,max=1000"`
	InterestRate *float64 `json:"interestRate" binding:"omitempty,gte=0.01,lte=100"`
}

type statusUpdateRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes" binding:"omitempty,max=1000"`
}

type attachDocumentRequest struct {
	FileName string `json:"fileName" binding:"required,max=255"`
}

type applicationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Amount       int64     `json:"amount"`
	TermMonths   int       `json:"termMonths"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status"`
	AnalystNotes *string   `json:"analystNotes,omitempty"`
	InterestRate *float64  `json:"interestRate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newApplicationResponse(a *models.Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Amount:       a.Amount,
		TermMonths:   a.TermMonths,
		Purpose:      a.Purpose,
		Status:       string(a.Status),
		AnalystNotes: a.AnalystNotes,
		InterestRate: a.InterestRate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func newApplicationListResponse(apps []*models.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, newApplicationResponse(a))
	}
	return out
}

type documentResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	FileName      string    `json:"fileName"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newDocumentResponse(d *models.Document) documentResponse {
	return documentResponse{
		ID:            d.ID,
		ApplicationID: d.ApplicationID,
		FileName:      d.FileName,
		CreatedAt:     d.CreatedAt,
	}
}

type attachDocumentResponse struct {
	Document  documentResponse `json:"document"`
	UploadURL string           `json:"uploadUrl"`
}

type downloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}
