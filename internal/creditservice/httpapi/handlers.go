// Package httpapi exposes the credit service use cases over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/creditservice/clients/riskclient"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/creditservice/services"
	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
)

// ApplicationUseCases is the slice of the application service the handlers
// need.
type ApplicationUseCases interface {
	Create(ctx context.Context, actor services.Actor, p services.CreateParams) (*models.Application, error)
	GetMine(ctx context.Context, actor services.Actor) ([]*models.Application, error)
	GetAll(ctx context.Context, actor services.Actor) ([]*models.Application, error)
	GetByID(ctx context.Context, actor services.Actor, id int64) (*models.Application, error)
	Update(ctx context.Context, actor services.Actor, id int64, p services.UpdateParams) (*models.Application, error)
	UpdateStatus(ctx context.Context, actor services.Actor, id int64, status string, notes *string) (*models.Application, error)
	Delete(ctx context.Context, actor services.Actor, id int64) error
	EvaluateRisk(ctx context.Context, actor services.Actor, id int64) (*riskclient.Evaluation, error)
}

// DocumentUseCases is the slice of the document service the handlers need.
type DocumentUseCases interface {
	Attach(ctx context.Context, actor services.Actor, applicationID int64, fileName string) (*models.Document, string, error)
	List(ctx context.Context, actor services.Actor, applicationID int64) ([]*models.Document, error)
	Download(ctx context.Context, actor services.Actor, applicationID, documentID int64) (string, error)
}

type Handler struct {
	apps ApplicationUseCases
	docs DocumentUseCases
	log  logging.Logger
}

func NewHandler(apps ApplicationUseCases, docs DocumentUseCases, log logging.Logger) *Handler {
	return &Handler{apps: apps, docs: docs, log: log}
}

func actor(c *gin.Context) (services.Actor, bool) {
	id, ok := httpx.GetIdentity(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{UserID: id.UserID, Role: id.Role}, true
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "Credit application service is running")
}

func (h *Handler) create(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}

	var req createApplicationRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	app, err := h.apps.Create(c.Request.Context(), act, services.CreateParams{
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, newApplicationResponse(app))
}

func (h *Handler) listMine(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}

	apps, err := h.apps.GetMine(c.Request.Context(), act)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationListResponse(apps))
}

func (h *Handler) listAll(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}

	apps, err := h.apps.GetAll(c.Request.Context(), act)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationListResponse(apps))
}

func (h *Handler) get(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	app, err := h.apps.GetByID(c.Request.Context(), act, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationResponse(app))
}

func (h *Handler) update(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	var req updateApplicationRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	app, err := h.apps.Update(c.Request.Context(), act, id, services.UpdateParams{
		Status:       req.Status,
		AnalystNotes: req.AnalystNotes,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationResponse(app))
}

func (h *Handler) updateStatus(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	var req statusUpdateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	app, err := h.apps.UpdateStatus(c.Request.Context(), act, id, req.Status, req.Notes)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, newApplicationResponse(app))
}

func (h *Handler) delete(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	if err := h.apps.Delete(c.Request.Context(), act, id); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) risk(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	eval, err := h.apps.EvaluateRisk(c.Request.Context(), act, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

func (h *Handler) attachDocument(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	var req attachDocumentRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	doc, uploadURL, err := h.docs.Attach(c.Request.Context(), act, id, req.FileName)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachDocumentResponse{
		Document:  newDocumentResponse(doc),
		UploadURL: uploadURL,
	})
}

func (h *Handler) listDocuments(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	docs, err := h.docs.List(c.Request.Context(), act, id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, newDocumentResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) downloadDocument(c *gin.Context) {
	act, ok := actor(c)
	if !ok {
		httpx.Error(c, common.ErrTokenMalformed)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		httpx.Error(c, err)
		return
	}
	docID, err := pathID(c, "docId")
	if err != nil {
		httpx.Error(c, err)
		return
	}

	url, err := h.docs.Download(c.Request.Context(), act, id, docID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, downloadResponse{DownloadURL: url})
}
