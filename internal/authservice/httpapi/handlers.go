// Package httpapi exposes the auth service use cases over HTTP.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/authservice/services"
	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
)

type Handler struct {
	users *services.UserService
	log   logging.Logger
}

func NewHandler(users *services.UserService, log logging.Logger) *Handler {
	return &Handler{users: users, log: log}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	res, err := h.users.Register(c.Request.Context(), services.RegisterParams{
		Document: req.Document,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Salary:   req.Salary,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(res, "User registered successfully"))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(res, "Authentication successful"))
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "Auth service is running")
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	var req statusRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	user, err := h.users.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
