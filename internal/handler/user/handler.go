package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/handler"
	"github.com/medvoice/medvoice-api/internal/middleware"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/service/user"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/users/open", h.Register)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)

		users.POST("/doctor-manager/:doctor_id/:manager_id", h.CreateDoctorManager)
		users.POST("/doctor-patient/:doctor_id/:patient_id", h.CreateDoctorPatient)
		users.POST("/assistant-manager/:assistant_id/:manager_id", h.CreateAssistantManager)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(users))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(middleware.CurrentUser(c)))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateSelf(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	found, err := h.service.GetUser(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) edgeParams(c *gin.Context, first, second string) (uuid.UUID, uuid.UUID, bool) {
	a, err := uuid.Parse(c.Param(first))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid "+first))
		return uuid.Nil, uuid.Nil, false
	}
	b, err := uuid.Parse(c.Param(second))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid "+second))
		return uuid.Nil, uuid.Nil, false
	}
	return a, b, true
}

func (h *Handler) CreateDoctorManager(c *gin.Context) {
	doctorID, managerID, ok := h.edgeParams(c, "doctor_id", "manager_id")
	if !ok {
		return
	}

	edge, err := h.service.CreateDoctorManager(c.Request.Context(), middleware.CurrentUser(c), doctorID, managerID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(edge))
}

func (h *Handler) CreateDoctorPatient(c *gin.Context) {
	doctorID, patientID, ok := h.edgeParams(c, "doctor_id", "patient_id")
	if !ok {
		return
	}

	edge, err := h.service.CreateDoctorPatient(c.Request.Context(), middleware.CurrentUser(c), doctorID, patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(edge))
}

func (h *Handler) CreateAssistantManager(c *gin.Context) {
	assistantID, managerID, ok := h.edgeParams(c, "assistant_id", "manager_id")
	if !ok {
		return
	}

	edge, err := h.service.CreateAssistantManager(c.Request.Context(), middleware.CurrentUser(c), assistantID, managerID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(edge))
}
