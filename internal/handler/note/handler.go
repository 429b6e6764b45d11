package note

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/handler"
	"github.com/medvoice/medvoice-api/internal/middleware"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/service/note"
)

type Handler struct {
	service *note.Service
}

func NewHandler(service *note.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/notes")
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.GET("/:id", h.GetNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.GET("/doctor/:id", h.ListNotesByDoctor)
		notes.GET("/manager/:id", h.ListNotesByManager)
		notes.GET("/patient/:id", h.ListNotesByPatient)
	}
}

func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.service.ListNotes(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}

func (h *Handler) GetNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid note ID"))
		return
	}

	found, err := h.service.GetNote(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req model.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateNote(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) UpdateNote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid note ID"))
		return
	}

	var req model.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateNote(c.Request.Context(), middleware.CurrentUser(c), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) listParams(c *gin.Context) (uuid.UUID, *bool, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ID"))
		return uuid.Nil, nil, false
	}
	validated, err := handler.BoolQuery(c, "validated")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return uuid.Nil, nil, false
	}
	return id, validated, true
}

func (h *Handler) ListNotesByDoctor(c *gin.Context) {
	doctorID, validated, ok := h.listParams(c)
	if !ok {
		return
	}

	notes, err := h.service.ListNotesByDoctor(c.Request.Context(), middleware.CurrentUser(c), doctorID, validated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}

func (h *Handler) ListNotesByManager(c *gin.Context) {
	managerID, validated, ok := h.listParams(c)
	if !ok {
		return
	}

	notes, err := h.service.ListNotesByManager(c.Request.Context(), middleware.CurrentUser(c), managerID, validated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}

func (h *Handler) ListNotesByPatient(c *gin.Context) {
	patientID, validated, ok := h.listParams(c)
	if !ok {
		return
	}

	notes, err := h.service.ListNotesByPatient(c.Request.Context(), middleware.CurrentUser(c), patientID, validated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}
