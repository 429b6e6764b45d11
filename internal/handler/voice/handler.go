package voice

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medvoice/medvoice-api/internal/handler"
	"github.com/medvoice/medvoice-api/internal/middleware"
	"github.com/medvoice/medvoice-api/internal/model"
	"github.com/medvoice/medvoice-api/internal/service/voice"
)

type Handler struct {
	service *voice.Service
}

func NewHandler(service *voice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	voices := r.Group("/voices")
	{
		voices.GET("", h.ListVoices)
		voices.POST("", h.CreateVoice)
		voices.GET("/:id", h.GetVoice)
		voices.GET("/doctor/:id", h.ListVoicesByDoctor)
		voices.GET("/manager/:id", h.ListVoicesByManager)
		voices.GET("/patient/:id", h.ListVoicesByPatient)
	}
}

func (h *Handler) ListVoices(c *gin.Context) {
	voices, err := h.service.ListVoices(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(voices))
}

func (h *Handler) GetVoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid voice ID"))
		return
	}

	found, err := h.service.GetVoice(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

// CreateVoice accepts a multipart upload: the doctor/patient form fields
// plus the recording itself under "voice_file".
func (h *Handler) CreateVoice(c *gin.Context) {
	var req model.CreateVoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	fileHeader, err := c.FormFile("voice_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("voice_file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	defer file.Close()

	created, err := h.service.CreateVoice(c.Request.Context(), middleware.CurrentUser(c),
		doctorID, patientID, req.Title, req.Remarque, fileHeader.Filename, file)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) listParams(c *gin.Context) (uuid.UUID, *bool, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ID"))
		return uuid.Nil, nil, false
	}
	noteCreated, err := handler.BoolQuery(c, "note_created")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return uuid.Nil, nil, false
	}
	return id, noteCreated, true
}

func (h *Handler) ListVoicesByDoctor(c *gin.Context) {
	doctorID, noteCreated, ok := h.listParams(c)
	if !ok {
		return
	}

	voices, err := h.service.ListVoicesByDoctor(c.Request.Context(), middleware.CurrentUser(c), doctorID, noteCreated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(voices))
}

func (h *Handler) ListVoicesByManager(c *gin.Context) {
	managerID, noteCreated, ok := h.listParams(c)
	if !ok {
		return
	}

	voices, err := h.service.ListVoicesByManager(c.Request.Context(), middleware.CurrentUser(c), managerID, noteCreated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(voices))
}

func (h *Handler) ListVoicesByPatient(c *gin.Context) {
	patientID, noteCreated, ok := h.listParams(c)
	if !ok {
		return
	}

	voices, err := h.service.ListVoicesByPatient(c.Request.Context(), middleware.CurrentUser(c), patientID, noteCreated)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(voices))
}
