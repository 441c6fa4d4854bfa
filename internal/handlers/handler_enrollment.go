package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// enrollmentHandler handles enrollment creation and listing.
type enrollmentHandler struct {
	enrollmentService portssvc.EnrollmentSvcFacade
}

func registerEnrollmentRoutes(rg *gin.RouterGroup, enrollmentService portssvc.EnrollmentSvcFacade) {
	h := &enrollmentHandler{enrollmentService: enrollmentService}

	enrollments := rg.Group("/enrollments")
	{
		enrollments.POST("", h.enroll)
		enrollments.GET("", h.listEnrollments)
	}
}

// enroll godoc
// @Summary Enroll in a training
// @Description Creates an enrollment for the calling user in a published training they are entitled to.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param enrollment body dto.EnrollRequest true "Enrollment details"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} map[string]string "Training not published"
// @Failure 403 {object} map[string]string "No entitlement to this training"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Security BearerAuth
// @Router /enrollments [post]
func (h *enrollmentHandler) enroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), userID, req.TrainingID, req.SponsoredBy)
	if err != nil {
		respondError(c, logger, err, "Failed to enroll")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEnrollmentResponse(enrollment))
}

// listEnrollments godoc
// @Summary List the calling user's enrollments
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.ListEnrollmentsResponse
// @Security BearerAuth
// @Router /enrollments [get]
func (h *enrollmentHandler) listEnrollments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollments, err := h.enrollmentService.ListUserEnrollments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list enrollments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEnrollmentsResponse(enrollments))
}
