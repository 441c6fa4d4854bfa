package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// progressHandler handles lesson completion.
type progressHandler struct {
	progressService portssvc.ProgressSvcFacade
}

func registerProgressRoutes(rg *gin.RouterGroup, progressService portssvc.ProgressSvcFacade) {
	h := &progressHandler{progressService: progressService}
	rg.POST("/lessons/:lesson_id/complete", h.markLessonCompleted)
}

// markLessonCompleted godoc
// @Summary Mark a lesson as completed
// @Description Records the completion; flips the enrollment to COMPLETED when it was the course's last outstanding lesson.
// @Tags progress
// @Produce json
// @Param lesson_id path string true "Lesson ID"
// @Success 200 {object} dto.LessonCompletedResponse
// @Failure 404 {object} map[string]string "Lesson or enrollment not found"
// @Failure 409 {object} map[string]string "Lesson already completed"
// @Security BearerAuth
// @Router /lessons/{lesson_id}/complete [post]
func (h *progressHandler) markLessonCompleted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	enrollment, err := h.progressService.MarkLessonCompleted(c.Request.Context(), userID, c.Param("lesson_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to mark lesson completed")
		return
	}
	c.JSON(http.StatusOK, dto.LessonCompletedResponse{
		Enrollment: dto.ToEnrollmentResponse(enrollment),
	})
}
