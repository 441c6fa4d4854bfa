package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// trainingHandler handles training authoring, publication, lessons and sector
// classification, plus the per-training access check.
type trainingHandler struct {
	trainingService    portssvc.TrainingSvcFacade
	entitlementService portssvc.EntitlementSvcFacade
	progressService    portssvc.ProgressSvcFacade
}

func registerTrainingRoutes(
	rg *gin.RouterGroup,
	trainingService portssvc.TrainingSvcFacade,
	entitlementService portssvc.EntitlementSvcFacade,
	progressService portssvc.ProgressSvcFacade,
) {
	h := &trainingHandler{
		trainingService:    trainingService,
		entitlementService: entitlementService,
		progressService:    progressService,
	}

	trainings := rg.Group("/trainings")
	{
		trainings.POST("", h.createTraining)
	}

	trainingSpecific := rg.Group("/trainings/:training_id")
	{
		trainingSpecific.GET("", h.getTraining)
		trainingSpecific.POST("/publish", h.publishTraining)
		trainingSpecific.GET("/access", h.resolveAccess)

		trainingSpecific.POST("/lessons", h.addLesson)
		trainingSpecific.GET("/lessons", h.listLessons)

		trainingSpecific.POST("/sectors", h.assignSector)
		trainingSpecific.DELETE("/sectors/:sector_id", h.unassignSector)

		trainingSpecific.PUT("/ebook-progress", h.updateEbookProgress)
	}
}

// createTraining godoc
// @Summary Create a training
// @Description Creates a draft training. The variant payload must match the declared entity type.
// @Tags trainings
// @Accept json
// @Produce json
// @Param training body dto.CreateTrainingRequest true "Training details"
// @Success 201 {object} dto.TrainingResponse
// @Failure 400 {object} map[string]string "Invalid input or mismatched payload"
// @Failure 403 {object} map[string]string "Caller may not author content"
// @Security BearerAuth
// @Router /trainings [post]
func (h *trainingHandler) createTraining(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	training, err := h.trainingService.CreateTraining(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create training")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTrainingResponse(training))
}

// getTraining godoc
// @Summary Get a training by ID
// @Tags trainings
// @Produce json
// @Param training_id path string true "Training ID"
// @Success 200 {object} dto.TrainingResponse
// @Failure 404 {object} map[string]string "Training not found"
// @Security BearerAuth
// @Router /trainings/{training_id} [get]
func (h *trainingHandler) getTraining(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	training, err := h.trainingService.FindTrainingByID(c.Request.Context(), c.Param("training_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get training")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrainingResponse(training))
}

// publishTraining godoc
// @Summary Publish a training
// @Tags trainings
// @Param training_id path string true "Training ID"
// @Success 204 "Published"
// @Failure 403 {object} map[string]string "Caller may not author content"
// @Failure 409 {object} map[string]string "Already published"
// @Security BearerAuth
// @Router /trainings/{training_id}/publish [post]
func (h *trainingHandler) publishTraining(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.trainingService.PublishTraining(c.Request.Context(), c.Param("training_id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to publish training")
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveAccess godoc
// @Summary Resolve access to a training
// @Description Returns whether the calling user may open the training, and why not if denied.
// @Tags trainings
// @Produce json
// @Param training_id path string true "Training ID"
// @Success 200 {object} dto.AccessDecisionResponse
// @Failure 404 {object} map[string]string "Training or user not found"
// @Security BearerAuth
// @Router /trainings/{training_id}/access [get]
func (h *trainingHandler) resolveAccess(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decision, err := h.entitlementService.ResolveAccess(c.Request.Context(), userID, c.Param("training_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to resolve access")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessDecisionResponse(decision))
}

// addLesson godoc
// @Summary Add a lesson to a recorded course
// @Tags trainings
// @Accept json
// @Produce json
// @Param training_id path string true "Training ID"
// @Param lesson body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} domain.Lesson
// @Failure 400 {object} map[string]string "Training is not a recorded course"
// @Failure 403 {object} map[string]string "Caller may not author content"
// @Security BearerAuth
// @Router /trainings/{training_id}/lessons [post]
func (h *trainingHandler) addLesson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	lesson, err := h.trainingService.AddLesson(c.Request.Context(), c.Param("training_id"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to add lesson")
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// listLessons godoc
// @Summary List lessons of a recorded course
// @Tags trainings
// @Produce json
// @Param training_id path string true "Training ID"
// @Success 200 {array} domain.Lesson
// @Failure 404 {object} map[string]string "Training not found"
// @Security BearerAuth
// @Router /trainings/{training_id}/lessons [get]
func (h *trainingHandler) listLessons(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	lessons, err := h.trainingService.ListLessons(c.Request.Context(), c.Param("training_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list lessons")
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// assignSector godoc
// @Summary Classify a training within a sector
// @Description Marks the training compulsory or elective for a sector, with its legal basis.
// @Tags trainings
// @Accept json
// @Param training_id path string true "Training ID"
// @Param assignment body dto.AssignSectorRequest true "Classification"
// @Success 204 "Assigned"
// @Failure 403 {object} map[string]string "Caller may not author content"
// @Failure 404 {object} map[string]string "Training or sector not found"
// @Security BearerAuth
// @Router /trainings/{training_id}/sectors [post]
func (h *trainingHandler) assignSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AssignSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.trainingService.AssignSector(c.Request.Context(), c.Param("training_id"), req.SectorID, req.TrainingType, req.LegalBasis, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to assign sector")
		return
	}
	c.Status(http.StatusNoContent)
}

// unassignSector godoc
// @Summary Remove a training's sector classification
// @Tags trainings
// @Param training_id path string true "Training ID"
// @Param sector_id path string true "Sector ID"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Caller may not author content"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /trainings/{training_id}/sectors/{sector_id} [delete]
func (h *trainingHandler) unassignSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.trainingService.UnassignSector(c.Request.Context(), c.Param("training_id"), c.Param("sector_id"), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to unassign sector")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateEbookProgress godoc
// @Summary Record the last page read of an ebook
// @Description Upserts the reading position. Never changes enrollment status.
// @Tags progress
// @Accept json
// @Produce json
// @Param training_id path string true "Training ID"
// @Param progress body dto.UpdateEbookProgressRequest true "Last page read"
// @Success 200 {object} dto.EbookProgressResponse
// @Failure 400 {object} map[string]string "Page out of range or not an ebook"
// @Failure 404 {object} map[string]string "Training not found"
// @Security BearerAuth
// @Router /trainings/{training_id}/ebook-progress [put]
func (h *trainingHandler) updateEbookProgress(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateEbookProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.progressService.UpdateEbookProgress(c.Request.Context(), userID, c.Param("training_id"), req.Page)
	if err != nil {
		respondError(c, logger, err, "Failed to update ebook progress")
		return
	}
	c.JSON(http.StatusOK, dto.ToEbookProgressResponse(&result.Progress, result.Percentage))
}
