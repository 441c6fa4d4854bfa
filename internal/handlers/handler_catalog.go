package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// catalogHandler serves the per-user catalog view.
type catalogHandler struct {
	entitlementService portssvc.EntitlementSvcFacade
}

func registerCatalogRoutes(rg *gin.RouterGroup, entitlementService portssvc.EntitlementSvcFacade) {
	h := &catalogHandler{entitlementService: entitlementService}
	rg.GET("/catalog", h.getCatalog)
}

// getCatalog godoc
// @Summary Get the calling user's training catalog
// @Description Trainings visible through the user's sectors, deduplicated with consolidated compulsory/elective classification and enrollment status.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Security BearerAuth
// @Router /catalog [get]
func (h *catalogHandler) getCatalog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.entitlementService.BuildCatalog(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to build catalog")
		return
	}
	c.JSON(http.StatusOK, dto.ToCatalogResponse(items))
}
