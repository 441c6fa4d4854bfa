package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// sectorHandler handles the global sector catalog.
type sectorHandler struct {
	sectorService portssvc.SectorSvcFacade
}

func registerSectorRoutes(rg *gin.RouterGroup, sectorService portssvc.SectorSvcFacade) {
	h := &sectorHandler{sectorService: sectorService}

	sectors := rg.Group("/sectors")
	{
		sectors.POST("", h.createSector)
		sectors.GET("", h.listSectors)
		sectors.DELETE("/:sector_id", h.deleteSector)
	}
}

// createSector godoc
// @Summary Create a sector
// @Description Creates a global sector. Restricted to system admins.
// @Tags sectors
// @Accept json
// @Produce json
// @Param sector body dto.CreateSectorRequest true "Sector details"
// @Success 201 {object} dto.SectorResponse
// @Failure 403 {object} map[string]string "Caller is not a system admin"
// @Failure 409 {object} map[string]string "Sector name already exists"
// @Security BearerAuth
// @Router /sectors [post]
func (h *sectorHandler) createSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sector, err := h.sectorService.CreateSector(c.Request.Context(), req.Name, req.Description, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create sector")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSectorResponse(sector))
}

// listSectors godoc
// @Summary List all sectors
// @Tags sectors
// @Produce json
// @Success 200 {object} dto.ListSectorsResponse
// @Security BearerAuth
// @Router /sectors [get]
func (h *sectorHandler) listSectors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sectors, err := h.sectorService.ListSectors(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list sectors")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSectorsResponse(sectors))
}

// deleteSector godoc
// @Summary Delete a sector
// @Description Deletes a sector. Blocked while any training assignment or organization adoption references it.
// @Tags sectors
// @Param sector_id path string true "Sector ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Caller is not a system admin"
// @Failure 409 {object} map[string]string "Sector still referenced"
// @Security BearerAuth
// @Router /sectors/{sector_id} [delete]
func (h *sectorHandler) deleteSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.sectorService.DeleteSector(c.Request.Context(), c.Param("sector_id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to delete sector")
		return
	}
	c.Status(http.StatusNoContent)
}
