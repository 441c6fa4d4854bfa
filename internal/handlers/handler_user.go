package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// userHandler handles HTTP requests related to users and their sector
// self-selection.
type userHandler struct {
	userService   portssvc.UserSvcFacade
	sectorService portssvc.SectorSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, ss portssvc.SectorSvcFacade) *userHandler {
	return &userHandler{userService: us, sectorService: ss}
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, sectorService portssvc.SectorSvcFacade) {
	h := newUserHandler(userService, sectorService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:user_id", h.getUser)
		users.PUT("/:user_id", h.updateUser)
		users.DELETE("/:user_id", h.deleteUser)

		users.POST("/:user_id/sectors", h.assignSector)
		users.DELETE("/:user_id/sectors/:sector_id", h.unassignSector)
	}
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListUsersResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// updateUser godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("user_id"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft deletes a user. Users may delete themselves; system admins may delete anyone.
// @Tags users
// @Param user_id path string true "User ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /users/{user_id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("user_id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// assignSector godoc
// @Summary Assign a sector to a user
// @Description Self-selection for personal users; organization admins assign through their organization.
// @Tags users
// @Accept json
// @Param user_id path string true "User ID"
// @Param assignment body dto.AssignUserSectorRequest true "Sector assignment"
// @Success 204 "Assigned"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User or sector not found"
// @Security BearerAuth
// @Router /users/{user_id}/sectors [post]
func (h *userHandler) assignSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AssignUserSectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.sectorService.AssignUserSector(c.Request.Context(), actorID, c.Param("user_id"), req.SectorID, req.OrganizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to assign sector")
		return
	}
	c.Status(http.StatusNoContent)
}

// unassignSector godoc
// @Summary Remove a user's sector assignment
// @Tags users
// @Param user_id path string true "User ID"
// @Param sector_id path string true "Sector ID"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /users/{user_id}/sectors/{sector_id} [delete]
func (h *userHandler) unassignSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.sectorService.UnassignUserSector(c.Request.Context(), actorID, c.Param("user_id"), c.Param("sector_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to unassign sector")
		return
	}
	c.Status(http.StatusNoContent)
}
