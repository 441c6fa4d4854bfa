package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// organizationHandler handles organizations, their members, adopted sectors
// and the assignable-trainings view.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
	membershipService   portssvc.MembershipSvcFacade
	sectorService       portssvc.SectorSvcFacade
	entitlementService  portssvc.EntitlementSvcFacade
}

func registerOrganizationRoutes(
	rg *gin.RouterGroup,
	organizationService portssvc.OrganizationSvcFacade,
	membershipService portssvc.MembershipSvcFacade,
	sectorService portssvc.SectorSvcFacade,
	entitlementService portssvc.EntitlementSvcFacade,
) {
	h := &organizationHandler{
		organizationService: organizationService,
		membershipService:   membershipService,
		sectorService:       sectorService,
		entitlementService:  entitlementService,
	}

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("", h.listUserOrganizations)
	}

	orgSpecific := rg.Group("/organizations/:organization_id")
	{
		orgSpecific.GET("", h.getOrganization)

		members := orgSpecific.Group("/members")
		{
			members.POST("", h.addMember)
			members.GET("", h.listMembers)
			members.PUT("/:membership_id", h.updateMemberRole)
			members.DELETE("/:membership_id", h.removeMember)
		}

		sectors := orgSpecific.Group("/sectors")
		{
			sectors.POST("/:sector_id", h.adoptSector)
			sectors.DELETE("/:sector_id", h.releaseSector)
		}

		orgSpecific.GET("/assignable-trainings", h.listAssignableTrainings)
	}
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates an organization, its enterprise account if needed, and makes the creator its first admin.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "CNPJ already registered"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, req.CNPJ, req.AccountID, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create organization")
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// listUserOrganizations godoc
// @Summary List organizations for the current user
// @Tags organizations
// @Produce json
// @Success 200 {object} dto.ListOrganizationsResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrganizationsResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), c.Param("organization_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addMember godoc
// @Summary Add a member to an organization
// @Description Adds a user with the given role. The caller must be an admin of the organization.
// @Tags memberships
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.MembershipResponse
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "User already a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	membership, err := h.membershipService.AddMember(c.Request.Context(), actorID, c.Param("organization_id"), req.UserID, req.Role)
	if err != nil {
		respondError(c, logger, err, "Failed to add member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMembershipResponse(membership))
}

// listMembers godoc
// @Summary List members of an organization
// @Tags memberships
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListMembershipsResponse
// @Failure 403 {object} map[string]string "Caller is not a member"
// @Security BearerAuth
// @Router /organizations/{organization_id}/members [get]
func (h *organizationHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	members, err := h.membershipService.ListMembers(c.Request.Context(), actorID, c.Param("organization_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembershipsResponse(members))
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Description Demoting the organization's last admin is rejected with a conflict.
// @Tags memberships
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param membership_id path string true "Membership ID"
// @Param role body dto.UpdateMemberRoleRequest true "New role"
// @Success 200 {object} dto.MembershipResponse
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Last admin or membership mismatch"
// @Security BearerAuth
// @Router /organizations/{organization_id}/members/{membership_id} [put]
func (h *organizationHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	membership, err := h.membershipService.UpdateMemberRole(c.Request.Context(), actorID, c.Param("organization_id"), c.Param("membership_id"), req.Role)
	if err != nil {
		respondError(c, logger, err, "Failed to update member role")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(membership))
}

// removeMember godoc
// @Summary Remove a member from an organization
// @Description Removing the organization's last admin is rejected with a conflict, including self-removal.
// @Tags memberships
// @Param organization_id path string true "Organization ID"
// @Param membership_id path string true "Membership ID"
// @Success 204 "Removed"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Last admin or membership mismatch"
// @Security BearerAuth
// @Router /organizations/{organization_id}/members/{membership_id} [delete]
func (h *organizationHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.membershipService.RemoveMember(c.Request.Context(), actorID, c.Param("organization_id"), c.Param("membership_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

// adoptSector godoc
// @Summary Adopt a sector
// @Description Opts the organization into a sector's training catalog.
// @Tags organizations
// @Param organization_id path string true "Organization ID"
// @Param sector_id path string true "Sector ID"
// @Success 204 "Adopted"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "Sector not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/sectors/{sector_id} [post]
func (h *organizationHandler) adoptSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.sectorService.AdoptSector(c.Request.Context(), actorID, c.Param("organization_id"), c.Param("sector_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to adopt sector")
		return
	}
	c.Status(http.StatusNoContent)
}

// releaseSector godoc
// @Summary Release an adopted sector
// @Tags organizations
// @Param organization_id path string true "Organization ID"
// @Param sector_id path string true "Sector ID"
// @Success 204 "Released"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 404 {object} map[string]string "Adoption not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/sectors/{sector_id} [delete]
func (h *organizationHandler) releaseSector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.sectorService.ReleaseSector(c.Request.Context(), actorID, c.Param("organization_id"), c.Param("sector_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to release sector")
		return
	}
	c.Status(http.StatusNoContent)
}

// listAssignableTrainings godoc
// @Summary List trainings assignable by an organization
// @Description Returns trainings reachable through the organization's adopted sectors plus universal published trainings.
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListTrainingsResponse
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/assignable-trainings [get]
func (h *organizationHandler) listAssignableTrainings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trainings, err := h.entitlementService.GetAssignableTrainingsForOrg(c.Request.Context(), c.Param("organization_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list assignable trainings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTrainingsResponse(trainings))
}
