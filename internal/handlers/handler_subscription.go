package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
)

// subscriptionHandler handles plans and subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade) {
	h := &subscriptionHandler{subscriptionService: subscriptionService}

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.purchaseSubscription)
		subscriptions.DELETE("/:subscription_id", h.cancelSubscription)
	}

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("", h.listPlans)
	}
}

// purchaseSubscription godoc
// @Summary Purchase a subscription
// @Description Attaches a plan to the relevant account: the caller's personal account for individual plans, the organization's account for enterprise plans.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.PurchaseSubscriptionRequest true "Purchase details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Plan/organization mismatch"
// @Failure 403 {object} map[string]string "Caller is not an organization admin"
// @Failure 409 {object} map[string]string "Account already has an active subscription"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) purchaseSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PurchaseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	subscription, err := h.subscriptionService.PurchaseSubscription(c.Request.Context(), userID, req.PlanID, req.OrganizationID)
	if err != nil {
		respondError(c, logger, err, "Failed to purchase subscription")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(subscription))
}

// cancelSubscription godoc
// @Summary Cancel a subscription
// @Tags subscriptions
// @Param subscription_id path string true "Subscription ID"
// @Success 204 "Canceled"
// @Failure 403 {object} map[string]string "Caller cannot manage this account"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 409 {object} map[string]string "Subscription is not active"
// @Security BearerAuth
// @Router /subscriptions/{subscription_id} [delete]
func (h *subscriptionHandler) cancelSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.subscriptionService.CancelSubscription(c.Request.Context(), c.Param("subscription_id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to cancel subscription")
		return
	}
	c.Status(http.StatusNoContent)
}

// createPlan godoc
// @Summary Create a plan
// @Description Creates a purchasable plan. Restricted to system admins.
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 403 {object} map[string]string "Caller is not a system admin"
// @Failure 409 {object} map[string]string "Plan name already exists"
// @Security BearerAuth
// @Router /plans [post]
func (h *subscriptionHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.subscriptionService.CreatePlan(c.Request.Context(), req.Name, req.Type, req.Price, req.DurationDays, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// listPlans godoc
// @Summary List all plans
// @Tags plans
// @Produce json
// @Success 200 {object} dto.ListPlansResponse
// @Security BearerAuth
// @Router /plans [get]
func (h *subscriptionHandler) listPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlansResponse(plans))
}
