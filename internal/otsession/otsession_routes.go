package otsession

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	ot := r.Group("/ot-sessions")
	ot.Use(middleware.AuthMiddleware())
	{
		ot.POST("/start", middleware.RBACAuthorize(rbacService, "ot_session", "create"), h.Start)
		ot.POST("/:sessionId/end", middleware.RBACAuthorize(rbacService, "ot_session", "create"), h.End)
		ot.POST("/:sessionId/review", middleware.RBACAuthorize(rbacService, "ot_session", "review"), h.Review)
		ot.GET("/active", middleware.RBACAuthorize(rbacService, "ot_session", "read"), h.GetActive)
		ot.GET("", middleware.RBACAuthorize(rbacService, "ot_session", "read"), h.GetForDate)
		ot.GET("/pending-reviews", middleware.RBACAuthorize(rbacService, "ot_session", "review"), h.ListPendingReviews)
	}
}
