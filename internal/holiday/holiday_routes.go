package holiday

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware())
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.GetRange)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), h.Create)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), h.Delete)
	}
}
