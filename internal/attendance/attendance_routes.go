package attendance

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	att := r.Group("/attendance")
	att.Use(middleware.AuthMiddleware())
	{
		att.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockIn)
		att.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.ClockOut)
		att.GET("/day", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetDay)
		att.GET("/month", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetMonth)
	}
}
