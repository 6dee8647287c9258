package advance

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	advances := r.Group("/advances")
	advances.Use(middleware.AuthMiddleware())
	{
		advances.POST("", middleware.RBACAuthorize(rbacService, "advance", "create"), h.Create)
		advances.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "advance", "read"), h.GetByEmployee)
	}
}
