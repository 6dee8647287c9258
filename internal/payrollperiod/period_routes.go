package payrollperiod

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.GET("", middleware.RBACAuthorize(rbacService, "payroll_period", "read"), h.GetAll)
		periods.GET("/:id/audits", middleware.RBACAuthorize(rbacService, "payroll_period", "read"), h.GetAudits)
		periods.POST("/lock",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll_period", "lock"),
			h.Lock,
		)
		periods.POST("/unlock",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll_period", "unlock"),
			h.Unlock,
		)
	}
}
