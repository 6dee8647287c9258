package salarystructure

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	salaries := r.Group("/salary-structures")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.PUT("", middleware.RBACAuthorize(rbacService, "salary_structure", "update"), h.Upsert)
		salaries.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), h.GetByEmployee)
	}
}
