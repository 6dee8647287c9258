package payroll

import (
	"go-otpay/internal/middleware"
	"go-otpay/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAllForPeriod)
		payrolls.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetPayslip)
		payrolls.GET("/:employeeId/payslip/download", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslipPDF)
		if redisClient != nil {
			payrolls.POST(
				"/compute",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.Compute,
			)
		} else {
			payrolls.POST("/compute", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Compute)
		}
	}
}
