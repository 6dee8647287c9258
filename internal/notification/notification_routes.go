package notification

import (
	"go-otpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Inbox selalu milik karyawan yang login; tidak ada resource RBAC
// terpisah, cukup autentikasi.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
