package routes

import (
	"net/http"

	"concierge_backend/internal/auth"
	"concierge_backend/internal/handlers"
	"concierge_backend/internal/middleware"
	"concierge_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Register wires every route. Public reads stay open; everything that acts
// on behalf of a user sits behind the auth middleware.
func Register(router *gin.Engine, h *handlers.AppHandlers, jwtService *auth.JWTService) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/specialties", h.Specialty.List)
	api.GET("/concierges", h.Concierge.List)
	api.GET("/concierges/:id", h.Concierge.Get)
	api.GET("/concierges/:id/reviews", h.Review.ListByConcierge)
	api.GET("/listings", h.Listing.List)
	api.GET("/marketplace", h.Marketplace.List)

	// Payment processor callback, authenticated by signature.
	api.POST("/webhook", h.Webhook.HandleStripe)

	// Authenticated
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService))
	{
		authed.POST("/auth/refresh", h.Auth.Refresh)

		authed.GET("/user/profile", h.User.GetProfile)
		authed.PUT("/user/profile", h.User.UpdateProfile)
		authed.POST("/user/upload-image", h.User.UploadImage)

		authed.PUT("/concierges/:id",
			middleware.RequireRoles(models.UserRoleConcierge), h.Concierge.Update)

		authed.POST("/listings", h.Listing.Create)
		authed.POST("/marketplace", h.Marketplace.Create)

		authed.POST("/requests", h.Request.Create)
		authed.GET("/requests", h.Request.List)
		authed.PUT("/requests/:id/status", h.Request.UpdateStatus)

		authed.POST("/messages", h.Message.Send)
		authed.GET("/messages", h.Message.List)
		authed.PUT("/messages/:id/read", h.Message.MarkRead)

		authed.POST("/reviews", h.Review.Create)

		authed.GET("/subscription", h.Subscription.GetCurrent)
		authed.POST("/subscription/create-checkout", h.Subscription.CreateCheckout)

		authed.GET("/dashboard/stats", h.Dashboard.Stats)
	}
}
