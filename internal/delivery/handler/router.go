package handler

import (
	"github.com/labstack/echo/v4"

	"booklending-service/internal/infrastructure"
)

// RegisterRoutes wires the HTTP surface. Everything except registration,
// login and the password reset flow sits behind the JWT middleware.
func RegisterRoutes(
	e *echo.Echo,
	jwtService *infrastructure.JWTService,
	authHandler *AuthHandler,
	bookHandler *BookHandler,
	lendingHandler *LendingHandler,
) {
	requireAuth := JWTMiddleware(jwtService)

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", authHandler.Me, requireAuth)

	books := e.Group("/api/books", requireAuth)
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/available", bookHandler.ListAvailable)
	books.GET("/borrowed", lendingHandler.ListBorrowedBooks)
	books.GET("/user", bookHandler.ListMine)
	books.GET("/user/stats", lendingHandler.GetUserStats)
	books.GET("/requests/received", lendingHandler.ListReceivedRequests)
	books.GET("/requests/sent", lendingHandler.ListSentRequests)
	books.PUT("/requests/:id/respond", lendingHandler.RespondToRequest)
	books.DELETE("/requests/:id", lendingHandler.CancelRequest)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)
	books.POST("/:id/request", lendingHandler.RequestBorrow)
	books.POST("/:id/return", lendingHandler.ReturnBook)
}
