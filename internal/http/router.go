package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/draftly/internal/http/handlers"
	"github.com/you/draftly/internal/http/middleware"
	"github.com/you/draftly/internal/services"
)

func BuildRouter(ah *handlers.AuthHandlers, kh *handlers.APIKeyHandlers, jwtmw *middleware.AuthMW, rlmw *middleware.RateLimitMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(rlmw.Limit("api", services.APIRateLimit))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", rlmw.Limit("register", services.RegisterRateLimit), ah.Register)
	auth.POST("/login", rlmw.Limit("login", services.LoginRateLimit), ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/otp/resend", rlmw.Limit("otp_resend", services.RegisterRateLimit), ah.ResendOTP)
	auth.POST("/password/forgot", rlmw.Limit("forgot", services.RegisterRateLimit), ah.ForgotPassword)
	auth.POST("/password/reset", ah.ResetPassword)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/keys", kh.Add)
	v.GET("/keys", kh.List)
	v.POST("/keys/:provider/reveal", kh.Reveal)
	v.DELETE("/keys/:provider", kh.Delete)

	return r
}
