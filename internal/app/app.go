package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/draftly/internal/config"
	httpx "github.com/you/draftly/internal/http"
	"github.com/you/draftly/internal/http/handlers"
	"github.com/you/draftly/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	keyH := handlers.NewAPIKeyHandlers(c.APIKeySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	rlMW := middleware.NewRateLimitMW(c.RateLimiter)

	r := httpx.BuildRouter(authH, keyH, jwtMW, rlMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
