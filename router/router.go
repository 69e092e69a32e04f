// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vapvarun/wc-subscription-protection/controller"
	"github.com/vapvarun/wc-subscription-protection/db"
	"github.com/vapvarun/wc-subscription-protection/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	jwtSecret []byte,
	sessionCookie string,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.Identity(jwtSecret, sessionCookie))
	api.Use(middleware.RateLimiter(db.RateLimit, rateLimitRequests, rateLimitDuration))

	controllers.RegisterRoutes(api)

	return router
}
