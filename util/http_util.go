// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
)

const requesterKey = "requester"

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// SetRequester stores the resolved identity on the request context.
func SetRequester(c *gin.Context, requester model.Requester) {
	c.Set(requesterKey, requester)
}

// GetRequesterFromContext returns the resolved identity, or an anonymous
// requester when the identity middleware did not run.
func GetRequesterFromContext(c *gin.Context) model.Requester {
	value, exists := c.Get(requesterKey)
	if !exists {
		return model.Anonymous()
	}
	requester, ok := value.(model.Requester)
	if !ok {
		return model.Anonymous()
	}
	return requester
}
