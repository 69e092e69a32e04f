package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/util"
)

// SessionClaims are the claims the host puts in the bearer token it hands
// to the front end for the logged-in user.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username     string   `json:"username,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Identity resolves the requester from an HS256 bearer token. Plain
// browser submissions such as the widget's toggle form carry no header, so
// the same token is also read from sessionCookie when one is named. A
// request with neither is anonymous; a present but invalid token is
// rejected.
func Identity(secret []byte, sessionCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" && sessionCookie != "" {
			token, _ = c.Cookie(sessionCookie)
		}
		if token == "" {
			util.SetRequester(c, model.Anonymous())
			c.Next()
			return
		}

		claims, err := parseSessionToken(token, secret)
		if err != nil {
			logger.Warn("Rejected bearer token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		util.SetRequester(c, model.Requester{
			UserID:       claims.Subject,
			Username:     claims.Username,
			Capabilities: claims.Capabilities,
		})
		c.Next()
	}
}

func parseSessionToken(tokenString string, secret []byte) (*SessionClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token verification is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token or wrong claims type")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
