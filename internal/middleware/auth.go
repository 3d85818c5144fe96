package middleware

import (
	"cohort_backend/internal/config"
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 只校验令牌，不查用户表；用户由托管认证服务维护
func AuthMiddleware(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, cfg.Secret, cfg.Issuer)
		if err != nil {
			logger.Log.Debug("reject token", zap.String("path", c.FullPath()), zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RoleMiddleware admin 总是放行
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if !allowed(claims.EffectiveRole(), roles) {
			logger.Log.Info("role denied",
				zap.String("user", claims.UserID()),
				zap.String("role", string(claims.EffectiveRole())),
				zap.String("path", c.FullPath()))
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func allowed(role model.UserRole, roles []model.UserRole) bool {
	if role == model.Admin {
		return true
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}
