package util

import (
	"cohort_backend/internal/model"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserKey 认证中间件写入 gin.Context 的键
const ContextUserKey = "user"

// Claims 托管认证服务签发的访问令牌，用户 ID 位于 sub
type Claims struct {
	Role        model.UserRole `json:"role"`
	Email       string         `json:"email"`
	AppMetadata struct {
		Role model.UserRole `json:"role"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// UserID 令牌主体
func (c *Claims) UserID() string {
	return c.Subject
}

// EffectiveRole 优先使用 app_metadata 中的业务角色
func (c *Claims) EffectiveRole() model.UserRole {
	if c.AppMetadata.Role != "" {
		return c.AppMetadata.Role
	}
	return c.Role
}

// GenerateJWT 仅用于本地调试与测试，生产令牌由认证服务签发
func GenerateJWT(userID string, role model.UserRole, email, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret, issuer string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// OperatorID 当前操作人，未登录时为空
func OperatorID(c *gin.Context) string {
	if claims := GetUserFromContext(c); claims != nil {
		return claims.UserID()
	}
	return ""
}
