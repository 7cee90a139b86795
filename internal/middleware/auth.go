package middleware

import (
	"net/http"
	"strings"

	"shop-service/internal/dto"
	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// AuthRequired проверяет Bearer токен и кладёт пользователя в gin-контекст и в context запроса.
func AuthRequired(auth service.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("empty token"))
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("токен отклонён", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		role := models.Role(claims.Role)
		c.Set(CtxUserID, claims.UserID.String())
		c.Set(CtxUserRole, string(role))
		c.Request = c.Request.WithContext(service.WithIdentity(c.Request.Context(), claims.UserID, role))
		c.Next()
	}
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
// Примеры допустимых значений:
// - "Bearer abc.def.ghi"
// - "Bearer \"abc.def.ghi\""
// - "Bearer abc.def.ghi, extra"
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	// всё после запятой отбрасываем
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.Trim(t[:i], " \"'")
	}
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.Trim(t[:i], " \"'")
	}
	return t, true
}
