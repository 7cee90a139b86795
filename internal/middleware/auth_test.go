package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-service/internal/models"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	service.AuthService
	AuthenticateFunc func(ctx context.Context, token string) (*service.Claims, error)
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (*service.Claims, error) {
	return f.AuthenticateFunc(ctx, token)
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]struct {
		in    string
		want  string
		valid bool
	}{
		"plain":        {in: "Bearer abc.def.ghi", want: "abc.def.ghi", valid: true},
		"quoted":       {in: `Bearer "abc.def.ghi"`, want: "abc.def.ghi", valid: true},
		"trailing":     {in: "Bearer abc.def.ghi, extra", want: "abc.def.ghi", valid: true},
		"lowercase":    {in: "bearer abc", want: "abc", valid: true},
		"wrong scheme": {in: "Basic abc", valid: false},
		"no token":     {in: "Bearer", valid: false},
		"empty":        {in: "", valid: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tc.in)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func newTestEngine(auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/me", AuthRequired(auth, zap.NewNop()), func(c *gin.Context) {
		uid, _ := service.UserIDFromContext(c.Request.Context())
		role, _ := service.RoleFromContext(c.Request.Context())
		_, hasDeadline := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"id": uid.String(), "role": string(role), "deadline": hasDeadline})
	})
	return r
}

func TestAuthRequired_InjectsIdentity(t *testing.T) {
	uid := uuid.New()
	auth := &fakeAuth{AuthenticateFunc: func(_ context.Context, token string) (*service.Claims, error) {
		require.Equal(t, "good", token)
		return &service.Claims{UserID: uid, Role: string(models.RoleAdmin)}, nil
	}}
	r := newTestEngine(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), uid.String())
	assert.Contains(t, w.Body.String(), `"role":"ROLE_ADMIN"`)
	assert.Contains(t, w.Body.String(), `"deadline":true`)
}

func TestAuthRequired_Rejects(t *testing.T) {
	auth := &fakeAuth{AuthenticateFunc: func(context.Context, string) (*service.Claims, error) {
		return nil, errors.New("bad token")
	}}
	r := newTestEngine(auth)

	for _, header := range []string{"", "Basic abc", "Bearer \"\"", "Bearer bad"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
	}
}
