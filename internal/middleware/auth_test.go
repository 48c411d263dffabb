package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-slots/internal/config"
	"github.com/BruksfildServices01/barber-slots/internal/session"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/barber", AuthMiddleware(cfg), RequireRole(session.RoleBarber), func(c *gin.Context) {
		sc := SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"sid": sc.ID, "user": sc.UserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	r := newRouter(cfg)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + sign(t, "other", jwt.MapClaims{"sub": "b1", "role": "barber"}), http.StatusUnauthorized},
		{"unknown role", "Bearer " + sign(t, "secret", jwt.MapClaims{"sub": "b1", "role": "admin"}), http.StatusUnauthorized},
		{"wrong role", "Bearer " + sign(t, "secret", jwt.MapClaims{"sub": "c1", "role": "client"}), http.StatusForbidden},
		{"ok", "Bearer " + sign(t, "secret", jwt.MapClaims{"sub": "b1", "role": "barber", "sid": "chat-9"}), http.StatusOK},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/barber", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.want, w.Code, w.Body.String())
		}
	}
}
