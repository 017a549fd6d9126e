package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
)

type stubValidator struct {
	claims *domain.Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	log.SetupTestLogger()

	claims := &domain.Claims{UserID: 1, UserRoleID: domain.RoleSeller}

	tests := []struct {
		name           string
		path           string
		header         string
		validator      stubValidator
		expectedStatus int
	}{
		{name: "Rota pública sem token", path: "/v1/login", expectedStatus: http.StatusOK},
		{name: "Healthcheck sem token", path: "/healthcheck", expectedStatus: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/sales", expectedStatus: http.StatusUnauthorized},
		{name: "Sem Bearer", path: "/v1/sales", header: "abc", expectedStatus: http.StatusUnauthorized},
		{
			name:           "Token inválido",
			path:           "/v1/sales",
			header:         "Bearer abc",
			validator:      stubValidator{err: errors.New("token expirado")},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token válido",
			path:           "/v1/sales",
			header:         "Bearer abc",
			validator:      stubValidator{claims: claims},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.validator.claims != nil {
				assert.Equal(t, claims, seen)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name           string
		claims         *domain.Claims
		expectedStatus int
	}{
		{name: "Sem usuário", claims: nil, expectedStatus: http.StatusUnauthorized},
		{name: "Vendedor em rota de admin", claims: &domain.Claims{UserID: 2, UserRoleID: domain.RoleSeller}, expectedStatus: http.StatusForbidden},
		{name: "Admin", claims: &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/cron/daily-snapshot/run", nil)
			if tt.claims != nil {
				req = req.WithContext(WithUser(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			AdminOnly()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	allowed := []string{"http://localhost:5173"}

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		Cors(allowed)(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Origem não permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()

		Cors(allowed)(okHandler()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight responde sem chamar o handler", func(t *testing.T) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		req := httptest.NewRequest(http.MethodOptions, "/v1/sales", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		Cors(allowed)(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
