package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		user, err := service.Register(r.Context(), req)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

// ChangePassword altera a senha do próprio usuário
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		var req domain.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), userClaims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			handleAuthError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAuthError converte os erros de autenticação na resposta padronizada
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if apiErrors.StatusFor(authErr.Code) >= http.StatusInternalServerError {
			log.ForContext(r.Context()).WithError(err).Error("Erro interno na autenticação")
		}

		var details any
		if authErr.UserID != 0 {
			details = map[string]any{"user_id": authErr.UserID}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "Usuário desativado", nil)

	case errors.Is(err, authenticating.ErrUserNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)

	default:
		log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado na autenticação")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}
