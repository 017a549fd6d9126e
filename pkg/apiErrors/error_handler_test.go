package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "Venda inválida", code: ErrInvalidSale, expectedStatus: http.StatusBadRequest},
		{name: "Token inválido", code: ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "Job em execução", code: ErrJobAlreadyRunning, expectedStatus: http.StatusConflict},
		{name: "Código desconhecido", code: "XYZ_999", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "valor"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, FromError(nil, ErrInvalidSale).Code)

	apiErr := FromError(errors.New("quantidade inválida"), ErrInvalidSale)
	assert.Equal(t, ErrInvalidSale, apiErr.Code)
	assert.Equal(t, "quantidade inválida", apiErr.Message)
}
