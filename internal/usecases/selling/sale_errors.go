package selling

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

var (
	ErrInvalidSale       = errors.New("venda inválida")
	ErrInvalidDateRange  = errors.New("data inicial posterior à data final")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrExportFailed      = errors.New("erro ao gerar planilha de vendas")
	ErrIDGeneration      = errors.New("erro ao gerar identificador da venda")
)

// SaleError carrega o código da API e os detalhes de validação junto do erro base
type SaleError struct {
	Err     error
	Code    string
	Details any
}

func (e *SaleError) Error() string {
	if e.Details != nil {
		if msg, ok := e.Details.(string); ok && msg != "" {
			return fmt.Sprintf("%s: %s", e.Err.Error(), msg)
		}
	}
	return e.Err.Error()
}

func (e *SaleError) Unwrap() error {
	return e.Err
}

func NewSaleError(baseErr error, code string, details any) *SaleError {
	return &SaleError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// IsValidationError indica se o erro veio de dados inválidos enviados pelo cliente
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSale) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, domain.ErrIncompletePartnership) ||
		errors.Is(err, domain.ErrUnexpectedInvestment) ||
		errors.Is(err, domain.ErrNegativeInvestment) ||
		errors.Is(err, domain.ErrAmountOutOfRange) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrEmptyModel)
}
