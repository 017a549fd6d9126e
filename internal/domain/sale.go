package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomer         = errors.New("cliente é obrigatório")
	ErrEmptyModel            = errors.New("modelo é obrigatório")
	ErrNegativePrice         = errors.New("preços não podem ser negativos")
	ErrInvalidQuantity       = errors.New("quantidade deve ser maior ou igual a 1")
	ErrNegativeInvestment    = errors.New("investimentos da parceria não podem ser negativos")
	ErrIncompletePartnership = errors.New("parceria exige os dois investimentos")
	ErrUnexpectedInvestment  = errors.New("investimentos informados para venda sem parceria")
	ErrAmountOutOfRange      = errors.New("valor fora do intervalo permitido")
)

const (
	maxAmountScale = 12
	maxAmountBits  = 100
)

// MaxAmount é o maior valor aceito para preços e investimentos
var MaxAmount = decimal.New(1, 12)

// AmountInRange verifica se o valor cabe nos limites de preços e investimentos.
// Expoente e número de dígitos são checados antes de qualquer conta com o valor.
func AmountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -maxAmountScale || exp > maxAmountScale {
		return false
	}

	if d.Coefficient().BitLen() > maxAmountBits {
		return false
	}

	return d.Abs().Cmp(MaxAmount) <= 0
}

// Partnership guarda a divisão do investimento de uma venda em parceria.
// Uma venda sem parceria tem Partnership nil.
type Partnership struct {
	MyInvestment      decimal.Decimal `json:"my_investment"`
	PartnerInvestment decimal.Decimal `json:"partner_investment"`
}

// Sale representa uma venda registrada por um usuário
type Sale struct {
	ID            string          `json:"id"`
	UserID        int             `json:"user_id"`
	Customer      string          `json:"customer"`
	Model         string          `json:"model"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
	Date          time.Time       `json:"date"`
	Partnership   *Partnership    `json:"partnership,omitempty"`
}

func (s *Sale) IsPartnership() bool {
	return s.Partnership != nil
}

// Revenue retorna o valor total cobrado do cliente (preço de venda x quantidade)
func (s *Sale) Revenue() decimal.Decimal {
	return s.SellingPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Profit pode ser negativo quando a venda é feita abaixo do custo
func (s *Sale) Profit() decimal.Decimal {
	return s.SellingPrice.Sub(s.PurchasePrice).Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Investment retorna o custo de compra da venda. Os investimentos da parceria não entram aqui.
func (s *Sale) Investment() decimal.Decimal {
	return s.PurchasePrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Validate verifica os invariantes de uma venda
func (s *Sale) Validate() error {
	if strings.TrimSpace(s.Customer) == "" {
		return ErrEmptyCustomer
	}

	if strings.TrimSpace(s.Model) == "" {
		return ErrEmptyModel
	}

	if !AmountInRange(s.PurchasePrice) || !AmountInRange(s.SellingPrice) {
		return ErrAmountOutOfRange
	}

	if s.PurchasePrice.IsNegative() || s.SellingPrice.IsNegative() {
		return ErrNegativePrice
	}

	if s.Quantity < 1 {
		return ErrInvalidQuantity
	}

	if s.Partnership != nil {
		if !AmountInRange(s.Partnership.MyInvestment) || !AmountInRange(s.Partnership.PartnerInvestment) {
			return ErrAmountOutOfRange
		}
		if s.Partnership.MyInvestment.IsNegative() || s.Partnership.PartnerInvestment.IsNegative() {
			return ErrNegativeInvestment
		}
	}

	return nil
}

// NewSaleRequest é o corpo recebido para registrar uma nova venda.
// ID e data são atribuídos pelo sistema.
type NewSaleRequest struct {
	Customer          string           `json:"customer" validate:"required"`
	Model             string           `json:"model" validate:"required"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price" validate:"gte=0,lte=1000000000000"`
	SellingPrice      decimal.Decimal  `json:"selling_price" validate:"gte=0,lte=1000000000000"`
	Quantity          int              `json:"quantity" validate:"required,min=1"`
	IsPartnership     bool             `json:"is_partnership"`
	MyInvestment      *decimal.Decimal `json:"my_investment,omitempty"`
	PartnerInvestment *decimal.Decimal `json:"partner_investment,omitempty"`
}

// PartnershipFromRequest converte os campos opcionais da requisição para a variante da venda.
// Retorna erro quando os campos estão em estado misto.
func (r *NewSaleRequest) PartnershipFromRequest() (*Partnership, error) {
	if !r.IsPartnership {
		if r.MyInvestment != nil || r.PartnerInvestment != nil {
			return nil, ErrUnexpectedInvestment
		}
		return nil, nil
	}

	if r.MyInvestment == nil || r.PartnerInvestment == nil {
		return nil, ErrIncompletePartnership
	}

	if !AmountInRange(*r.MyInvestment) || !AmountInRange(*r.PartnerInvestment) {
		return nil, ErrAmountOutOfRange
	}

	if r.MyInvestment.IsNegative() || r.PartnerInvestment.IsNegative() {
		return nil, ErrNegativeInvestment
	}

	return &Partnership{
		MyInvestment:      *r.MyInvestment,
		PartnerInvestment: *r.PartnerInvestment,
	}, nil
}

// SaleFilter limita as vendas por intervalo de dias (inclusivo)
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}
