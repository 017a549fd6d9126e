package selling

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

var validationMessages = map[string]string{
	"required": "campo obrigatório",
	"gte":      "não pode ser negativo",
	"lte":      "deve ser no máximo " + domain.MaxAmount.String(),
	"min":      "deve ser maior ou igual a 1",
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal é validado pelo seu valor numérico; fora dos limites vira +Inf e falha no lte
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			if !domain.AmountInRange(d) {
				return math.Inf(1)
			}
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// validateRequest normaliza os textos e devolve um mapa campo -> mensagem quando inválido
func validateRequest(validate *validator.Validate, req *domain.NewSaleRequest) map[string]string {
	req.Customer = strings.TrimSpace(req.Customer)
	req.Model = strings.TrimSpace(req.Model)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	details := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		details["request"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrors {
		msg, exists := validationMessages[fieldErr.Tag()]
		if !exists {
			msg = "valor inválido"
		}
		details[fieldErr.Field()] = msg
	}

	return details
}
