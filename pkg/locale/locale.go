// Package locale formata datas e valores monetários para exibição.
// Nenhum cálculo depende destes rótulos.
package locale

import (
	"fmt"
	"time"

	"github.com/goodsign/monday"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dayLabelLayout  = "2 Jan"
	dateLabelLayout = "02 Jan 2006"
)

// Idiomas com nomes de meses suportados
var dateLocales = map[string]monday.Locale{
	"nl": monday.LocaleNlNL,
	"pt": monday.LocalePtBR,
	"en": monday.LocaleEnUS,
}

// Formatter gera rótulos de data e moeda para um idioma
type Formatter struct {
	tag     language.Tag
	dates   monday.Locale
	unit    currency.Unit
	printer *message.Printer
}

// Default usa holandês e euro
var Default = MustNew("nl", "EUR")

// New cria um Formatter para o idioma e a moeda (ISO 4217) informados.
// Idiomas sem nomes de meses suportados caem para inglês.
func New(lang, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("idioma inválido %q: %w", lang, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("moeda inválida %q: %w", currencyCode, err)
	}

	base, _ := tag.Base()
	dates, ok := dateLocales[base.String()]
	if !ok {
		dates = monday.LocaleEnUS
	}

	return &Formatter{
		tag:     tag,
		dates:   dates,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

func MustNew(lang, currencyCode string) *Formatter {
	f, err := New(lang, currencyCode)
	if err != nil {
		panic(err)
	}
	return f
}

// DayLabel retorna o rótulo curto do dia, ex: "3 okt"
func (f *Formatter) DayLabel(t time.Time) string {
	return monday.Format(t, dayLabelLayout, f.dates)
}

// DateLabel retorna o rótulo completo da data, ex: "03 okt 2025"
func (f *Formatter) DateLabel(t time.Time) string {
	return monday.Format(t, dateLabelLayout, f.dates)
}

// Currency formata o valor com o símbolo da moeda no padrão do idioma
func (f *Formatter) Currency(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(value)))
}

func (f *Formatter) Language() string {
	return f.tag.String()
}
