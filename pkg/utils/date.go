package utils

import "time"

// ParseDate interpreta uma data "YYYY-MM-DD" no fuso informado.
// String vazia retorna nil sem erro.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(time.DateOnly, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// StartOfDay retorna a meia-noite do dia de t no fuso de t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
