// Package models содержит доменные структуры праздников и стран,
// в том виде, в котором их отдаёт внешнее API Nager.Date.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты во внешнем API
const DateLayout = "2006-01-02"

// Date календарная дата без времени и часового пояса.
type Date struct {
	time.Time
}

// NewDate создаёт дату в UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в формате 2006-01-02.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON кодирует дату строкой 2006-01-02
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON принимает строку 2006-01-02
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("models.Date: %w", err)
	}
	*d = parsed
	return nil
}

// Holiday праздничный день. Используются только Date, LocalName и Name,
// остальные поля передаются дальше без изменений.
type Holiday struct {
	Date        Date     `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties,omitempty"`
	LaunchYear  *int     `json:"launchYear,omitempty"`
	Types       []string `json:"types,omitempty"`
}
