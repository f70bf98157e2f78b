package models

// Country элемент ответа AvailableCountries
type Country struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

// CountryOption вариант в списке выбора страны
type CountryOption struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}
