package models

import "strings"

type Location struct {
	ID          int    `json:"id"`
	PID         int    `json:"pid"`
	Location    string `json:"location"`
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	Zip         string `json:"zip,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Address joins street, house number, zip, city and country, skipping empty parts.
func (l *Location) Address() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{l.Street, l.HouseNumber, l.Zip, l.City, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}
