package models

import (
	"fmt"
	"strings"
)

// UserCategory distinguishes individual users from business users.
type UserCategory string

const (
	CategoryIndividual UserCategory = "individual"
	CategoryBusiness   UserCategory = "business"
)

// Valid reports whether c is one of the known categories.
func (c UserCategory) Valid() bool {
	return c == CategoryIndividual || c == CategoryBusiness
}

// IsBusiness reports whether c grants access to business-only features.
func (c UserCategory) IsBusiness() bool {
	return c == CategoryBusiness
}

// ParseUserCategory reads the category chosen on the auth form, case-insensitively. "company" is
// accepted as an alias for business, matching the COMPANY user type of the category picker.
func ParseUserCategory(s string) (UserCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual":
		return CategoryIndividual, nil
	case "business", "company":
		return CategoryBusiness, nil
	}
	return "", fmt.Errorf("unknown user category %q", s)
}
