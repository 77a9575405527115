// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var cnpjDigits = regexp.MustCompile(`\D`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateCNPJ checks length only; registry digits are verified upstream.
// Empty is allowed, the field is optional on clients and branches.
func ValidateCNPJ(cnpj string) bool {
	if cnpj == "" {
		return true
	}
	return len(cnpjDigits.ReplaceAllString(cnpj, "")) == 14
}

// Slugify builds URL slugs for clients, offices, projects and collaborators.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
