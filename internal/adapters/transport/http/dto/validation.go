package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var separators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")

// E164ish backs the `e164ish` validation tag: an optional leading "+"
// followed by 5-15 digits, with common separator punctuation tolerated.
// Registered on the validator at startup.
func E164ish(fl validator.FieldLevel) bool {
	s := separators.Replace(fl.Field().String())
	s = strings.TrimPrefix(s, "+")
	if len(s) < 5 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
