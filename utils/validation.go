// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Allows + prefix followed by 7-15 digits
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneCleaner.Replace(phone))
}
