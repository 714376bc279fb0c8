package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ValidateContactPhone checks that a contact phone number parses as a
// valid number. Numbers without a country prefix are assumed Brazilian.
func ValidateContactPhone(contact string) error {
	clean := strings.TrimSpace(contact)
	if clean == "" {
		return fmt.Errorf("contact phone is empty")
	}

	if !strings.HasPrefix(clean, "+") {
		if strings.HasPrefix(clean, "55") {
			clean = "+" + clean
		} else {
			clean = "+55" + clean
		}
	}

	num, err := phonenumbers.Parse(clean, "")
	if err != nil {
		return fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("invalid phone number: %s", contact)
	}

	return nil
}

// FormatContactPhone normalizes a contact phone to E.164, assuming
// Brazil when no country prefix is present.
func FormatContactPhone(contact string) (string, error) {
	clean := strings.TrimSpace(contact)
	if !strings.HasPrefix(clean, "+") {
		if strings.HasPrefix(clean, "55") {
			clean = "+" + clean
		} else {
			clean = "+55" + clean
		}
	}

	num, err := phonenumbers.Parse(clean, "")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", contact)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
