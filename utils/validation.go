package utils

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"personalsite/apperr"
)

const (
	MaxTaskContent        = 200
	MaxGroceryDescription = 200
	MaxGroceryQuantity    = 50
	MaxCardName           = 40
)

// requiredText trims s and checks it is between 1 and max characters.
func requiredText(field, s string, max int) (string, error) {
	if !utf8.ValidString(s) {
		return "", apperr.Validation("%s is not valid text", field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return "", apperr.Validation("%s must be at most %d characters", field, max)
	}
	return s, nil
}

func ValidateTaskInput(content string) (string, error) {
	return requiredText("content", content, MaxTaskContent)
}

// ValidateGroceryInput checks a grocery form. Quantity is optional.
func ValidateGroceryInput(description, quantity string) (string, string, error) {
	description, err := requiredText("description", description, MaxGroceryDescription)
	if err != nil {
		return "", "", err
	}
	if !utf8.ValidString(quantity) {
		return "", "", apperr.Validation("quantity is not valid text")
	}
	quantity = strings.TrimSpace(quantity)
	if utf8.RuneCountInString(quantity) > MaxGroceryQuantity {
		return "", "", apperr.Validation("quantity must be at most %d characters", MaxGroceryQuantity)
	}
	return description, quantity, nil
}

func ValidateCardName(name string) (string, error) {
	return requiredText("name", name, MaxCardName)
}

// ParseCardQuantity parses a card count, which must be a positive integer
// that fits the INTEGER column.
func ParseCardQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.Validation("quantity is required")
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n <= 0 {
		return 0, apperr.Validation("quantity must be a whole number between 1 and %d", math.MaxInt32)
	}
	return int(n), nil
}
