package usecase

import "unicode"

const minPasswordLength = 8

// validatePassword checks the fixed strength policy: at least 8 characters
// with at least one letter, one digit and one symbol.
func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
