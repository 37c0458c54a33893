package utils

import (
	"errors"
	"strings"
)

// ErrEmptyPhone is returned when a send is attempted with no phone number.
var ErrEmptyPhone = errors.New("phone number is required")

// FormatPhoneNumber normalizes a phone number to E.164 form.
//
// Rules, in order:
//   - a number already prefixed with "+" passes through unchanged;
//   - all non-digit characters are stripped;
//   - more than 10 digits not starting with "0" is assumed to already carry a
//     country code and gets a "+" prefix;
//   - a leading "0" is replaced with the default country code;
//   - anything else gets the default country code prepended.
func FormatPhoneNumber(phone, countryCode string) (string, error) {
	cleaned := strings.TrimSpace(phone)
	if cleaned == "" {
		return "", ErrEmptyPhone
	}

	if strings.HasPrefix(cleaned, "+") {
		return cleaned, nil
	}

	var digits strings.Builder
	for _, r := range cleaned {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	num := digits.String()
	if num == "" {
		return "", ErrEmptyPhone
	}

	if len(num) > 10 && !strings.HasPrefix(num, "0") {
		return "+" + num, nil
	}

	if strings.HasPrefix(num, "0") {
		return "+" + countryCode + num[1:], nil
	}

	return "+" + countryCode + num, nil
}
