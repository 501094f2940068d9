package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultDialCode is the country prefix applied when none is chosen.
const DefaultDialCode = "+1"

// A person notified when the user triggers an SOS.
// Phone is the identity key; it carries its country-code prefix (e.g. "+15551234567").
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidContact)
	}
	if strings.TrimSpace(c.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidContact)
	}
	return nil
}

// Phones returns the recipient list for a dispatch, in contact order.
func Phones(contacts []Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Phone)
	}
	return out
}

// FormatPhone builds a country-code-prefixed number from a dial code such as
// "+91" and free-form user input, keeping only the digits of the input.
func FormatPhone(dialCode, input string) string {
	dialCode = strings.TrimSpace(dialCode)
	if dialCode == "" {
		dialCode = DefaultDialCode
	}
	if !strings.HasPrefix(dialCode, "+") {
		dialCode = "+" + dialCode
	}

	var b strings.Builder
	b.WriteString(dialCode)
	for _, r := range input {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
