package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
	gstRegex   = regexp.MustCompile(`^[0-9A-Z]{15}$`)
)

// RequireText trims s and checks it is non-empty and at most max runes.
// code becomes the DomainError code, e.g. "INVALID_NAME".
func RequireText(code, field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NewDomainError(code, fmt.Sprintf("%s cannot be empty", field))
	}
	return OptionalText(code, field, s, max)
}

// OptionalText trims s and checks it is at most max runes.
func OptionalText(code, field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if len([]rune(s)) > max {
		return "", NewDomainError(code, fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
	return s, nil
}

// NormalizeEmail lower-cases and validates an optional email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return "", NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

// NormalizePhone validates an optional phone number.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if !phoneRegex.MatchString(phone) {
		return "", NewDomainError("INVALID_PHONE", "Invalid phone number")
	}
	return phone, nil
}

// NormalizeGSTNumber upper-cases and validates an optional 15 character GSTIN.
func NormalizeGSTNumber(gst string) (string, error) {
	gst = strings.ToUpper(strings.TrimSpace(gst))
	if gst == "" {
		return "", nil
	}
	if !gstRegex.MatchString(gst) {
		return "", NewDomainError("INVALID_GST_NUMBER", "GST number must be 15 alphanumeric characters")
	}
	return gst, nil
}
