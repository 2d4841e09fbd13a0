package order

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength    = 2
	minPhoneLength   = 10
	minAddressLength = 10
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email has the local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the form field by field. The result is empty when the form
// can be submitted; otherwise the first entry is the one shown to the shopper.
func Validate(f Form) ValidationErrors {
	var errs ValidationErrors

	if utf8.RuneCountInString(strings.TrimSpace(f.Name)) < minNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "يرجى إدخال اسم صحيح"})
	}
	if !IsValidEmail(f.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "يرجى إدخال بريد إلكتروني صحيح"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Phone)) < minPhoneLength {
		errs = append(errs, FieldError{Field: "phone", Message: "يرجى إدخال رقم هاتف صحيح"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Address)) < minAddressLength {
		errs = append(errs, FieldError{Field: "address", Message: "يرجى إدخال عنوان كامل"})
	}
	if strings.TrimSpace(f.City) == "" {
		errs = append(errs, FieldError{Field: "city", Message: "يرجى اختيار المدينة"})
	}
	if !f.AcceptTerms {
		errs = append(errs, FieldError{Field: "accept_terms", Message: "يرجى الموافقة على الشروط والأحكام"})
	}

	return errs
}
