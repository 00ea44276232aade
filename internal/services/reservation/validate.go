package reservation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mesafacil/reservas/internal/calendar"
	"github.com/mesafacil/reservas/internal/cpf"
	"github.com/mesafacil/reservas/internal/model"
)

const (
	minNameLength  = 3
	maxNameLength  = 100
	minPhoneDigits = 10
	maxPhoneDigits = 11
)

// Normalize trims the free-text fields of a request and strips punctuation from the CPF
func Normalize(in model.NewReservation) model.NewReservation {
	in.Name = strings.TrimSpace(in.Name)
	in.CPF = cpf.Strip(in.CPF)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Date = strings.TrimSpace(in.Date)
	return in
}

// Validate checks every field of a normalized request and reports all failures at once
func Validate(in model.NewReservation, now time.Time) *model.ValidationError {
	verr := &model.ValidationError{}

	nameLen := utf8.RuneCountInString(in.Name)
	switch {
	case nameLen < minNameLength || nameLen > maxNameLength:
		verr.Add("name", "name must be between 3 and 100 characters")
	case !isLettersAndSpaces(in.Name):
		verr.Add("name", "name must contain only letters and spaces")
	}

	switch {
	case in.CPF == "":
		verr.Add("taxId", "taxId is required")
	case !cpf.Validate(in.CPF):
		verr.Add("taxId", "invalid taxId")
	}

	switch {
	case in.Phone == "":
		verr.Add("phone", "phone is required")
	case !isPhone(in.Phone):
		verr.Add("phone", "phone must have 10 or 11 digits")
	}

	if in.PartySize < model.MinPartySize || in.PartySize > model.MaxPartySize {
		verr.Add("partySize", "party size must be between 1 and 4")
	}

	switch {
	case in.Date == "":
		verr.Add("date", "date is required")
	case !calendar.IsValidFutureOrToday(in.Date, now):
		verr.Add("date", "date must be valid and cannot be in the past")
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// isLettersAndSpaces accepts ASCII letters, Latin-1 accented letters and whitespace
func isLettersAndSpaces(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= 0xC0 && r <= 0xFF && r != 0xD7 && r != 0xF7:
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

func isPhone(s string) bool {
	if len(s) < minPhoneDigits || len(s) > maxPhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
