package request

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mesafacil/reservas/internal/model"
)

// CreateReservationRequest is the request body for booking a table.
// PartySize accepts a JSON number or a numeric string. CPF is an older name for TaxID.
type CreateReservationRequest struct {
	Name      string      `json:"name"`
	TaxID     string      `json:"taxId"`
	CPF       string      `json:"cpf,omitempty"`
	Phone     string      `json:"phone"`
	PartySize json.Number `json:"partySize"`
	Date      string      `json:"date"`
}

// ToModel converts the request. A party size that is not a whole number becomes 0,
// which validation then rejects.
func (r CreateReservationRequest) ToModel() model.NewReservation {
	taxID := r.TaxID
	if taxID == "" {
		taxID = r.CPF
	}
	return model.NewReservation{
		Name:      r.Name,
		CPF:       taxID,
		Phone:     r.Phone,
		PartySize: wholeNumber(r.PartySize),
		Date:      r.Date,
	}
}

// wholeNumber accepts 2, "2" and 2.0 alike
func wholeNumber(n json.Number) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MinPasswordLength is the shortest password accepted by the login endpoint
const MinPasswordLength = 6

// Validate checks that both fields are present
func (r LoginRequest) Validate() *model.ValidationError {
	verr := &model.ValidationError{}
	if r.Username == "" {
		verr.Add("username", "username is required")
	}
	if len(r.Password) < MinPasswordLength {
		verr.Add("password", "password must be at least 6 characters")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
