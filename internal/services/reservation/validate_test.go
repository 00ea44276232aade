package reservation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/testutil"
)

func TestValidateFields(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	valid := model.NewReservation{
		Name:      "Joao Silva",
		CPF:       testutil.ValidCPF(1),
		Phone:     "11987654321",
		PartySize: 2,
		Date:      "2024-01-11",
	}

	tests := []struct {
		name   string
		mutate func(*model.NewReservation)
		field  string
	}{
		{"valid", func(*model.NewReservation) {}, ""},
		{"accented name", func(r *model.NewReservation) { r.Name = "João Conceição" }, ""},
		{"ten digit phone", func(r *model.NewReservation) { r.Phone = "1133334444" }, ""},
		{"party of one", func(r *model.NewReservation) { r.PartySize = 1 }, ""},
		{"party of four", func(r *model.NewReservation) { r.PartySize = 4 }, ""},
		{"name too short", func(r *model.NewReservation) { r.Name = "Jo" }, "name"},
		{"name too long", func(r *model.NewReservation) { r.Name = strings.Repeat("a", 101) }, "name"},
		{"name with digits", func(r *model.NewReservation) { r.Name = "Joao 2" }, "name"},
		{"name with punctuation", func(r *model.NewReservation) { r.Name = "Joao-Silva" }, "name"},
		{"missing cpf", func(r *model.NewReservation) { r.CPF = "" }, "taxId"},
		{"bad checksum", func(r *model.NewReservation) { r.CPF = "52998224724" }, "taxId"},
		{"missing phone", func(r *model.NewReservation) { r.Phone = "" }, "phone"},
		{"short phone", func(r *model.NewReservation) { r.Phone = "119876543" }, "phone"},
		{"long phone", func(r *model.NewReservation) { r.Phone = "119876543210" }, "phone"},
		{"formatted phone", func(r *model.NewReservation) { r.Phone = "(11)98765-4321" }, "phone"},
		{"empty party", func(r *model.NewReservation) { r.PartySize = 0 }, "partySize"},
		{"party too large", func(r *model.NewReservation) { r.PartySize = 5 }, "partySize"},
		{"missing date", func(r *model.NewReservation) { r.Date = "" }, "date"},
		{"past date", func(r *model.NewReservation) { r.Date = "2024-01-09" }, "date"},
		{"impossible date", func(r *model.NewReservation) { r.Date = "2024-02-30" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			verr := Validate(Normalize(in), now)
			if tt.field == "" {
				assert.Nil(t, verr)
				return
			}
			if assert.NotNil(t, verr) {
				assert.Len(t, verr.Errors, 1)
				assert.Equal(t, tt.field, verr.Errors[0].Field)
			}
		})
	}
}
