package testutil

import (
	"fmt"

	"github.com/mesafacil/reservas/internal/cpf"
)

// ValidCPF returns a distinct checksum-valid CPF for each n
func ValidCPF(n int) string {
	base := fmt.Sprintf("%09d", 100000000+n*7919)
	full, err := cpf.CheckDigits(base)
	if err != nil {
		panic(err)
	}
	return full
}
