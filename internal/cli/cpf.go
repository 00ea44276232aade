package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/mesafacil/reservas/internal/cpf"
)

// CPFCheck is the result of validating a CPF locally
type CPFCheck struct {
	Input     string `json:"input"`
	Formatted string `json:"formatted,omitempty"`
	Valid     bool   `json:"valid"`
}

// CPFList is a batch of generated CPFs
type CPFList struct {
	CPFs []string `json:"cpfs"`
}

func newCPFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpf",
		Short: "Offline CPF helpers",
		// Runs without a server, so no token or client is needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	cmd.AddCommand(newCPFCheckCmd())
	cmd.AddCommand(newCPFGenerateCmd())

	return cmd
}

func newCPFCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <cpf>",
		Short: "Validate a CPF's check digits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := CPFCheck{Input: args[0], Valid: cpf.Validate(args[0])}
			if result.Valid {
				result.Formatted = cpf.Format(args[0])
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			if !result.Valid {
				return fmt.Errorf("invalid CPF: %s", args[0])
			}
			return nil
		},
	}
}

func newCPFGenerateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate valid CPFs for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}

			result := CPFList{CPFs: make([]string, 0, count)}
			for len(result.CPFs) < count {
				digits, err := cpf.CheckDigits(fmt.Sprintf("%09d", rand.IntN(1_000_000_000)))
				if err != nil {
					return err
				}
				if !cpf.Validate(digits) {
					// Repeated-digit bases such as 111111111 are rejected
					continue
				}
				result.CPFs = append(result.CPFs, cpf.Format(digits))
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many CPFs to generate")

	return cmd
}
