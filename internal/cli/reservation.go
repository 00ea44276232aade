package cli

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesafacil/reservas/internal/api/request"
	"github.com/mesafacil/reservas/internal/api/response"
)

func newReservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservation",
		Aliases: []string{"res"},
		Short:   "Book tables and check availability",
	}

	cmd.AddCommand(newReservationCreateCmd())
	cmd.AddCommand(newReservationVerifyCmd())
	cmd.AddCommand(newReservationAvailabilityCmd())

	return cmd
}

func newReservationCreateCmd() *cobra.Command {
	var (
		name      string
		cpf       string
		phone     string
		partySize int
		date      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateReservationRequest{
				Name:      name,
				TaxID:     cpf,
				Phone:     phone,
				PartySize: jsonNumber(partySize),
				Date:      date,
			}

			var result response.Reservation
			if err := client.Post("/api/reservations", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Guest name")
	cmd.Flags().StringVar(&cpf, "cpf", "", "Guest CPF, with or without punctuation")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone (10 or 11 digits)")
	cmd.Flags().IntVar(&partySize, "party-size", 2, "Number of people")
	cmd.Flags().StringVar(&date, "date", "", "Reservation date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cpf")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newReservationVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <cpf>",
		Short: "Check whether a CPF holds an active reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Verify
			if err := client.Get("/api/reservations/verify/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newReservationAvailabilityCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show remaining tables for a date, or for the next 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if date == "" {
				var result []response.Availability
				if err := client.Get("/api/reservations/availability", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.Availability
			if err := client.Get("/api/reservations/availability?date="+url.QueryEscape(date), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check (YYYY-MM-DD)")

	return cmd
}

func jsonNumber(n int) json.Number {
	return json.Number(strconv.Itoa(n))
}
