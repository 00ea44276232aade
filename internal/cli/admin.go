package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mesafacil/reservas/internal/api/request"
	"github.com/mesafacil/reservas/internal/api/response"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin operations (login, listings, statistics)",
	}

	cmd.AddCommand(newAdminLoginCmd())
	cmd.AddCommand(newAdminReservationsCmd())
	cmd.AddCommand(newAdminStatisticsCmd())

	return cmd
}

func newAdminLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the admin token",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.LoginRequest{
				Username: username,
				Password: password,
			}

			var result response.Login
			if err := client.Post("/api/admin/login", req, &result); err != nil {
				return err
			}

			// Save token for subsequent commands
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			client.SetToken(result.Token)

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAdminReservationsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "reservations",
		Short: "List active reservations, optionally for one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if date == "" {
				var result response.ReservationList
				if err := client.Get("/api/admin/reservations", &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.DateReservations
			if err := client.Get("/api/admin/reservations/"+url.PathEscape(date), &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only list this date (YYYY-MM-DD)")

	return cmd
}

func newAdminStatisticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "statistics",
		Aliases: []string{"stats"},
		Short:   "Show reservation statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Statistics
			if err := client.Get("/api/admin/statistics", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
