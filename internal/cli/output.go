package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesafacil/reservas/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Reservation:
		o.printReservation(v)
	case response.Verify:
		o.printVerify(v)
	case response.Availability:
		o.printAvailability(v)
	case []response.Availability:
		for _, day := range v {
			o.printAvailability(day)
		}
	case response.Login:
		o.printLogin(v)
	case response.ReservationList:
		fmt.Printf("Active reservations: %d\n", v.Total)
		o.printReservationRows(v.Reservations)
	case response.DateReservations:
		fmt.Printf("Reservations on %s: %d\n", v.Date, v.Total)
		o.printReservationRows(v.Reservations)
	case response.Statistics:
		o.printStatistics(v)
	case response.Health:
		fmt.Printf("Status: %s\n", v.Status)
	case CPFCheck:
		if v.Valid {
			fmt.Printf("%s is valid\n", v.Formatted)
		} else {
			fmt.Printf("%s is not a valid CPF\n", v.Input)
		}
	case CPFList:
		for _, c := range v.CPFs {
			fmt.Println(c)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printReservation(r response.Reservation) {
	fmt.Printf("Reservation #%d\n", r.ID)
	fmt.Printf("Name: %s\n", r.Name)
	fmt.Printf("CPF: %s\n", r.TaxID)
	fmt.Printf("Phone: %s\n", r.Phone)
	fmt.Printf("Party Size: %d\n", r.PartySize)
	fmt.Printf("Date: %s\n", r.Date)
}

func (o *Output) printVerify(v response.Verify) {
	if !v.HasActive || v.Reservation == nil {
		fmt.Println("No active reservation")
		return
	}
	fmt.Println("Active reservation found")
	o.printReservation(*v.Reservation)
}

func (o *Output) printAvailability(a response.Availability) {
	status := "available"
	if !a.Available {
		status = "full"
	}
	fmt.Printf("%s: %d booked, %d remaining (%s)\n", a.Date, a.Existing, a.Remaining, status)
}

func (o *Output) printLogin(l response.Login) {
	fmt.Printf("Logged in as %s\n", l.Admin.Username)
	fmt.Printf("Token expires: %s\n", l.ExpiresAt.Format("02/01/2006 15:04"))
}

func (o *Output) printReservationRows(rs []response.Reservation) {
	for _, r := range rs {
		fmt.Printf("  #%d  %s  %-30s  %s  %s  %d\n", r.ID, r.Date, r.Name, r.TaxID, r.Phone, r.PartySize)
	}
}

func (o *Output) printStatistics(s response.Statistics) {
	fmt.Printf("Active reservations: %d\n", s.TotalActive)
	fmt.Printf("Reservations today: %d\n", s.CountToday)

	if len(s.BusiestDates) > 0 {
		fmt.Println("\nBusiest dates:")
		for _, d := range s.BusiestDates {
			fmt.Printf("  %s: %d\n", d.Date, d.Total)
		}
	}

	if len(s.UpcomingDates) > 0 {
		fmt.Println("\nUpcoming dates:")
		for _, d := range s.UpcomingDates {
			fmt.Printf("  %s: %d\n", d.Date, d.Total)
		}
	}
}
