// Package layout renders the page shell shared by every dashboard page.
package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData holds the values every page needs
type PageData struct {
	Title    string
	Username string // empty when not logged in
	Flash    *FlashMessage
}

func pageTitle(title string) string {
	if title == "" {
		return "Reservas"
	}
	return title + " | Reservas"
}
