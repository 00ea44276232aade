package redis

import (
	"fmt"

	"github.com/mesafacil/reservas/internal/model"
)

// keys builds Redis keys under a configurable prefix
type keys struct {
	prefix string
}

// reservations returns the key of the LIST holding every reservation as JSON
func (k keys) reservations() string {
	return fmt.Sprintf("%s:reservations", k.prefix)
}

// admin returns the key for an AdminAccount
func (k keys) admin(id model.AdminID) string {
	return fmt.Sprintf("%s:admin:%d", k.prefix, id)
}

// adminIDs returns the key of the SET of known admin ids
func (k keys) adminIDs() string {
	return fmt.Sprintf("%s:idx:admins", k.prefix)
}

// usernameIndex returns the key for the username -> admin id index
func (k keys) usernameIndex(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", k.prefix, username)
}
