package model

import "time"

// AdminID uniquely identifies an administrator account
type AdminID int64

// AdminAccount is a staff account allowed to view the reporting endpoints
type AdminAccount struct {
	ID           AdminID   `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"` // bcrypt hash
	CreatedAt    time.Time `json:"createdAt"`
}
