package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User representa una cuenta de la tienda (cliente o staff).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | customer
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
