package domain

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleOperator UserRole = "OPERATOR"
)

// User is a backoffice account. It exists to supply an actor identity for
// audit records and role pre-checks; the ledger itself never authorizes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
}
