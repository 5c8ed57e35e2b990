package model

import "time"

const (
	RoleVolunteer = "volunteer"
	RoleDependent = "dependent"
	// RoleAdmin is never assignable through registration; admin accounts
	// are provisioned directly in the database.
	RoleAdmin = "admin"
)

// SystemUserEmail identifies the reserved account that owns tasks created
// through the unauthenticated endpoint. Seeded by migration.
const SystemUserEmail = "system@ablemate.local"

type User struct {
	ID               int64     `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"full_name"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	DOB              string    `db:"dob" json:"dob"`
	Gender           string    `db:"gender" json:"gender"`
	Role             string    `db:"role" json:"role"`
	DisabilityStatus *string   `db:"disability_status" json:"disability_status,omitempty"`
	Experience       *string   `db:"experience" json:"experience,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
