package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleClient }

// Privileged reports whether r is the single elevated role.
func (r Role) Privileged() bool { return r == RoleAdmin }

// privilegedSlot is the only non-NULL value of Account.PrivilegedSlot, so the
// unique index admits at most one privileged account.
const privilegedSlot = "privileged"

type Account struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	Name           string    `gorm:"not null"                    json:"name"`
	Email          string    `gorm:"uniqueIndex;not null"        json:"email"`
	PasswordHash   string    `gorm:"not null"                    json:"-"`
	Role           Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	PrivilegedSlot *string   `gorm:"uniqueIndex"                 json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = RoleClient
	}
	if a.Role.Privileged() {
		slot := privilegedSlot
		a.PrivilegedSlot = &slot
	} else {
		a.PrivilegedSlot = nil
	}
	return nil
}

// Creator is the public projection of an Account attached to permits.
type Creator struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

func (a Account) Public() Creator {
	return Creator{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
