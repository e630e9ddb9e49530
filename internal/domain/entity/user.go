// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the approval lifecycle of an account.
type UserStatus string

const (
	// UserStatusPending means the account awaits admin approval.
	UserStatusPending UserStatus = "pending"
	// UserStatusActive means the account may log in and operate.
	UserStatusActive UserStatus = "active"
	// UserStatusRejected means the registration was declined.
	UserStatusRejected UserStatus = "rejected"
	// UserStatusDisabled means the account was soft-deleted by an admin.
	UserStatusDisabled UserStatus = "disabled"
)

// String returns the string representation of the UserStatus.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusRejected, UserStatusDisabled:
		return true
	default:
		return false
	}
}

// User is the core entity of the system: identity, authorization subject and
// operative delivery profile. The email is the login identifier.
type User struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	FullName      string
	Role          Role
	Status        UserStatus
	Language      Language
	EmailVerified bool

	// Operative profile. All fields are free strings left empty until the
	// customer fills them in; ten of them gate order creation.
	CompanyPhone       string
	DeliveryPhone      string
	FiscalAddress      string
	FiscalCity         string
	FiscalProvince     string
	FiscalPostalCode   string
	Country            string
	DeliveryType       string
	DeliveryAddress    string
	DeliveryCity       string
	DeliveryProvince   string
	DeliveryPostalCode string
	DeliveryWindow     string
	DeliveryNotes      string

	// ProfileCompleted is derived; it is recomputed on every save and must
	// never be set from external input.
	ProfileCompleted bool

	ApprovedBy *uuid.UUID
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// profileField pairs a required operative field accessor with its labels.
type profileField struct {
	value   func(*User) string
	labelES string
	labelZH string
}

// requiredProfileFields lists the ten fields that gate order creation, in the
// order they are reported back to the customer.
var requiredProfileFields = []profileField{
	{func(u *User) string { return u.DeliveryPhone }, "Teléfono de reparto", "配送电话"},
	{func(u *User) string { return u.FiscalAddress }, "Dirección local", "营业地址"},
	{func(u *User) string { return u.FiscalCity }, "Ciudad", "城市"},
	{func(u *User) string { return u.FiscalProvince }, "Provincia", "省份"},
	{func(u *User) string { return u.FiscalPostalCode }, "Código postal", "邮政编码"},
	{func(u *User) string { return u.DeliveryType }, "Tipo de entrega", "配送方式"},
	{func(u *User) string { return u.DeliveryAddress }, "Dirección de entrega", "送货地址"},
	{func(u *User) string { return u.DeliveryCity }, "Ciudad de entrega", "送货城市"},
	{func(u *User) string { return u.DeliveryProvince }, "Provincia de entrega", "送货省份"},
	{func(u *User) string { return u.DeliveryPostalCode }, "Código postal de entrega", "送货邮政编码"},
}

// CheckProfileCompleted reports whether every required operative field is
// non-empty after trimming whitespace.
func (u *User) CheckProfileCompleted() bool {
	for _, field := range requiredProfileFields {
		if strings.TrimSpace(field.value(u)) == "" {
			return false
		}
	}

	return true
}

// RefreshProfileCompleted recomputes the derived ProfileCompleted flag.
// The persistence path calls this on every save.
func (u *User) RefreshProfileCompleted() {
	u.ProfileCompleted = u.CheckProfileCompleted()
}

// MissingProfileFields returns the localized labels of the required operative
// fields that are still empty, in canonical order.
func (u *User) MissingProfileFields(lang Language) []string {
	missing := make([]string, 0, len(requiredProfileFields))
	for _, field := range requiredProfileFields {
		if strings.TrimSpace(field.value(u)) != "" {
			continue
		}
		if lang == LanguageZhHans {
			missing = append(missing, field.labelZH)
		} else {
			missing = append(missing, field.labelES)
		}
	}

	return missing
}

// IsActive reports whether the account may operate on the platform.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
