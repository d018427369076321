package repository

import "time"

// Role values mirror the household hierarchy: the software owner, the head
// of the household, and regular members.
const (
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleMember      = "MEMBER"
)

// Plan values for the subscription tier.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Expense status values.
const (
	StatusPaid      = "paid"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Categories is the closed set of expense categories.
var Categories = []string{
	"Mercado",
	"Lazer",
	"Contas Fixas",
	"Transporte",
	"Saúde",
	"Educação",
	"Investimentos",
	"Outros",
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known expense status.
func ValidStatus(s string) bool {
	return s == StatusPaid || s == StatusPending || s == StatusCancelled
}

// User represents a household account row. PasswordHash never leaves the
// repository layer as plaintext.
type User struct {
	ID           string
	Name         string
	Email        string
	CPF          string
	PasswordHash string
	Avatar       string
	Role         string
	Plan         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries a partial user update; nil fields are left untouched.
// The id is never updatable.
type UserUpdate struct {
	Name   *string
	Email  *string
	CPF    *string
	Avatar *string
	Plan   *string
}

// Expense represents an expense row. Date is a calendar date in ISO form
// (yyyy-mm-dd); amounts are held in cents.
type Expense struct {
	ID             string
	UserID         string
	AmountCents    int64
	Description    string
	Location       string
	Category       string
	Date           string
	Status         string
	Notes          *string
	AttachmentName *string
	AttachmentData *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpenseUpdate carries a partial expense update; nil fields are left
// untouched.
type ExpenseUpdate struct {
	AmountCents *int64
	Description *string
	Location    *string
	Category    *string
	Date        *string
	Status      *string
	Notes       *string
}

// Budget maps a category to its monthly limit.
type Budget struct {
	Category   string
	LimitCents int64
}
