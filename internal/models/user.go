package models

// Auth providers for customer accounts.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents a customer account. PasswordHash is empty for accounts
// created through Google sign-in.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
	Provider     string `json:"provider"`
	GoogleID     string `json:"google_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// Column indexes for the Users sheet (range Users!A2:G).
const (
	UserColID = iota
	UserColName
	UserColEmail
	UserColPasswordHash
	UserColProvider
	UserColGoogleID
	UserColCreatedAt
	UserColumnCount
)
