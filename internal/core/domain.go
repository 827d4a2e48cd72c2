package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single dated income or expense entry owned by one
	// account. Date is an ISO-like timestamp string (YYYY-MM-DD...) so that
	// month grouping works by lexicographic prefix match.
	Transaction struct {
		ID       string          `json:"id"`
		Amount   Money           `json:"amount"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category,omitempty"`
		Date     string          `json:"date"`
	}

	// Account is one registered user keyed by email. Password stays nil and
	// IsVerified false until the verification flow completes. VerificationKey
	// is present only while a signup or password reset is pending.
	Account struct {
		Name            string        `json:"name"`
		Surname         string        `json:"surname"`
		Email           string        `json:"email"`
		Password        *string       `json:"password"`
		Address         string        `json:"address"`
		Transactions    []Transaction `json:"transactions"`
		IsVerified      bool          `json:"isVerified"`
		VerificationKey string        `json:"verificationKey,omitempty"`
	}

	// AppState is the whole persisted application state: the user directory
	// plus the current-session pointer and the transient email held between
	// key verification and password creation.
	//
	// Invariants: CurrentUser and TempUserEmail, when set, name keys of
	// Users; IsVerified implies Password set and VerificationKey empty.
	AppState struct {
		Users         map[string]*Account `json:"users"`
		CurrentUser   string              `json:"currentUser,omitempty"`
		TempUserEmail string              `json:"tempUserEmail,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty name")
	ErrEmptySurname  = errors.New("empty surname")
	ErrEmptyEmail    = errors.New("empty email")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrEmptyPassword = errors.New("empty password")
)

// NewAppState returns the empty default state used when nothing has been
// persisted yet, or when the persisted blob cannot be parsed.
func NewAppState() *AppState {
	return &AppState{Users: make(map[string]*Account)}
}

// Account returns the account for email, or nil.
func (s *AppState) Account(email string) *Account {
	return s.Users[email]
}

// Current returns the logged-in account, or nil when no session is active.
func (s *AppState) Current() *Account {
	if s.CurrentUser == "" {
		return nil
	}
	return s.Users[s.CurrentUser]
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

// NewTransaction builds a transaction dated now with a fresh unique ID.
func NewTransaction(amount Money, typ TransactionType, category string) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Amount:   amount,
		Type:     typ,
		Category: strings.TrimSpace(category),
		Date:     time.Now().UTC().Format(time.RFC3339),
	}
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	// Needs at least a YYYY-MM prefix for month grouping.
	if len(t.Date) < 7 || t.Date[4] != '-' {
		return ErrInvalidDate
	}
	return nil
}

// ValidateSignup checks the fields collected at signup time. Email gets only
// a shape check; it is an opaque case-sensitive key, not a deliverable
// address.
func (a Account) ValidateSignup() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(a.Surname) == "" {
		return ErrEmptySurname
	}
	email := strings.TrimSpace(a.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}
	return nil
}
