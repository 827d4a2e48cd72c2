// Package accounts owns the user directory and the current-session pointer.
// Every mutating operation writes the state through the store at the end;
// a failed save is logged and the in-memory state stays authoritative for
// the rest of the session.
package accounts

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
	"github.com/neoyoli49-wq/mybudgetny/internal/notify"
	"github.com/neoyoli49-wq/mybudgetny/internal/store"
)

var (
	// ErrDuplicateAccount: signup for an email that already has a verified
	// account. An abandoned unverified signup may be redone.
	ErrDuplicateAccount = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers bad login, bad verification key, and bad
	// old password. The message deliberately does not say whether the email
	// exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound: unknown email on password reset, or unknown transaction id.
	ErrNotFound = errors.New("not found")

	// ErrSessionExpired: an operation that needs a pending verification or an
	// active login was called without one.
	ErrSessionExpired = errors.New("session expired")
)

// Profile is the view of the logged-in account handed to the presentation
// layer. Credentials stay internal.
type Profile struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IsVerified bool   `json:"isVerified"`
}

// Manager drives the account lifecycle (signup, verification, password
// creation, login, profile updates) and the current user's transaction list
// over a single application state.
//
// The domain itself is single-writer, but HTTP handlers run on separate
// goroutines, so all state access goes through one mutex.
type Manager struct {
	mu       sync.Mutex
	state    *core.AppState
	store    store.Store
	notifier notify.Publisher
	logger   *log.Logger

	// newKey is swapped in tests for a deterministic key.
	newKey func() string
}

func NewManager(st store.Store, notifier notify.Publisher, logger *log.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Manager{
		state:    st.Load(context.Background()),
		store:    st,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentAccounts),
		newKey:   newVerificationKey,
	}
}

// newVerificationKey returns a uniformly random 4-digit decimal string in
// 1000-9999. It stands in for an emailed proof-of-ownership code and carries
// no security claim.
func newVerificationKey() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// persist saves the state and logs (but swallows) failures: the in-memory
// state remains the source of truth.
func (m *Manager) persist(ctx context.Context, op string) {
	if err := m.store.Save(ctx, m.state); err != nil {
		m.logger.ErrorContext(ctx, "Failed to persist state",
			log.FieldError, err, log.FieldOperation, op)
	}
}

// Signup registers a new account in the unverified state and returns the
// issued verification key. A verified account with the same email rejects
// the signup; an abandoned unverified one is replaced with a fresh record so
// the user can recover.
func (m *Manager) Signup(ctx context.Context, name, surname, email string) (string, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	email = strings.TrimSpace(email)

	acc := core.Account{Name: name, Surname: surname, Email: email}
	if err := acc.ValidateSignup(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.state.Account(email); existing != nil && existing.IsVerified {
		return "", ErrDuplicateAccount
	}

	key := m.newKey()
	m.state.Users[email] = &core.Account{
		Name:            name,
		Surname:         surname,
		Email:           email,
		Address:         "",
		Transactions:    []core.Transaction{},
		IsVerified:      false,
		VerificationKey: key,
	}
	m.persist(ctx, log.OpSignup)
	m.notifyKey(ctx, email, key, notify.PurposeSignup)

	m.logger.InfoContext(ctx, "Account created, verification pending",
		log.FieldEmail, email, log.FieldOperation, log.OpSignup)
	return key, nil
}

// VerifyKey checks the supplied key against the stored one (exact string
// match) and on success marks the email as mid-verification. The key is not
// cleared here; CreatePassword consumes it. Failure mutates nothing.
func (m *Manager) VerifyKey(ctx context.Context, email, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Account(email)
	if acc == nil || acc.VerificationKey == "" || acc.VerificationKey != key {
		return ErrInvalidCredentials
	}

	m.state.TempUserEmail = email
	m.persist(ctx, log.OpVerify)
	return nil
}

// CreatePassword finishes verification: it sets the password, marks the
// account verified, consumes the verification key and the pending email, and
// logs the user in.
func (m *Manager) CreatePassword(ctx context.Context, password string) error {
	if password == "" {
		return core.ErrEmptyPassword
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email := m.state.TempUserEmail
	if email == "" {
		return ErrSessionExpired
	}
	acc := m.state.Account(email)
	if acc == nil {
		return ErrSessionExpired
	}

	pw := password
	acc.Password = &pw
	acc.IsVerified = true
	acc.VerificationKey = ""
	m.state.TempUserEmail = ""
	m.state.CurrentUser = email
	m.persist(ctx, log.OpCreatePassword)

	m.logger.InfoContext(ctx, "Password set, account verified and logged in",
		log.FieldEmail, email, log.FieldOperation, log.OpCreatePassword)
	return nil
}

// Login starts a session for the account iff the password matches exactly.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Account(email)
	if acc == nil || acc.Password == nil || *acc.Password != password {
		return ErrInvalidCredentials
	}

	m.state.CurrentUser = email
	m.persist(ctx, log.OpLogin)

	m.logger.InfoContext(ctx, "User logged in",
		log.FieldEmail, email, log.FieldOperation, log.OpLogin)
	return nil
}

// Logout clears the current session.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.CurrentUser = ""
	m.persist(ctx, log.OpLogout)
}

// ForgotPassword issues a reset key for an existing account and routes it
// through the same key-verification path as signup.
func (m *Manager) ForgotPassword(ctx context.Context, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Account(email)
	if acc == nil {
		return "", ErrNotFound
	}

	key := m.newKey()
	acc.VerificationKey = key
	m.state.TempUserEmail = email
	m.persist(ctx, log.OpReset)
	m.notifyKey(ctx, email, key, notify.PurposeReset)

	m.logger.InfoContext(ctx, "Password reset key issued",
		log.FieldEmail, email, log.FieldOperation, log.OpReset)
	return key, nil
}

// UpdateAddress sets the free-text address on the logged-in account.
func (m *Manager) UpdateAddress(ctx context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return ErrSessionExpired
	}

	acc.Address = strings.TrimSpace(address)
	m.persist(ctx, log.OpUpdateAddress)
	return nil
}

// ChangePassword replaces the password after checking the old one.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if newPassword == "" {
		return core.ErrEmptyPassword
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return ErrSessionExpired
	}
	if acc.Password == nil || *acc.Password != oldPassword {
		return ErrInvalidCredentials
	}

	pw := newPassword
	acc.Password = &pw
	m.persist(ctx, log.OpChangePassword)

	m.logger.InfoContext(ctx, "Password changed",
		log.FieldEmail, acc.Email, log.FieldOperation, log.OpChangePassword)
	return nil
}

// CurrentProfile returns the logged-in account's profile.
func (m *Manager) CurrentProfile() (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := m.state.Current()
	if acc == nil {
		return Profile{}, ErrSessionExpired
	}
	return Profile{
		Name:       acc.Name,
		Surname:    acc.Surname,
		Email:      acc.Email,
		Address:    acc.Address,
		IsVerified: acc.IsVerified,
	}, nil
}

func (m *Manager) notifyKey(ctx context.Context, email, key string, purpose notify.Purpose) {
	if err := m.notifier.PublishKeyIssued(ctx, email, key, purpose); err != nil {
		// The key is already persisted; delivery is best-effort.
		m.logger.WarnContext(ctx, "Failed to publish key-issued event",
			log.FieldError, err, log.FieldEmail, email, log.FieldPurpose, string(purpose))
	}
}
