package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
	"github.com/neoyoli49-wq/mybudgetny/internal/notify"
	"github.com/neoyoli49-wq/mybudgetny/internal/store"
)

type recordingNotifier struct {
	events []notify.KeyIssuedMessage
}

func (r *recordingNotifier) PublishKeyIssued(ctx context.Context, email, key string, purpose notify.Purpose) error {
	r.events = append(r.events, notify.KeyIssuedMessage{Email: email, Key: key, Purpose: purpose})
	return nil
}

func (r *recordingNotifier) Close() error { return nil }

// failingStore loads an empty state and refuses every save.
type failingStore struct{}

func (failingStore) Load(ctx context.Context) *core.AppState { return core.NewAppState() }
func (failingStore) Save(ctx context.Context, s *core.AppState) error {
	return errors.New("disk full")
}
func (failingStore) Close() error { return nil }

func newTestManager(t *testing.T) (*Manager, *store.MemoryStore, *recordingNotifier) {
	t.Helper()
	ms := store.NewMemoryStore()
	rn := &recordingNotifier{}
	m := NewManager(ms, rn, log.New(log.DefaultConfig()))
	return m, ms, rn
}

func TestSignupVerifyPasswordLoginFlow(t *testing.T) {
	m, _, rn := newTestManager(t)
	ctx := context.Background()

	key, err := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if len(key) != 4 || key[0] == '0' {
		t.Fatalf("expected 4-digit key in 1000-9999, got %q", key)
	}
	if len(rn.events) != 1 || rn.events[0].Purpose != notify.PurposeSignup || rn.events[0].Key != key {
		t.Fatalf("expected signup key event, got %+v", rn.events)
	}

	// A wrong key fails and mutates nothing.
	wrong := "0000"
	if wrong == key {
		wrong = "0001"
	}
	if err := m.VerifyKey(ctx, "a@x.com", wrong); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if m.state.TempUserEmail != "" {
		t.Fatalf("failed verify must not set TempUserEmail")
	}

	if err := m.VerifyKey(ctx, "a@x.com", key); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := m.CreatePassword(ctx, "pw1"); err != nil {
		t.Fatalf("create password: %v", err)
	}

	// Verification is consumed and the user is auto-logged-in.
	acc := m.state.Account("a@x.com")
	if !acc.IsVerified || acc.VerificationKey != "" {
		t.Fatalf("expected verified account with key cleared, got %+v", acc)
	}
	if m.state.TempUserEmail != "" {
		t.Fatalf("TempUserEmail must be consumed")
	}
	if m.state.CurrentUser != "a@x.com" {
		t.Fatalf("expected auto-login")
	}

	m.Logout(ctx)
	if m.state.CurrentUser != "" {
		t.Fatalf("logout must clear session")
	}

	if err := m.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	profile, err := m.CurrentProfile()
	if err != nil || profile.Email != "a@x.com" || profile.Name != "Ann" {
		t.Fatalf("unexpected profile %+v (err=%v)", profile, err)
	}
}

func TestSignupDuplicatePolicy(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	// An unverified signup may be redone and gets a fresh key.
	key1, err := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	if err != nil {
		t.Fatalf("first signup: %v", err)
	}
	m.newKey = func() string { return "7777" }
	key2, err := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	if err != nil {
		t.Fatalf("retry of abandoned signup should succeed, got %v", err)
	}
	if key2 != "7777" {
		t.Fatalf("expected fresh key on retry, got %q", key2)
	}
	if key1 != key2 {
		if err := m.VerifyKey(ctx, "a@x.com", key1); err != ErrInvalidCredentials {
			t.Fatalf("old key must be invalid after retry, got %v", err)
		}
	}

	// Once verified, the email is taken and the account stays untouched.
	if err := m.VerifyKey(ctx, "a@x.com", key2); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := m.CreatePassword(ctx, "pw1"); err != nil {
		t.Fatalf("create password: %v", err)
	}
	if _, err := m.Signup(ctx, "Bob", "Roy", "a@x.com"); err != ErrDuplicateAccount {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
	acc := m.state.Account("a@x.com")
	if acc.Name != "Ann" || acc.Password == nil || *acc.Password != "pw1" {
		t.Fatalf("duplicate signup must leave the first account unchanged: %+v", acc)
	}
}

func TestSignupValidation(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	cases := []struct {
		name, surname, email string
		want                 error
	}{
		{"", "Lee", "a@x.com", core.ErrEmptyName},
		{"Ann", "", "a@x.com", core.ErrEmptySurname},
		{"Ann", "Lee", "", core.ErrEmptyEmail},
		{"Ann", "Lee", "no-at-sign", core.ErrInvalidEmail},
	}
	for i, tc := range cases {
		if _, err := m.Signup(ctx, tc.name, tc.surname, tc.email); err != tc.want {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestCreatePasswordWithoutPendingVerification(t *testing.T) {
	m, _, _ := newTestManager(t)
	if err := m.CreatePassword(context.Background(), "pw1"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if err := m.CreatePassword(context.Background(), ""); err != core.ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	key, _ := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	_ = m.VerifyKey(ctx, "a@x.com", key)
	_ = m.CreatePassword(ctx, "pw1")
	m.Logout(ctx)

	badPassword := m.Login(ctx, "a@x.com", "nope")
	unknownEmail := m.Login(ctx, "ghost@x.com", "pw1")
	if badPassword != ErrInvalidCredentials || unknownEmail != ErrInvalidCredentials {
		t.Fatalf("expected identical failures, got %v / %v", badPassword, unknownEmail)
	}
	if badPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages must not reveal whether the email exists")
	}
}

func TestForgotPasswordFlow(t *testing.T) {
	m, _, rn := newTestManager(t)
	ctx := context.Background()

	if _, err := m.ForgotPassword(ctx, "ghost@x.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	key, _ := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	_ = m.VerifyKey(ctx, "a@x.com", key)
	_ = m.CreatePassword(ctx, "pw1")
	m.Logout(ctx)

	resetKey, err := m.ForgotPassword(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	last := rn.events[len(rn.events)-1]
	if last.Purpose != notify.PurposeReset || last.Key != resetKey {
		t.Fatalf("expected reset key event, got %+v", last)
	}

	// Reset reuses the same verify + create-password path.
	if err := m.VerifyKey(ctx, "a@x.com", resetKey); err != nil {
		t.Fatalf("verify reset key: %v", err)
	}
	if err := m.CreatePassword(ctx, "pw2"); err != nil {
		t.Fatalf("create new password: %v", err)
	}
	m.Logout(ctx)
	if err := m.Login(ctx, "a@x.com", "pw1"); err != ErrInvalidCredentials {
		t.Fatalf("old password must no longer work")
	}
	if err := m.Login(ctx, "a@x.com", "pw2"); err != nil {
		t.Fatalf("new password login: %v", err)
	}
}

func TestProfileUpdates(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	if err := m.UpdateAddress(ctx, "somewhere"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired without login, got %v", err)
	}
	if err := m.ChangePassword(ctx, "a", "b"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired without login, got %v", err)
	}

	key, _ := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	_ = m.VerifyKey(ctx, "a@x.com", key)
	_ = m.CreatePassword(ctx, "pw1")

	if err := m.UpdateAddress(ctx, "  12 Main Rd  "); err != nil {
		t.Fatalf("update address: %v", err)
	}
	profile, _ := m.CurrentProfile()
	if profile.Address != "12 Main Rd" {
		t.Fatalf("unexpected address %q", profile.Address)
	}

	if err := m.ChangePassword(ctx, "wrong", "pw2"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}
	if err := m.ChangePassword(ctx, "pw1", ""); err != core.ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if err := m.ChangePassword(ctx, "pw1", "pw2"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	m.Logout(ctx)
	if err := m.Login(ctx, "a@x.com", "pw2"); err != nil {
		t.Fatalf("login with changed password: %v", err)
	}
}

func TestTransactions(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.AddTransaction(ctx, core.Money{Cents: 100}, core.Expense, "food"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired without login, got %v", err)
	}

	key, _ := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	_ = m.VerifyKey(ctx, "a@x.com", key)
	_ = m.CreatePassword(ctx, "pw1")

	if _, err := m.AddTransaction(ctx, core.Money{Cents: 0}, core.Expense, "food"); err != core.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := m.AddTransaction(ctx, core.Money{Cents: 100}, "transfer", ""); err != core.ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	first, err := m.AddTransaction(ctx, core.Money{Cents: 50000}, core.Income, "salary")
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	second, err := m.AddTransaction(ctx, core.Money{Cents: 20000}, core.Expense, "food")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}

	txs, err := m.Transactions()
	if err != nil || len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d (err=%v)", len(txs), err)
	}
	if txs[0].ID != first.ID || txs[1].ID != second.ID {
		t.Fatalf("entry order must be preserved")
	}

	if err := m.DeleteTransaction(ctx, "no-such-id"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.DeleteTransaction(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	txs, _ = m.Transactions()
	if len(txs) != 1 || txs[0].ID != second.ID {
		t.Fatalf("unexpected transactions after delete: %+v", txs)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	ms := store.NewMemoryStore()
	logger := log.New(log.DefaultConfig())
	ctx := context.Background()

	m := NewManager(ms, nil, logger)
	key, _ := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	_ = m.VerifyKey(ctx, "a@x.com", key)
	_ = m.CreatePassword(ctx, "pw1")
	if _, err := m.AddTransaction(ctx, core.Money{Cents: 100}, core.Expense, "food"); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A new manager over the same store picks up the persisted session.
	m2 := NewManager(ms, nil, logger)
	txs, err := m2.Transactions()
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected persisted transaction, got %d (err=%v)", len(txs), err)
	}
	if err := m2.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login after restart: %v", err)
	}
}

func TestSaveFailureIsMasked(t *testing.T) {
	m := NewManager(failingStore{}, nil, log.New(log.DefaultConfig()))
	ctx := context.Background()

	key, err := m.Signup(ctx, "Ann", "Lee", "a@x.com")
	if err != nil {
		t.Fatalf("signup must succeed despite save failure, got %v", err)
	}
	if err := m.VerifyKey(ctx, "a@x.com", key); err != nil {
		t.Fatalf("verify must succeed despite save failure, got %v", err)
	}
	if err := m.CreatePassword(ctx, "pw1"); err != nil {
		t.Fatalf("create password must succeed despite save failure, got %v", err)
	}
	// In-memory state is still the source of truth.
	if err := m.Login(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("login against in-memory state: %v", err)
	}
}

func TestVerificationKeyRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		key := newVerificationKey()
		if len(key) != 4 || key < "1000" || key > "9999" {
			t.Fatalf("key out of range: %q", key)
		}
	}
}
