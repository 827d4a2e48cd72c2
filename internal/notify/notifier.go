// Package notify publishes verification-key events. There is no real email
// delivery in this application; the published event is the mock stand-in for
// "a key has been sent to <email>".
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Purpose says why a verification key was issued.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeReset  Purpose = "password_reset"
)

// Publisher delivers key-issued events. Implementations must be safe to call
// after persistence has already succeeded: a publish failure is logged by the
// caller and never fails the originating operation.
type Publisher interface {
	PublishKeyIssued(ctx context.Context, email, key string, purpose Purpose) error
	Close() error
}

// KeyIssuedMessage is the wire format for a verification-key event.
type KeyIssuedMessage struct {
	Email     string    `json:"email"`
	Key       string    `json:"key"`
	Purpose   Purpose   `json:"purpose"`
	Timestamp time.Time `json:"timestamp"`
}

func NewKeyIssuedMessage(email, key string, purpose Purpose) *KeyIssuedMessage {
	return &KeyIssuedMessage{
		Email:     email,
		Key:       key,
		Purpose:   purpose,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *KeyIssuedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// KeyIssuedMessageFromJSON creates a message from JSON bytes
func KeyIssuedMessageFromJSON(data []byte) (*KeyIssuedMessage, error) {
	var msg KeyIssuedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) PublishKeyIssued(ctx context.Context, email, key string, purpose Purpose) error {
	return nil
}

func (Noop) Close() error { return nil }
