package posting

import (
	"context"
	"fmt"
	"strings"
)

// Submission is what a JobBoard receives.
type Submission struct {
	Job   Job
	Token string
	// Wallet is the poster's wallet address, empty when no wallet is
	// connected.
	Wallet string
}

// Receipt acknowledges an accepted posting.
type Receipt struct {
	ID      string
	Message string
}

// JobBoard accepts job postings.
type JobBoard interface {
	Submit(ctx context.Context, s Submission) (Receipt, error)
}

// TokenStore returns the session token of the signed-in poster.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
}

// WalletProvider returns the address of a connected wallet.
type WalletProvider interface {
	Address(ctx context.Context) (string, error)
}

// SubmitError is a structured rejection from a JobBoard.
type SubmitError struct {
	Status  int
	Code    string
	Message string
	// Fields maps job fields to the board's complaint about them.
	Fields map[string]string
	Err    error
}

func (e *SubmitError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "submit rejected (%d", e.Status)
	if e.Code != "" {
		sb.WriteString(" " + e.Code)
	}
	sb.WriteString(")")
	if e.Message != "" {
		sb.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Temporary reports whether the board considered the failure transient.
// Publisher never retries; callers may.
func (e *SubmitError) Temporary() bool {
	return e.Status == 429 || e.Status >= 500
}
