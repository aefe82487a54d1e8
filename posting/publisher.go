package posting

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/blocks"
	"github.com/iw2rmb/inkwell/internal/log"
)

// ErrUnauthenticated is returned when the token store has no token.
var ErrUnauthenticated = errors.New("not signed in")

// Publisher validates jobs and submits them to a board.
type Publisher struct {
	board  JobBoard
	tokens TokenStore
	wallet WalletProvider
	log    *zap.Logger
}

type Option func(*Publisher)

// WithWallet attaches the poster's wallet address to submissions.
func WithWallet(w WalletProvider) Option {
	return func(p *Publisher) { p.wallet = w }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Publisher) { p.log = log.OrNop(l) }
}

func NewPublisher(board JobBoard, tokens TokenStore, opts ...Option) *Publisher {
	p := &Publisher{board: board, tokens: tokens, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish submits job with its description taken from page, when page is
// not nil. Validation problems are returned before any collaborator is
// called. A board rejection is returned as a *SubmitError.
func (p *Publisher) Publish(ctx context.Context, job Job, page *blocks.Page) (Receipt, error) {
	if page != nil {
		job.Description = page.Markup()
	}
	job = job.Normalized()
	if err := job.Validate(); err != nil {
		return Receipt{}, err
	}

	token, err := p.tokens.Token(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("posting: token: %w", err)
	}
	if token == "" {
		return Receipt{}, ErrUnauthenticated
	}

	sub := Submission{Job: job, Token: token}
	if p.wallet != nil {
		addr, err := p.wallet.Address(ctx)
		if err != nil {
			return Receipt{}, fmt.Errorf("posting: wallet: %w", err)
		}
		sub.Wallet = addr
	}

	rec, err := p.board.Submit(ctx, sub)
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			p.log.Warn("job rejected", zap.String("title", job.Title), zap.Int("status", se.Status), zap.String("code", se.Code))
			return Receipt{}, se
		}
		return Receipt{}, fmt.Errorf("posting: submit: %w", err)
	}
	p.log.Info("job published", zap.String("id", rec.ID), zap.String("title", job.Title))
	return rec, nil
}
