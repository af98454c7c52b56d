package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/events"
	"storefront-api/store"
)

type Options struct {
	// DecrementStock makes checkout consume product stock in the order transaction.
	DecrementStock bool
}

type Service struct {
	store     store.Store
	passwords *auth.Passwords
	tokens    *auth.Tokens
	events    events.Publisher
	logger    *zap.Logger
	opts      Options
	now       func() time.Time
}

func NewService(s store.Store, passwords *auth.Passwords, tokens *auth.Tokens, pub events.Publisher, logger *zap.Logger, opts Options) *Service {
	if pub == nil {
		pub = events.Discard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     s,
		passwords: passwords,
		tokens:    tokens,
		events:    pub,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *Service) Healthy(ctx context.Context) error {
	return s.store.Ping(ctx)
}
