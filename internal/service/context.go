package service

import (
	"context"
	"time"
)

// RequestMeta describes the inbound request for audit records.
type RequestMeta struct {
	IPAddress string
	RequestID string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func RequestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}

// Transactor runs fn atomically, serialized against every other unit of work
// holding any of the same lock keys.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error, lockKeys ...string) error
}

// Clock returns the current instant in the scheduling timezone. "Today" for
// booking and statistics is the calendar date of this instant.
type Clock func() time.Time

func NewClock(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
