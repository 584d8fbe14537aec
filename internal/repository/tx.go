package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txKey struct{}

// Postgres error codes the transaction boundary cares about.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// Transactor runs units of work in a single database transaction,
// serialized per lock key with transaction-scoped advisory locks.
type Transactor struct {
	db         *gorm.DB
	retryDelay time.Duration
	log        *zap.Logger
}

func NewTransactor(db *gorm.DB, retryDelay time.Duration, log *zap.Logger) *Transactor {
	return &Transactor{db: db, retryDelay: retryDelay, log: log}
}

// InTx runs fn inside a transaction after taking an advisory lock for every
// key. A transient failure is retried once; if it persists the error wraps
// domain.ErrServiceUnavailable.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error, lockKeys ...string) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	// Fixed acquisition order keeps multi-key callers from deadlocking each other.
	keys := slices.Clone(lockKeys)
	slices.Sort(keys)

	attempt := 0
	op := func() (struct{}, error) {
		attempt++
		err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, key := range keys {
				if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error; err != nil {
					return fmt.Errorf("acquiring lock %q: %w", key, err)
				}
			}
			return fn(withTx(ctx, tx))
		})
		if err == nil {
			return struct{}{}, nil
		}
		if IsTransient(err) {
			t.log.Warn("transient transaction failure",
				zap.Int("attempt", attempt),
				zap.Strings("lock_keys", keys),
				zap.Error(err),
			)
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(t.retryDelay)),
		backoff.WithMaxTries(2),
	)
	if err != nil && IsTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	return err
}

// IsTransient reports whether err is a lock or serialization failure that
// may succeed on a fresh transaction.
func IsTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
