package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
	"github.com/rafaelleal24/stock-control/internal/core/serviceerrors"
	"github.com/rafaelleal24/stock-control/internal/core/utils"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyEntry[T any] struct {
	Status      IdempotencyStatus `json:"status"`
	PayloadHash string            `json:"payload_hash"`
	Result      *T                `json:"result,omitempty"`
}

type IdempotencyOptions struct {
	TTL          time.Duration
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// IdempotencyService dedupes requests carrying the same key. The first request
// claims the key, concurrent duplicates poll until it completes or is released.
type IdempotencyService[T any] struct {
	cache port.CachePort[IdempotencyEntry[T]]
	opts  IdempotencyOptions
}

func NewIdempotencyService[T any](cache port.CachePort[IdempotencyEntry[T]], opts IdempotencyOptions) *IdempotencyService[T] {
	return &IdempotencyService[T]{cache: cache, opts: opts}
}

// Run executes fn once per key and payload. Replays with the same payload get
// the stored result, replays with a different payload are rejected.
func (s *IdempotencyService[T]) Run(ctx context.Context, key string, payload any, fn func(context.Context) (*T, error)) (*T, error) {
	payloadHash, err := utils.HashJSON(payload)
	if err != nil {
		return nil, serviceerrors.NewInvalidRequestError("request payload cannot be fingerprinted")
	}

	existing, err := s.Claim(ctx, key, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": key,
		})
		return nil, err
	}
	if existing != nil {
		logger.Info(ctx, "idempotency: replaying stored result", map[string]any{
			"idempotency_key": key,
		})
		return existing, nil
	}

	result, err := fn(ctx)
	if err != nil {
		s.Release(ctx, key)
		return nil, err
	}

	s.Complete(ctx, key, payloadHash, result)
	return result, nil
}

// Claim returns nil, nil when the caller owns the key and must do the work.
func (s *IdempotencyService[T]) Claim(ctx context.Context, key, payloadHash string) (*T, error) {
	claimed, err := s.cache.SetNX(ctx, key, &IdempotencyEntry[T]{
		Status:      IdempotencyProcessing,
		PayloadHash: payloadHash,
	}, s.opts.TTL)
	if err != nil {
		return nil, fmt.Errorf("idempotency claim failed: %w", err)
	}

	if claimed {
		return nil, nil
	}

	return s.waitForCompletion(ctx, key, payloadHash)
}

func (s *IdempotencyService[T]) Complete(ctx context.Context, key, payloadHash string, result *T) {
	err := s.cache.Set(ctx, key, &IdempotencyEntry[T]{
		Status:      IdempotencyCompleted,
		PayloadHash: payloadHash,
		Result:      result,
	}, s.opts.TTL)
	if err != nil {
		logger.Error(ctx, "idempotency: complete failed", err, map[string]any{
			"idempotency_key": key,
			"payload_hash":    payloadHash,
		})
	}
}

func (s *IdempotencyService[T]) Release(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key); err != nil {
		logger.Error(ctx, "idempotency: release failed", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

func (s *IdempotencyService[T]) checkEntry(ctx context.Context, key, payloadHash string) (*T, error) {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("idempotency check failed: %w", err)
	}
	switch {
	case entry == nil:
		return nil, serviceerrors.NewConflictError("previous request with this key failed, retry it")
	case entry.PayloadHash != payloadHash:
		return nil, serviceerrors.NewUnprocessableEntityError("idempotency key already used with a different payload")
	case entry.Status == IdempotencyCompleted:
		return entry.Result, nil
	default:
		return nil, nil
	}
}

func (s *IdempotencyService[T]) waitForCompletion(ctx context.Context, key, payloadHash string) (*T, error) {
	if result, err := s.checkEntry(ctx, key, payloadHash); result != nil || err != nil {
		return result, err
	}

	timeout := time.NewTimer(s.opts.PollTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return nil, serviceerrors.NewConflictError("request with this idempotency key is still being processed")
		case <-ticker.C:
			if result, err := s.checkEntry(ctx, key, payloadHash); result != nil || err != nil {
				return result, err
			}
		}
	}
}
