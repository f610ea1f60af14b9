package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arsaka-id/pasar-api/internal/obs"
)

// Service resolves coupon records and evaluates them against carts. The
// engine itself stays pure; this layer owns lookup, caching and telemetry.
type Service struct {
	Store  Store
	Cache  *Cache
	Logger zerolog.Logger
}

// Preview evaluates the coupon identified by code against the given cart
// lines. A coupon that exists but does not apply yields a failed Outcome,
// not an error; errors are reserved for missing records and infrastructure.
func (s *Service) Preview(ctx context.Context, code string, lines []Line) (Outcome, error) {
	out, _, err := s.Evaluate(ctx, code, lines)
	return out, err
}

// Evaluate behaves like Preview but also returns the resolved coupon, for
// callers that need the definition itself (the checkout flow inspects the
// kind to suppress shipping fees on free-shipping coupons).
func (s *Service) Evaluate(ctx context.Context, code string, lines []Line) (Outcome, Coupon, error) {
	c, err := s.resolve(ctx, code)
	if err != nil {
		return Outcome{}, Coupon{}, err
	}
	out := Apply(lines, c)
	if obs.CouponApplyTotal != nil {
		obs.CouponApplyTotal.WithLabelValues(string(c.Kind), applyResult(out)).Inc()
	}
	s.Logger.Debug().
		Str("code", c.Code).
		Str("kind", string(c.Kind)).
		Bool("succeeded", out.Succeeded).
		Int64("discount", out.Discount).
		Msg("coupon_preview")
	return out, c, nil
}

// Describe returns the display string for the coupon identified by code.
func (s *Service) Describe(ctx context.Context, code string) (string, error) {
	c, err := s.resolve(ctx, code)
	if err != nil {
		return "", err
	}
	return Describe(c), nil
}

func (s *Service) resolve(ctx context.Context, code string) (Coupon, error) {
	if s == nil || s.Store == nil {
		return Coupon{}, errors.New("coupon service not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Coupon{}, fmt.Errorf("code is required: %w", ErrNotFound)
	}

	var cached Coupon
	hit, err := s.Cache.Get(ctx, trimmed, &cached)
	if err != nil {
		// A broken cache must not block checkout; fall through to the store.
		s.Logger.Warn().Err(err).Str("code", trimmed).Msg("coupon cache read failed")
	}
	if hit {
		return cached, nil
	}

	c, err := s.Store.GetByCode(ctx, trimmed)
	if err != nil {
		return Coupon{}, err
	}
	if err := s.Cache.Set(ctx, c); err != nil {
		s.Logger.Warn().Err(err).Str("code", trimmed).Msg("coupon cache write failed")
	}
	return c, nil
}

func applyResult(out Outcome) string {
	if out.Succeeded {
		return "applied"
	}
	return "rejected"
}
