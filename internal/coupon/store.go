package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no coupon record exists for a code.
	ErrNotFound = errors.New("coupon not found")
	// ErrCodeTaken is returned when creating a coupon with an existing code.
	ErrCodeTaken = errors.New("coupon code already exists")
)

// Store is the record source the service resolves coupons from.
type Store interface {
	GetByCode(ctx context.Context, code string) (Coupon, error)
}

// PgStore persists coupon records in Postgres. The strategy-specific
// advanced config travels as a JSONB document so new knobs never need a
// schema change.
type PgStore struct {
	Pool *pgxpool.Pool
}

const selectCouponByCode = `
SELECT code, kind, value, min_cart_amount, max_discount_amount, advanced
FROM coupons
WHERE code = $1`

// GetByCode loads a coupon record by its normalised code.
func (s *PgStore) GetByCode(ctx context.Context, code string) (Coupon, error) {
	if s == nil || s.Pool == nil {
		return Coupon{}, errors.New("coupon store not configured")
	}
	var (
		c        Coupon
		kind     string
		maxDisc  *int64
		advanced []byte
	)
	row := s.Pool.QueryRow(ctx, selectCouponByCode, normalizeCode(code))
	if err := row.Scan(&c.Code, &kind, &c.Value, &c.MinCart, &maxDisc, &advanced); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Coupon{}, ErrNotFound
		}
		return Coupon{}, fmt.Errorf("get coupon: %w", err)
	}
	c.Kind = DiscountKind(kind)
	if maxDisc != nil {
		value := Money(*maxDisc)
		c.MaxDiscount = &value
	}
	if len(advanced) > 0 {
		var adv Advanced
		if err := json.Unmarshal(advanced, &adv); err != nil {
			return Coupon{}, fmt.Errorf("decode advanced config: %w", err)
		}
		c.Advanced = &adv
	}
	return c, nil
}

const insertCoupon = `
INSERT INTO coupons (id, code, kind, value, min_cart_amount, max_discount_amount, advanced)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create inserts a new coupon record.
func (s *PgStore) Create(ctx context.Context, c Coupon) error {
	if s == nil || s.Pool == nil {
		return errors.New("coupon store not configured")
	}
	advanced, err := marshalAdvanced(c.Advanced)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, insertCoupon,
		uuid.New(), normalizeCode(c.Code), string(c.Kind), c.Value, c.MinCart, c.MaxDiscount, advanced)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCodeTaken
		}
		return fmt.Errorf("create coupon: %w", err)
	}
	return nil
}

const updateCoupon = `
UPDATE coupons
SET kind = $2, value = $3, min_cart_amount = $4, max_discount_amount = $5, advanced = $6
WHERE code = $1`

// Update replaces an existing coupon record identified by code.
func (s *PgStore) Update(ctx context.Context, c Coupon) error {
	if s == nil || s.Pool == nil {
		return errors.New("coupon store not configured")
	}
	advanced, err := marshalAdvanced(c.Advanced)
	if err != nil {
		return err
	}
	tag, err := s.Pool.Exec(ctx, updateCoupon,
		normalizeCode(c.Code), string(c.Kind), c.Value, c.MinCart, c.MaxDiscount, advanced)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalAdvanced(a *Advanced) ([]byte, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode advanced config: %w", err)
	}
	return data, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
