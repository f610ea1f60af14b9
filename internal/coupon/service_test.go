package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	coupon Coupon
	calls  int
	err    error
}

func (s *stubStore) GetByCode(ctx context.Context, code string) (Coupon, error) {
	s.calls++
	if s.err != nil {
		return Coupon{}, s.err
	}
	if s.coupon.Code == "" {
		return Coupon{}, ErrNotFound
	}
	return s.coupon, nil
}

func TestServicePreview(t *testing.T) {
	store := &stubStore{coupon: Coupon{Code: "HEMAT10", Kind: KindPercentage, Value: 10}}
	svc := &Service{Store: store}

	out, err := svc.Preview(context.Background(), "HEMAT10", []Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500},
	})
	require.NoError(t, err)
	require.True(t, out.Succeeded)
	require.Equal(t, Money(50), out.Discount)
}

func TestServicePreviewUnknownCode(t *testing.T) {
	svc := &Service{Store: &stubStore{}}
	_, err := svc.Preview(context.Background(), "NOPE", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServicePreviewBlankCode(t *testing.T) {
	svc := &Service{Store: &stubStore{}}
	_, err := svc.Preview(context.Background(), "   ", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDescribe(t *testing.T) {
	store := &stubStore{coupon: Coupon{Code: "BUNDLING", Kind: KindBuyXGetYCheapest}}
	svc := &Service{Store: store}

	text, err := svc.Describe(context.Background(), "BUNDLING")
	require.NoError(t, err)
	require.Equal(t, "Buy 2 Get 1 Cheapest Free (Repeatable)", text)
}

func TestServiceCachesRecords(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &stubStore{coupon: Coupon{Code: "HEMAT10", Kind: KindPercentage, Value: 10}}
	svc := &Service{Store: store, Cache: NewCache(client, time.Minute)}
	lines := []Line{{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500}}

	first, err := svc.Preview(context.Background(), "HEMAT10", lines)
	require.NoError(t, err)
	second, err := svc.Preview(context.Background(), "HEMAT10", lines)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, store.calls)
}

func TestServiceSurvivesCacheFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	store := &stubStore{coupon: Coupon{Code: "HEMAT10", Kind: KindPercentage, Value: 10}}
	svc := &Service{Store: store, Cache: NewCache(client, time.Minute)}

	out, err := svc.Preview(context.Background(), "HEMAT10", []Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 1, Subtotal: 100},
	})
	require.NoError(t, err)
	require.True(t, out.Succeeded)
}

func TestServiceStoreErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	svc := &Service{Store: &stubStore{err: boom}}
	_, err := svc.Preview(context.Background(), "HEMAT10", nil)
	require.ErrorIs(t, err, boom)
}
