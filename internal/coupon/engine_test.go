package coupon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func moneyPtr(v Money) *Money { return &v }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestApplyMinimumCartGate(t *testing.T) {
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500},
	}, Coupon{Kind: KindPercentage, Value: 10, MinCart: 1000})
	require.False(t, out.Succeeded)
	require.Zero(t, out.Discount)
	require.Equal(t, "Spend 500 more to use this coupon", out.Message)
}

func TestApplyPercentage(t *testing.T) {
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500},
	}, Coupon{Kind: KindPercentage, Value: 10})
	require.True(t, out.Succeeded)
	require.Equal(t, Money(50), out.Discount)
	require.Empty(t, out.Lines)
}

func TestApplyPercentageCapPrecedence(t *testing.T) {
	// Coupon-level cap clamps 500 to 300, then the advanced cap clamps the
	// result again to 200. The advanced cap always runs last.
	coupon := Coupon{
		Kind:        KindPercentage,
		Value:       10,
		MaxDiscount: moneyPtr(300),
		Advanced:    &Advanced{MaxDiscount: moneyPtr(200)},
	}
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 1000, Quantity: 5, Subtotal: 5000},
	}, coupon)
	require.True(t, out.Succeeded)
	require.Equal(t, Money(200), out.Discount)
	require.Equal(t, "Discount capped at 200", out.Details)
}

func TestApplyAdvancedCapOnStrategyDiscount(t *testing.T) {
	coupon := Coupon{
		Kind:     KindBuyXGetYCheapest,
		Advanced: &Advanced{MaxDiscount: moneyPtr(30)},
	}
	out := Apply(threeItemCart(), coupon)
	require.True(t, out.Succeeded)
	require.Equal(t, Money(30), out.Discount)
	require.Contains(t, out.Details, "Discount capped at 30")
}

func TestApplyTreatsNonPositiveCapsAsAbsent(t *testing.T) {
	lines := []Line{{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500}}

	// A negative or zero cap on either level must never drag the discount
	// down, let alone below zero.
	for _, limit := range []Money{-5, 0} {
		advanced := Apply(lines, Coupon{
			Kind:     KindPercentage,
			Value:    10,
			Advanced: &Advanced{MaxDiscount: moneyPtr(limit)},
		})
		require.True(t, advanced.Succeeded)
		require.Equal(t, Money(50), advanced.Discount)
		require.GreaterOrEqual(t, advanced.Discount, Money(0))
		require.Empty(t, advanced.Details)

		capped := Apply(lines, Coupon{
			Kind:        KindPercentage,
			Value:       10,
			MaxDiscount: moneyPtr(limit),
		})
		require.Equal(t, Money(50), capped.Discount)
	}
}

func TestApplyFixedAmountClampedToSubtotal(t *testing.T) {
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 4, Subtotal: 400},
	}, Coupon{Kind: KindFixedAmount, Value: 10000})
	require.True(t, out.Succeeded)
	require.Equal(t, Money(400), out.Discount)
}

func TestApplyFreeShipping(t *testing.T) {
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 1, Subtotal: 100},
	}, Coupon{Kind: KindFreeShipping})
	require.True(t, out.Succeeded)
	require.Zero(t, out.Discount)
	require.Equal(t, "Free shipping applied", out.Message)
}

func TestApplyLegacyCartKindBehavesAsPercentage(t *testing.T) {
	lines := []Line{{ProductID: "a", UnitPrice: 100, Quantity: 5, Subtotal: 500}}
	legacy := Apply(lines, Coupon{Kind: KindLegacyCart, Value: 10})
	percent := Apply(lines, Coupon{Kind: KindPercentage, Value: 10})
	require.Equal(t, percent, legacy)
}

func TestApplyUnknownKind(t *testing.T) {
	out := Apply([]Line{
		{ProductID: "a", UnitPrice: 100, Quantity: 1, Subtotal: 100},
	}, Coupon{Kind: "mystery", Value: 10})
	require.False(t, out.Succeeded)
	require.Equal(t, "Invalid coupon type", out.Message)
}

func TestApplyDefaultsBuyTwoGetOne(t *testing.T) {
	out := Apply(threeItemCart(), Coupon{Kind: KindBuyXGetYCheapest})
	require.True(t, out.Succeeded)
	require.Equal(t, Money(50), out.Discount)
	require.Equal(t, "Buy 2 Get 1 Free applied for 1 set", out.Message)
}

func TestApplyDefaultsPercentageVariant(t *testing.T) {
	out := Apply(threeItemCart(), Coupon{
		Kind:     KindBuyXGetYPercent,
		Advanced: &Advanced{Repeatable: boolPtr(false)},
	})
	require.True(t, out.Succeeded)
	require.Equal(t, Money(25), out.Discount)
}

func TestApplyTieredWithoutConfigFailsEligibility(t *testing.T) {
	out := Apply(threeItemCart(), Coupon{Kind: KindTieredByQuantity})
	require.False(t, out.Succeeded)
	require.Equal(t, "No discount tiers configured", out.Message)
}

func TestApplyBundleWithoutConfigFailsEligibility(t *testing.T) {
	out := Apply(threeItemCart(), Coupon{Kind: KindBundle, Value: 10})
	require.False(t, out.Succeeded)
}

func TestApplyIsIdempotent(t *testing.T) {
	coupon := Coupon{
		Kind: KindBuyXGetYPercent,
		Advanced: &Advanced{
			BuyQuantity:     intPtr(1),
			GetQuantity:     intPtr(1),
			PercentageValue: func(v int64) *int64 { return &v }(25),
		},
	}
	first := Apply(threeItemCart(), coupon)
	second := Apply(threeItemCart(), coupon)
	require.Equal(t, first, second)
}

func TestApplyNeverOverDiscounts(t *testing.T) {
	carts := [][]Line{
		threeItemCart(),
		{{ProductID: "a", UnitPrice: 1, Quantity: 100, Subtotal: 100}},
		{{ProductID: "a", UnitPrice: 999, Quantity: 3, Subtotal: 2997}},
	}
	three := 3
	coupons := []Coupon{
		{Kind: KindPercentage, Value: 100},
		{Kind: KindFixedAmount, Value: 1 << 40},
		{Kind: KindBuyXGetYCheapest},
		{Kind: KindBuyXGetYPercent},
		{Kind: KindTieredByQuantity, Advanced: &Advanced{Tiers: []TierRule{
			{MinQuantity: 2, MaxQuantity: &three, DiscountType: AmountFixed, DiscountValue: 1 << 40},
			{MinQuantity: 3, DiscountType: AmountPercent, DiscountValue: 100},
		}}},
	}
	for _, cart := range carts {
		subtotal := CartSubtotal(cart)
		for _, c := range coupons {
			out := Apply(cart, c)
			require.GreaterOrEqual(t, out.Discount, Money(0))
			require.LessOrEqual(t, out.Discount, subtotal)
		}
	}
}
