package coupon

import "fmt"

// Defaults substituted for missing advanced fields. Describe relies on the
// same values, so displayed text never contradicts the applied discount.
const (
	defaultBuyQuantity = 2
	defaultGetQuantity = 1
	defaultPercentage  = 50
)

// Apply evaluates a coupon against cart lines. It is pure: no I/O, no
// mutation of its inputs, and equal inputs always produce equal outcomes.
func Apply(lines []Line, c Coupon) Outcome {
	subtotal := CartSubtotal(lines)
	if c.MinCart > 0 && subtotal < c.MinCart {
		short := c.MinCart - subtotal
		return failure(fmt.Sprintf("Spend %d more to use this coupon", short))
	}

	var out Outcome
	switch c.Kind {
	case KindPercentage, KindLegacyCart:
		amount := subtotal * c.Value / 100
		if amount > subtotal {
			amount = subtotal
		}
		if amount < 0 {
			amount = 0
		}
		if c.MaxDiscount != nil && *c.MaxDiscount > 0 && amount > *c.MaxDiscount {
			amount = *c.MaxDiscount
		}
		out = Outcome{
			Succeeded: true,
			Discount:  amount,
			Message:   fmt.Sprintf("%d%% discount applied", c.Value),
		}
	case KindFixedAmount:
		amount := min(Money(c.Value), subtotal)
		if amount < 0 {
			amount = 0
		}
		out = Outcome{
			Succeeded: true,
			Discount:  amount,
			Message:   fmt.Sprintf("Flat %d off applied", c.Value),
		}
	case KindFreeShipping:
		// The shipping fee itself is suppressed by the checkout flow; the
		// engine only reports that the coupon applied.
		out = Outcome{Succeeded: true, Discount: 0, Message: "Free shipping applied"}
	case KindBuyXGetYCheapest:
		out = BuyXGetYCheapestFree(lines, c.buyXGetY())
	case KindBuyXGetYPercent:
		out = BuyXGetYPercentage(lines, c.buyXGetY())
	case KindTieredByQuantity:
		out = TieredByQuantity(lines, c.tiers())
	case KindBundle:
		out = BundleDiscount(lines, c.bundle())
	default:
		out = failure("Invalid coupon type")
	}

	// The advanced cap is independent of any strategy-level cap and always
	// runs last, so both may clamp in sequence. A non-positive cap is treated
	// as absent, like every other malformed advanced field.
	if c.Advanced != nil && c.Advanced.MaxDiscount != nil && *c.Advanced.MaxDiscount > 0 && out.Discount > *c.Advanced.MaxDiscount {
		out.Discount = *c.Advanced.MaxDiscount
		note := fmt.Sprintf("Discount capped at %d", *c.Advanced.MaxDiscount)
		if out.Details == "" {
			out.Details = note
		} else {
			out.Details += "; " + note
		}
	}
	return out
}

func (c Coupon) buyXGetY() BuyXGetYConfig {
	cfg := BuyXGetYConfig{
		BuyQuantity:   defaultBuyQuantity,
		GetQuantity:   defaultGetQuantity,
		Percentage:    defaultPercentage,
		ApplyToLowest: true,
		Repeatable:    true,
	}
	a := c.Advanced
	if a == nil {
		return cfg
	}
	if a.BuyQuantity != nil && *a.BuyQuantity > 0 {
		cfg.BuyQuantity = *a.BuyQuantity
	}
	if a.GetQuantity != nil && *a.GetQuantity > 0 {
		cfg.GetQuantity = *a.GetQuantity
	}
	if a.PercentageValue != nil && *a.PercentageValue > 0 {
		cfg.Percentage = *a.PercentageValue
	}
	if a.ApplyToLowest != nil {
		cfg.ApplyToLowest = *a.ApplyToLowest
	}
	if a.Repeatable != nil {
		cfg.Repeatable = *a.Repeatable
	}
	return cfg
}

func (c Coupon) tiers() []TierRule {
	if c.Advanced == nil {
		return nil
	}
	return c.Advanced.Tiers
}

func (c Coupon) bundle() BundleConfig {
	cfg := BundleConfig{DiscountType: AmountPercent, Value: c.Value}
	if c.Advanced != nil {
		cfg.Products = c.Advanced.BundleProducts
		if c.Advanced.BundleDiscountType == AmountFixed {
			cfg.DiscountType = AmountFixed
		}
	}
	return cfg
}
