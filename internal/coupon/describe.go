package coupon

import (
	"fmt"
	"strings"
)

// Describe renders a coupon as a short display string. It performs no money
// calculation and resolves defaults exactly like Apply does.
func Describe(c Coupon) string {
	switch c.Kind {
	case KindPercentage, KindLegacyCart:
		text := fmt.Sprintf("%d%% off", c.Value)
		if c.MaxDiscount != nil {
			text += fmt.Sprintf(" (up to %d)", *c.MaxDiscount)
		}
		return text
	case KindFixedAmount:
		return fmt.Sprintf("Flat %d off", c.Value)
	case KindFreeShipping:
		return "Free shipping"
	case KindBuyXGetYCheapest:
		cfg := c.buyXGetY()
		return fmt.Sprintf("Buy %d Get %d Cheapest Free (%s)",
			cfg.BuyQuantity, cfg.GetQuantity, repeatLabel(cfg.Repeatable))
	case KindBuyXGetYPercent:
		cfg := c.buyXGetY()
		return fmt.Sprintf("Buy %d Get %d at %d%% Off (%s)",
			cfg.BuyQuantity, cfg.GetQuantity, cfg.Percentage, repeatLabel(cfg.Repeatable))
	case KindTieredByQuantity:
		tiers := c.tiers()
		if len(tiers) == 0 {
			return "Quantity discount"
		}
		parts := make([]string, 0, len(tiers))
		for _, tier := range tiers {
			parts = append(parts, fmt.Sprintf("%s: %s", tierRange(tier), tierValue(tier)))
		}
		return "Tiered: " + strings.Join(parts, ", ")
	case KindBundle:
		cfg := c.bundle()
		if len(cfg.Products) == 0 {
			return "Bundle discount"
		}
		value := fmt.Sprintf("%d%% off", cfg.Value)
		if cfg.DiscountType == AmountFixed {
			value = fmt.Sprintf("%d off", cfg.Value)
		}
		return fmt.Sprintf("Bundle of %d %s: %s",
			len(cfg.Products), plural(len(cfg.Products), "product"), value)
	default:
		return "Unknown coupon"
	}
}

func tierValue(tier TierRule) string {
	if tier.DiscountType == AmountFixed {
		return fmt.Sprintf("%d off", tier.DiscountValue)
	}
	return fmt.Sprintf("%d%%", tier.DiscountValue)
}

func repeatLabel(repeatable bool) string {
	if repeatable {
		return "Repeatable"
	}
	return "One time"
}
