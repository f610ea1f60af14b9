package coupon

import "fmt"

// TieredByQuantity applies the discount of the tier whose quantity range
// contains the cart's total quantity. Overlapping ranges are not rejected;
// among matching tiers the one with the highest MinQuantity wins, so the
// shopper always gets the highest tier they reached.
func TieredByQuantity(lines []Line, tiers []TierRule) Outcome {
	if len(tiers) == 0 {
		return failure("No discount tiers configured")
	}

	total := totalQuantity(lines)
	subtotal := CartSubtotal(lines)

	matched := false
	var winner TierRule
	lowest := tiers[0]
	for _, tier := range tiers {
		if tier.MinQuantity < lowest.MinQuantity {
			lowest = tier
		}
		if total < tier.MinQuantity {
			continue
		}
		if tier.MaxQuantity != nil && total > *tier.MaxQuantity {
			continue
		}
		if !matched || tier.MinQuantity > winner.MinQuantity {
			winner = tier
			matched = true
		}
	}

	if !matched {
		short := lowest.MinQuantity - total
		if short < 1 {
			short = 1
		}
		return failure(fmt.Sprintf("Add %d more %s to unlock a quantity discount",
			short, plural(short, "item")))
	}

	var amount Money
	var label string
	if winner.DiscountType == AmountFixed {
		amount = min(Money(winner.DiscountValue), subtotal)
		if amount < 0 {
			amount = 0
		}
		label = fmt.Sprintf("%d off", winner.DiscountValue)
	} else {
		amount = subtotal * winner.DiscountValue / 100
		if amount > subtotal {
			amount = subtotal
		}
		if amount < 0 {
			amount = 0
		}
		label = fmt.Sprintf("%d%% off", winner.DiscountValue)
	}

	return Outcome{
		Succeeded: true,
		Discount:  amount,
		Message:   fmt.Sprintf("Quantity discount applied: %s", label),
		Details:   fmt.Sprintf("Qualified with %d items (tier %s)", total, tierRange(winner)),
	}
}

func tierRange(tier TierRule) string {
	if tier.MaxQuantity == nil {
		return fmt.Sprintf("%d+", tier.MinQuantity)
	}
	return fmt.Sprintf("%d-%d", tier.MinQuantity, *tier.MaxQuantity)
}
