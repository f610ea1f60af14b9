package coupon

import "fmt"

// BundleConfig holds the resolved parameters of a bundle coupon.
type BundleConfig struct {
	Products     []BundleItem
	DiscountType AmountKind
	Value        int64
}

// BundleDiscount applies a discount when every required product is in the
// cart at its required quantity. Only the required quantities count toward
// the bundle subtotal; extra units of a bundled product are charged full
// price.
func BundleDiscount(lines []Line, cfg BundleConfig) Outcome {
	if len(cfg.Products) == 0 {
		return failure("No bundle products configured")
	}

	byProduct := make(map[string]Line, len(lines))
	for _, ln := range lines {
		byProduct[ln.ProductID] = ln
	}

	missing := 0
	var bundleSubtotal Money
	for _, req := range cfg.Products {
		ln, ok := byProduct[req.ProductID]
		if !ok || ln.Quantity < req.RequiredQuantity {
			missing++
			continue
		}
		bundleSubtotal += Money(req.RequiredQuantity) * ln.UnitPrice
	}
	if missing > 0 {
		return failure(fmt.Sprintf("%d %s from the bundle %s missing from your cart",
			missing, plural(missing, "product"), isAre(missing)))
	}

	var amount Money
	var label string
	if cfg.DiscountType == AmountFixed {
		amount = min(Money(cfg.Value), bundleSubtotal)
		if amount < 0 {
			amount = 0
		}
		label = fmt.Sprintf("%d off", cfg.Value)
	} else {
		amount = bundleSubtotal * cfg.Value / 100
		if amount > bundleSubtotal {
			amount = bundleSubtotal
		}
		if amount < 0 {
			amount = 0
		}
		label = fmt.Sprintf("%d%% off", cfg.Value)
	}

	return Outcome{
		Succeeded: true,
		Discount:  amount,
		Message:   fmt.Sprintf("Bundle discount applied: %s", label),
		Details:   fmt.Sprintf("Bundle of %d %s", len(cfg.Products), plural(len(cfg.Products), "product")),
	}
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
