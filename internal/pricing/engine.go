package pricing

// Money represents a monetary value stored in minor units.
type Money = int64

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money
	Discount Money
	Tax      Money
	Shipping Money
	Total    Money
}

// Compute calculates cart totals for the given discount. The discount is
// clamped to the subtotal; tax applies to the discounted amount. A
// free-shipping coupon zeroes the shipping component here, since the
// discount engine only flags it without pricing the fee.
func Compute(items []Item, discount Money, taxBps int, shipping Money, freeShipping bool) Summary {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	if freeShipping {
		shipping = 0
	}
	taxable := subtotal - discount
	tax := (taxable * Money(taxBps)) / 10000
	total := taxable + tax + shipping
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}
}
