package coupon

// Money is a monetary value in the currency's smallest denomination.
type Money = int64

// DiscountKind identifies the discount strategy attached to a coupon.
type DiscountKind string

// The closed set of discount kinds understood by the engine. Anything else
// yields a failed outcome, never a panic.
const (
	KindPercentage       DiscountKind = "percentage"
	KindFixedAmount      DiscountKind = "fixed_amount"
	KindFreeShipping     DiscountKind = "free_shipping"
	KindBuyXGetYCheapest DiscountKind = "buy_x_get_y_cheapest"
	KindBuyXGetYPercent  DiscountKind = "buy_x_get_y_percentage"
	KindTieredByQuantity DiscountKind = "tiered_by_quantity"
	KindBundle           DiscountKind = "bundle"
	// KindLegacyCart is the kind stored on coupon records created before the
	// percentage/fixed split. Treated exactly like KindPercentage.
	KindLegacyCart DiscountKind = "cart_discount"
)

// AmountKind says whether a tier or bundle magnitude is a percentage of the
// base amount or a flat value.
type AmountKind string

const (
	AmountPercent AmountKind = "percent"
	AmountFixed   AmountKind = "fixed"
)

// Line is one product's aggregated presence in a cart. Subtotal is supplied
// by the caller and never recomputed, so caller-side rounding survives.
type Line struct {
	ProductID string `json:"productId"`
	UnitPrice Money  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  Money  `json:"subtotal"`
}

// TierRule maps a quantity range to a discount magnitude. A nil MaxQuantity
// means the range is unbounded above. Ranges are allowed to overlap; see
// TieredByQuantity for the resolution rule.
type TierRule struct {
	MinQuantity   int        `json:"minQuantity"`
	MaxQuantity   *int       `json:"maxQuantity,omitempty"`
	DiscountType  AmountKind `json:"discountType"`
	DiscountValue int64      `json:"discountValue"`
}

// BundleItem is one product requirement inside a bundle coupon.
type BundleItem struct {
	ProductID        string `json:"productId"`
	RequiredQuantity int    `json:"requiredQuantity"`
}

// Advanced carries the strategy-specific knobs of a coupon. Every field is
// optional; defaults are substituted in exactly one place (see engine.go).
type Advanced struct {
	BuyQuantity        *int         `json:"buyQuantity,omitempty"`
	GetQuantity        *int         `json:"getQuantity,omitempty"`
	PercentageValue    *int64       `json:"percentageValue,omitempty"`
	ApplyToLowest      *bool        `json:"applyToLowest,omitempty"`
	Repeatable         *bool        `json:"repeatable,omitempty"`
	Tiers              []TierRule   `json:"tiers,omitempty"`
	BundleProducts     []BundleItem `json:"bundleProducts,omitempty"`
	BundleDiscountType AmountKind   `json:"bundleDiscountType,omitempty"`
	MaxDiscount        *Money       `json:"maximumDiscountAmount,omitempty"`
}

// Coupon is the immutable definition of an offer as stored on the record.
type Coupon struct {
	Code        string       `json:"code"`
	Kind        DiscountKind `json:"kind"`
	Value       int64        `json:"value"`
	MinCart     Money        `json:"minimumCartAmount,omitempty"`
	MaxDiscount *Money       `json:"maximumDiscountAmount,omitempty"`
	Advanced    *Advanced    `json:"advanced,omitempty"`
}

// LineDiscount reports how many units of one line were discounted and by how
// much per unit.
type LineDiscount struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"discountedQuantity"`
	PerUnit   Money  `json:"perUnitDiscount"`
	Total     Money  `json:"lineDiscountTotal"`
}

// Outcome is the engine's only output. Either Succeeded with a non-negative
// Discount, or not Succeeded with Discount zero and a shopper-facing reason.
type Outcome struct {
	Succeeded bool           `json:"succeeded"`
	Discount  Money          `json:"discountAmount"`
	Lines     []LineDiscount `json:"perLineDiscounts,omitempty"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
}

func failure(message string) Outcome {
	return Outcome{Succeeded: false, Discount: 0, Message: message}
}

func totalQuantity(lines []Line) int {
	total := 0
	for _, ln := range lines {
		if ln.Quantity > 0 {
			total += ln.Quantity
		}
	}
	return total
}

// CartSubtotal sums the caller-supplied line subtotals.
func CartSubtotal(lines []Line) Money {
	var total Money
	for _, ln := range lines {
		if ln.Subtotal > 0 {
			total += ln.Subtotal
		}
	}
	return total
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
