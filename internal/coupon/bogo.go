package coupon

import (
	"cmp"
	"fmt"
	"slices"
)

// BuyXGetYConfig holds the resolved parameters shared by both buy-X-get-Y
// strategies. Construct it through the defaulting in engine.go rather than
// by hand so the substitution policy stays in one place.
type BuyXGetYConfig struct {
	BuyQuantity   int
	GetQuantity   int
	Percentage    int64
	ApplyToLowest bool
	Repeatable    bool
}

// BuyXGetYCheapestFree gives away the cheapest units in the cart. One set is
// BuyQuantity+GetQuantity units; a repeatable offer grants GetQuantity free
// units per complete set, a single-shot offer grants exactly GetQuantity.
func BuyXGetYCheapestFree(lines []Line, cfg BuyXGetYConfig) Outcome {
	total := totalQuantity(lines)
	required := cfg.BuyQuantity + cfg.GetQuantity
	if total < required {
		short := required - total
		return failure(fmt.Sprintf("Add %d more %s to qualify for Buy %d Get %d Free",
			short, plural(short, "item"), cfg.BuyQuantity, cfg.GetQuantity))
	}

	sets := 1
	budget := cfg.GetQuantity
	if cfg.Repeatable {
		sets = total / required
		budget = sets * cfg.GetQuantity
	}

	discounts, amount := distribute(sortedByUnitPrice(lines), budget, func(ln Line) Money {
		return ln.UnitPrice
	})

	out := Outcome{
		Succeeded: true,
		Discount:  amount,
		Lines:     discounts,
	}
	if cfg.Repeatable {
		out.Message = fmt.Sprintf("Buy %d Get %d Free applied for %d %s",
			cfg.BuyQuantity, cfg.GetQuantity, sets, plural(sets, "set"))
		out.Details = fmt.Sprintf("%d %s free", budget, plural(budget, "item"))
	} else {
		out.Message = fmt.Sprintf("Buy %d Get %d Free applied, %d %s free",
			cfg.BuyQuantity, cfg.GetQuantity, budget, plural(budget, "item"))
	}
	return out
}

// BuyXGetYPercentage discounts units at a percentage instead of giving them
// away. With ApplyToLowest the cheapest units are discounted first; without
// it the cart's own ordering decides which units get the discount, which is
// an intentional variant of the offer.
func BuyXGetYPercentage(lines []Line, cfg BuyXGetYConfig) Outcome {
	total := totalQuantity(lines)
	required := cfg.BuyQuantity + cfg.GetQuantity
	if total < required {
		short := required - total
		return failure(fmt.Sprintf("Add %d more %s to qualify for Buy %d Get %d at %d%% Off",
			short, plural(short, "item"), cfg.BuyQuantity, cfg.GetQuantity, cfg.Percentage))
	}

	sets := 1
	budget := cfg.GetQuantity
	if cfg.Repeatable {
		sets = total / required
		budget = sets * cfg.GetQuantity
	}

	ordered := lines
	if cfg.ApplyToLowest {
		ordered = sortedByUnitPrice(lines)
	}
	discounts, amount := distribute(ordered, budget, func(ln Line) Money {
		return ln.UnitPrice * cfg.Percentage / 100
	})

	out := Outcome{
		Succeeded: true,
		Discount:  amount,
		Lines:     discounts,
	}
	if cfg.Repeatable {
		out.Message = fmt.Sprintf("Buy %d Get %d at %d%% Off applied for %d %s",
			cfg.BuyQuantity, cfg.GetQuantity, cfg.Percentage, sets, plural(sets, "set"))
		out.Details = fmt.Sprintf("%d %s discounted", budget, plural(budget, "item"))
	} else {
		out.Message = fmt.Sprintf("Buy %d Get %d at %d%% Off applied, %d %s discounted",
			cfg.BuyQuantity, cfg.GetQuantity, cfg.Percentage, budget, plural(budget, "item"))
	}
	return out
}

// sortedByUnitPrice returns a stable ascending-price copy; the input slice
// is never reordered.
func sortedByUnitPrice(lines []Line) []Line {
	out := slices.Clone(lines)
	slices.SortStableFunc(out, func(a, b Line) int {
		return cmp.Compare(a.UnitPrice, b.UnitPrice)
	})
	return out
}

// distribute folds over the ordered lines consuming at most budget units,
// pricing each unit with perUnit. A line never contributes more units than
// it holds, so its discount cannot exceed its own subtotal.
func distribute(ordered []Line, budget int, perUnit func(Line) Money) ([]LineDiscount, Money) {
	var result []LineDiscount
	var amount Money
	for _, ln := range ordered {
		if budget <= 0 {
			break
		}
		if ln.Quantity <= 0 {
			continue
		}
		take := min(budget, ln.Quantity)
		unit := perUnit(ln)
		result = append(result, LineDiscount{
			ProductID: ln.ProductID,
			Quantity:  take,
			PerUnit:   unit,
			Total:     Money(take) * unit,
		})
		amount += Money(take) * unit
		budget -= take
	}
	return result, amount
}
