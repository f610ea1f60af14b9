package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/arsaka-id/pasar-api/internal/common"
	"github.com/arsaka-id/pasar-api/internal/coupon"
	"github.com/arsaka-id/pasar-api/internal/pricing"
)

// Handler quotes a cart: it prices the posted lines, optionally applying a
// coupon, and returns the summary together with the discount outcome.
type Handler struct {
	Coupons      *coupon.Service
	Validate     *validator.Validate
	TaxBps       int
	ShippingFlat int64
	Currency     string
}

type quoteItem struct {
	ProductID string `json:"productId" validate:"required"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Subtotal  int64  `json:"subtotal" validate:"gte=0"`
}

type quoteRequest struct {
	Items      []quoteItem `json:"items" validate:"required,min=1,dive"`
	CouponCode string      `json:"couponCode"`
}

type quoteResponse struct {
	Currency string          `json:"currency"`
	Subtotal int64           `json:"subtotal"`
	Discount int64           `json:"discount"`
	Tax      int64           `json:"tax"`
	Shipping int64           `json:"shipping"`
	Total    int64           `json:"total"`
	Coupon   *coupon.Outcome `json:"coupon,omitempty"`
}

// Quote prices the posted cart lines.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid payload", common.ValidationDetails(err))
			return
		}
	}

	lines := make([]coupon.Line, 0, len(req.Items))
	items := make([]pricing.Item, 0, len(req.Items))
	for _, it := range req.Items {
		ln := coupon.Line{
			ProductID: it.ProductID,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		}
		if ln.Subtotal == 0 {
			ln.Subtotal = ln.UnitPrice * int64(ln.Quantity)
		}
		lines = append(lines, ln)
		items = append(items, pricing.Item{Qty: it.Quantity, UnitPrice: it.UnitPrice})
	}

	var outcome *coupon.Outcome
	var discount int64
	freeShipping := false
	if req.CouponCode != "" {
		if h.Coupons == nil {
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
			return
		}
		out, c, err := h.Coupons.Evaluate(r.Context(), req.CouponCode, lines)
		if err != nil {
			if errors.Is(err, coupon.ErrNotFound) {
				common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
				return
			}
			common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to evaluate coupon", nil)
			return
		}
		outcome = &out
		discount = out.Discount
		freeShipping = out.Succeeded && c.Kind == coupon.KindFreeShipping
	}

	summary := pricing.Compute(items, discount, h.TaxBps, h.ShippingFlat, freeShipping)
	common.JSON(w, http.StatusOK, map[string]any{"data": quoteResponse{
		Currency: h.Currency,
		Subtotal: summary.Subtotal,
		Discount: summary.Discount,
		Tax:      summary.Tax,
		Shipping: summary.Shipping,
		Total:    summary.Total,
		Coupon:   outcome,
	}})
}
