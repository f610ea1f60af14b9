package coupon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/arsaka-id/pasar-api/internal/common"
)

// Handler exposes the coupon endpoints: preview/describe for the storefront
// and create/update for the record store behind the admin surface.
type Handler struct {
	Svc      *Service
	Admin    *PgStore
	Cache    *Cache
	Validate *validator.Validate
}

type linePayload struct {
	ProductID string `json:"productId" validate:"required"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Subtotal  int64  `json:"subtotal" validate:"gte=0"`
}

type previewRequest struct {
	Code  string        `json:"code" validate:"required"`
	Items []linePayload `json:"items" validate:"required,min=1,dive"`
}

type couponPayload struct {
	Code        string    `json:"code" validate:"required"`
	Kind        string    `json:"kind" validate:"required"`
	Value       int64     `json:"value" validate:"gte=0"`
	MinCart     int64     `json:"minimumCartAmount" validate:"gte=0"`
	MaxDiscount *int64    `json:"maximumDiscountAmount" validate:"omitempty,gte=0"`
	Advanced    *Advanced `json:"advanced"`
}

// Preview evaluates a coupon against the posted cart lines.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
		return
	}
	var req previewRequest
	if !h.decode(w, r, &req) {
		return
	}
	outcome, err := h.Svc.Preview(r.Context(), req.Code, toLines(req.Items))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to evaluate coupon", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": outcome})
}

// DescribeCoupon renders the display string for a coupon code.
func (h *Handler) DescribeCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon service not configured", nil)
		return
	}
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	text, err := h.Svc.Describe(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to describe coupon", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{
		"code":        normalizeCode(code),
		"description": text,
	}})
}

// Create inserts a new coupon record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	var payload couponPayload
	if !h.decode(w, r, &payload) {
		return
	}
	c, err := payload.toCoupon()
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	if err := h.Admin.Create(r.Context(), c); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "coupon code already exists", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create coupon", nil)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), c.Code)
	common.JSON(w, http.StatusCreated, map[string]any{"data": c})
}

// Update replaces the record identified by the code in the URL.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	var payload couponPayload
	payload.Code = code
	if !h.decode(w, r, &payload) {
		return
	}
	payload.Code = code
	c, err := payload.toCoupon()
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	if err := h.Admin.Update(r.Context(), c); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update coupon", nil)
		return
	}
	_ = h.Cache.Invalidate(r.Context(), c.Code)
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(dst); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid payload", common.ValidationDetails(err))
			return false
		}
	}
	return true
}

func (p couponPayload) toCoupon() (Coupon, error) {
	kind := DiscountKind(strings.TrimSpace(p.Kind))
	switch kind {
	case KindPercentage, KindFixedAmount, KindFreeShipping,
		KindBuyXGetYCheapest, KindBuyXGetYPercent,
		KindTieredByQuantity, KindBundle, KindLegacyCart:
	default:
		return Coupon{}, errors.New("invalid coupon kind")
	}
	if p.Advanced != nil && p.Advanced.MaxDiscount != nil && *p.Advanced.MaxDiscount < 0 {
		return Coupon{}, errors.New("advanced maximumDiscountAmount must not be negative")
	}
	c := Coupon{
		Code:     normalizeCode(p.Code),
		Kind:     kind,
		Value:    p.Value,
		MinCart:  p.MinCart,
		Advanced: p.Advanced,
	}
	if p.MaxDiscount != nil {
		value := Money(*p.MaxDiscount)
		c.MaxDiscount = &value
	}
	return c, nil
}

func toLines(items []linePayload) []Line {
	out := make([]Line, 0, len(items))
	for _, it := range items {
		ln := Line{
			ProductID: it.ProductID,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		}
		// The cart flow supplies precomputed subtotals; fall back to the
		// obvious product only when the caller omitted one.
		if ln.Subtotal == 0 {
			ln.Subtotal = ln.UnitPrice * Money(ln.Quantity)
		}
		out = append(out, ln)
	}
	return out
}
