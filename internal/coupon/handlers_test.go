package coupon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/arsaka-id/pasar-api/internal/coupon"
)

type fakeStore struct {
	coupons map[string]coupon.Coupon
}

func (f *fakeStore) GetByCode(_ context.Context, code string) (coupon.Coupon, error) {
	c, ok := f.coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return c, nil
}

func newTestHandler() *coupon.Handler {
	store := &fakeStore{coupons: map[string]coupon.Coupon{
		"HEMAT10": {Code: "HEMAT10", Kind: coupon.KindPercentage, Value: 10},
		"B2G1":    {Code: "B2G1", Kind: coupon.KindBuyXGetYCheapest},
	}}
	return &coupon.Handler{
		Svc:      &coupon.Service{Store: store},
		Validate: validator.New(),
	}
}

type previewResponse struct {
	Data coupon.Outcome `json:"data"`
}

func TestPreviewHandler(t *testing.T) {
	handler := newTestHandler()

	body := `{"code":"HEMAT10","items":[{"productId":"a","unitPrice":100,"quantity":5,"subtotal":500}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Succeeded)
	require.Equal(t, int64(50), resp.Data.Discount)
}

func TestPreviewHandlerRejectsEmptyItems(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/preview", strings.NewReader(`{"code":"HEMAT10","items":[]}`))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewHandlerUnknownCode(t *testing.T) {
	handler := newTestHandler()

	body := `{"code":"MISSING","items":[{"productId":"a","unitPrice":100,"quantity":1,"subtotal":100}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Preview(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRejectsNegativeCaps(t *testing.T) {
	handler := newTestHandler()
	handler.Admin = &coupon.PgStore{}

	for _, body := range []string{
		`{"code":"BAD","kind":"percentage","value":10,"maximumDiscountAmount":-5}`,
		`{"code":"BAD","kind":"percentage","value":10,"advanced":{"maximumDiscountAmount":-5}}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/coupons", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestDescribeHandler(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coupons/B2G1/describe", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("code", "B2G1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()
	handler.DescribeCoupon(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Buy 2 Get 1 Cheapest Free (Repeatable)", resp.Data["description"])
}
