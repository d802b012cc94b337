package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/adapter/http/handlers/mocks"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/domain/entities"
	"github.com/iamrobbiejr/sahwi-career-expo-api-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/registrations/:registration_id/payments", h.CreatePayment)
	r.GET("/v1/registrations/:registration_id/payments", h.ListPaymentsByRegistration)
	r.GET("/v1/payments/:payment_id", h.GetPayment)
	r.POST("/v1/payments/:payment_id/verify", h.VerifyPayment)
	r.POST("/v1/payments/:payment_id/refunds", h.RefundPayment)
	return r
}

func TestPaymentHandlerCreatePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/reg-1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unsupported gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		uc.EXPECT().CreateAndInitiate(gomock.Any(), "reg-1", gomock.Any()).Return(entities.Payment{}, entities.InitResult{}, entities.ErrUnsupportedGateway)

		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/reg-1/payments", bytes.NewBufferString(`{"gateway":"stripe"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("registration not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		uc.EXPECT().CreateAndInitiate(gomock.Any(), "reg-1", gomock.Any()).Return(entities.Payment{}, entities.InitResult{}, usecase.ErrRegistrationNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/reg-1/payments", bytes.NewBufferString(`{"gateway":"paynow"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		uc.EXPECT().CreateAndInitiate(gomock.Any(), "reg-1", usecase.InitiationRequest{Gateway: "paynow", ReturnURL: "https://expo.test/return"}).Return(
			entities.Payment{ID: "pay-1", RegistrationID: "reg-1", Gateway: "paynow", Status: entities.PaymentStatusProcessing},
			entities.InitResult{Kind: entities.InitResultRedirect, RedirectURL: "https://www.paynow.co.zw/payment/1"},
			nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/registrations/reg-1/payments", bytes.NewBufferString(`{"gateway":"paynow","return_url":"https://expo.test/return"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["kind"] != "redirect" || body["redirect_url"] != "https://www.paynow.co.zw/payment/1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandlerGetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		h := NewPaymentHandler(uc, mocks.NewMockIReconciliationUseCase(ctrl), mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		uc.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/pay-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["status"] != "completed" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandlerVerifyPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing correlation data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reconcile := mocks.NewMockIReconciliationUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), reconcile, mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		reconcile.EXPECT().VerifyAndReconcile(gomock.Any(), "pay-1").Return(entities.Payment{}, entities.ErrMissingCorrelationData)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/verify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reconcile := mocks.NewMockIReconciliationUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), reconcile, mocks.NewMockIRefundUseCase(ctrl))
		r := newPaymentRouter(h)

		reconcile.EXPECT().VerifyAndReconcile(gomock.Any(), "pay-1").Return(entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/verify", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPaymentHandlerRefundPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("refund unsupported", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		refunds := mocks.NewMockIRefundUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockIReconciliationUseCase(ctrl), refunds)
		r := newPaymentRouter(h)

		refunds.EXPECT().Refund(gomock.Any(), "pay-1", int64(1000)).Return(entities.Payment{}, entities.RefundResult{}, entities.ErrRefundUnsupported)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/refunds", bytes.NewBufferString(`{"amount":1000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("amount exceeds captured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		refunds := mocks.NewMockIRefundUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockIReconciliationUseCase(ctrl), refunds)
		r := newPaymentRouter(h)

		refunds.EXPECT().Refund(gomock.Any(), "pay-1", int64(99999)).Return(entities.Payment{}, entities.RefundResult{}, entities.ErrAmountExceedsCaptured)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/refunds", bytes.NewBufferString(`{"amount":99999}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		refunds := mocks.NewMockIRefundUseCase(ctrl)
		h := NewPaymentHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockIReconciliationUseCase(ctrl), refunds)
		r := newPaymentRouter(h)

		refunds.EXPECT().Refund(gomock.Any(), "pay-1", int64(1000)).Return(
			entities.Payment{ID: "pay-1", Status: entities.PaymentStatusCompleted, RefundedAmount: 1000},
			entities.RefundResult{RefundID: "r-1", Status: "approved", Amount: 1000},
			nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/pay-1/refunds", bytes.NewBufferString(`{"amount":1000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["refund_id"] != "r-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestMapPaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidPaymentID, http.StatusBadRequest},
		{usecase.ErrInvalidRegistrationID, http.StatusBadRequest},
		{usecase.ErrInvalidRefundAmount, http.StatusBadRequest},
		{entities.ErrUnsupportedGateway, http.StatusBadRequest},
		{usecase.ErrPaymentNotFound, http.StatusNotFound},
		{usecase.ErrRegistrationNotFound, http.StatusNotFound},
		{usecase.ErrRegistrationNotOpen, http.StatusConflict},
		{entities.ErrAlreadyCompleted, http.StatusConflict},
		{usecase.ErrPaymentNotRefundable, http.StatusConflict},
		{entities.ErrAmountExceedsCaptured, http.StatusBadRequest},
		{entities.ErrRefundUnsupported, http.StatusUnprocessableEntity},
		{entities.ErrMissingCorrelationData, http.StatusConflict},
		{entities.ErrProviderUnavailable, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapPaymentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
