package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"medledger/internal/consent"
	"medledger/internal/platform/clock"
	"medledger/internal/platform/middleware"
	"medledger/internal/transport/http/mocks"
	id "medledger/pkg/domain"
	dErrors "medledger/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks

func newTestHandler(consentSvc ConsentService) *Handler {
	return &Handler{
		logger:  slog.New(slog.DiscardHandler),
		consent: consentSvc,
		clock:   clock.NewManual(0),
	}
}

// asCaller attaches the dispatcher-resolved principal the way the middleware
// chain would.
func asCaller(req *http.Request, principal string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyCaller, principal)
	return req.WithContext(ctx)
}

// withURLParam injects a chi route parameter for handlers called outside a
// router.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleGrantConsent_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	mockConsent.EXPECT().
		Grant(gomock.Any(), id.Principal("alice"), uint64(100), consent.GrantRequest{
			ProviderID:      "gen-hospital",
			DataCategories:  "Labs",
			Purpose:         "diagnosis",
			DurationTicks:   1000,
			CanShareFurther: true,
		}).
		Return(id.ConsentID(1), nil).
		Times(1)

	handler := newTestHandler(mockConsent)

	body, err := json.Marshal(grantConsentRequest{
		ProviderID:      "gen-hospital",
		DataCategories:  "Labs",
		Purpose:         "diagnosis",
		DurationTicks:   1000,
		CanShareFurther: true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/consents", bytes.NewReader(body))
	req.Header.Set(middleware.TickHeader, "100")
	req = asCaller(req, "alice")

	w := httptest.NewRecorder()
	handler.handleGrantConsent(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp grantConsentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ConsentID)
	assert.Equal(t, uint64(1100), resp.ExpiresAt)
}

func TestHandleGrantConsent_MissingCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	handler := newTestHandler(mockConsent)

	req := httptest.NewRequest("POST", "/consents", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	handler.handleGrantConsent(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleGrantConsent_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	handler := newTestHandler(mockConsent)

	req := httptest.NewRequest("POST", "/consents", bytes.NewReader([]byte(`{not json`)))
	req = asCaller(req, "alice")

	w := httptest.NewRecorder()
	handler.handleGrantConsent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGrantConsent_MalformedTickHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	handler := newTestHandler(mockConsent)

	req := httptest.NewRequest("POST", "/consents", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(middleware.TickHeader, "not-a-tick")
	req = asCaller(req, "alice")

	w := httptest.NewRecorder()
	handler.handleGrantConsent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGrantConsent_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	mockConsent.EXPECT().
		Grant(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(id.ConsentID(0), dErrors.New(dErrors.CodeInvalidDuration, "duration out of range")).
		Times(1)

	handler := newTestHandler(mockConsent)

	req := httptest.NewRequest("POST", "/consents", bytes.NewReader([]byte(`{"provider_id":"x","purpose":"p","duration_ticks":1}`)))
	req.Header.Set(middleware.TickHeader, "100")
	req = asCaller(req, "alice")

	w := httptest.NewRecorder()
	handler.handleGrantConsent(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(dErrors.CodeInvalidDuration), resp["error"])
}

func TestHandleRevokeConsent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockConsent := mocks.NewMockConsentService(ctrl)
		mockConsent.EXPECT().
			Revoke(gomock.Any(), id.Principal("alice"), uint64(150), id.ConsentID(7)).
			Return(nil).
			Times(1)

		handler := newTestHandler(mockConsent)

		req := httptest.NewRequest("POST", "/consents/7/revoke", nil)
		req.Header.Set(middleware.TickHeader, "150")
		req = asCaller(req, "alice")
		req = withURLParam(req, "id", "7")

		w := httptest.NewRecorder()
		handler.handleRevokeConsent(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := newTestHandler(mocks.NewMockConsentService(ctrl))

		req := httptest.NewRequest("POST", "/consents/zero/revoke", nil)
		req.Header.Set(middleware.TickHeader, "150")
		req = asCaller(req, "alice")
		req = withURLParam(req, "id", "zero")

		w := httptest.NewRecorder()
		handler.handleRevokeConsent(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockConsent := mocks.NewMockConsentService(ctrl)
		mockConsent.EXPECT().
			Revoke(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeConsentNotFound, "consent not found")).
			Times(1)

		handler := newTestHandler(mockConsent)

		req := httptest.NewRequest("POST", "/consents/7/revoke", nil)
		req.Header.Set(middleware.TickHeader, "150")
		req = asCaller(req, "alice")
		req = withURLParam(req, "id", "7")

		w := httptest.NewRecorder()
		handler.handleRevokeConsent(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleConsentValidity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	mockConsent.EXPECT().
		IsValid(gomock.Any(), id.ConsentID(3), uint64(500)).
		Return(true, nil).
		Times(1)

	handler := newTestHandler(mockConsent)

	req := httptest.NewRequest("GET", "/consents/3/valid", nil)
	req.Header.Set(middleware.TickHeader, "500")
	req = withURLParam(req, "id", "3")

	w := httptest.NewRecorder()
	handler.handleConsentValidity(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp validityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(3), resp.ConsentID)
	assert.True(t, resp.Valid)
	assert.Equal(t, uint64(500), resp.Tick)
}

func TestHandleConsentValidity_FallsBackToLocalClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConsent := mocks.NewMockConsentService(ctrl)
	mockConsent.EXPECT().
		IsValid(gomock.Any(), id.ConsentID(3), uint64(42)).
		Return(false, nil).
		Times(1)

	handler := newTestHandler(mockConsent)
	handler.clock = clock.NewManual(42)

	req := httptest.NewRequest("GET", "/consents/3/valid", nil)
	req = withURLParam(req, "id", "3")

	w := httptest.NewRecorder()
	handler.handleConsentValidity(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp validityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, uint64(42), resp.Tick)
}
