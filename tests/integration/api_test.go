package integration

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-billing-gateway/config"
	httpHandler "booking-billing-gateway/internal/adapter/http/handler"
	redisStorage "booking-billing-gateway/internal/adapter/storage/redis"
	"booking-billing-gateway/internal/service"
	"booking-billing-gateway/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	testJWTSecret     = "integration-test-jwt-secret-32b!"
	testJWTIssuer     = "booking-auth"
	testWebhookSecret = "whsec_integration_test"
)

// testApp wires the full application stack: real HTTP layer, middleware,
// services, and Redis stores backed by miniredis; storage and the payment
// provider are in-memory fakes.
type testApp struct {
	server   *httptest.Server
	redis    *miniredis.Miniredis
	rdb      *goredis.Client
	provider *fakeProvider
	bindings *inMemoryBindingRepo
	states   *inMemoryStateRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	monitorCfg := config.MonitorConfig{
		WindowSize:         100,
		FailureListSize:    20,
		Retention:          168 * time.Hour,
		UnhealthyBelow:     0.80,
		DegradedBelow:      0.95,
		LatencyWarning:     5 * time.Second,
		StaleSuccessCutoff: time.Hour,
	}

	outcomeStore := redisStorage.NewOutcomeStore(rdb, monitorCfg)
	suppressionStore := redisStorage.NewSuppressionStore(rdb)

	provider := newFakeProvider()
	bindings := newInMemoryBindingRepo()
	states := newInMemoryStateRepo()

	log := logger.New("debug", false)
	tokenSvc := service.NewJWTTokenService(testJWTSecret, testJWTIssuer)
	monitorSvc := service.NewMonitorService(
		outcomeStore,
		suppressionStore,
		nil, // no alert collaborator in tests
		monitorCfg,
		config.AlertConfig{Cooldown: time.Hour},
		true,
		log,
	)
	reconcilerSvc := service.NewReconcilerService(provider, states, bindings, log)
	checkoutSvc := service.NewCheckoutService(provider, bindings, states, log)
	ingestSvc := service.NewIngestService(testWebhookSecret, reconcilerSvc, monitorSvc, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CheckoutSvc: checkoutSvc,
		Reconciler:  reconcilerSvc,
		Ingestor:    ingestSvc,
		Monitor:     monitorSvc,
		TokenSvc:    tokenSvc,
		Logger:      log,
	})

	return &testApp{
		server:   httptest.NewServer(router),
		redis:    mr,
		rdb:      rdb,
		provider: provider,
		bindings: bindings,
		states:   states,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.rdb.Close()
	a.redis.Close()
}

func (a *testApp) issueToken(t *testing.T, userID, email string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"iss":   testJWTIssuer,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (a *testApp) authedRequest(t *testing.T, method, path, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// postEvent delivers a signed provider event to the webhook endpoint.
func (a *testApp) postEvent(t *testing.T, eventID, eventType, customerID string) *http.Response {
	t.Helper()
	payload := []byte(fmt.Sprintf(
		`{"id":%q,"type":%q,"data":{"object":{"id":"obj_1","customer":%q}}}`,
		eventID, eventType, customerID,
	))
	ts := time.Now()
	sig := webhook.ComputeSignature(ts, payload, testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(sig))

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/webhooks/stripe", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Stripe-Signature", header)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Data
}

// decodeJSON parses a bare (un-enveloped) body, as the health endpoints
// return.
func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// TestCheckoutToActiveStateFlow walks the whole billing lifecycle: a fresh
// user creates a checkout session, the provider-side subscription appears,
// the webhook arrives, and the cached state converges to ACTIVE.
func TestCheckoutToActiveStateFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.issueToken(t, "user-1", "user@example.com")

	// Fresh user: state is NO_SUBSCRIPTION before any contact with billing.
	resp := app.authedRequest(t, http.MethodGet, "/api/v1/billing/state", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "NO_SUBSCRIPTION", data["status"])

	// Create a checkout session; the provider customer and binding appear.
	body := []byte(`{"price_id":"price_basic","success_url":"https://app.test/done","cancel_url":"https://app.test/cancel"}`)
	resp = app.authedRequest(t, http.MethodPost, "/api/v1/checkout/sessions", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Contains(t, data["checkout_url"], "https://checkout.test/session/")

	binding, err := app.bindings.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, binding)
	customerID := binding.ProviderCustomerID

	// Provider-side payment completes.
	app.provider.setSubscription(customerID, activeSubscription("sub_1", "price_basic", time.Now()))

	// The provider's event triggers reconciliation.
	resp = app.postEvent(t, "evt_1", "customer.subscription.created", customerID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, true, data["accepted"])

	// The ack returns before reconciliation finishes; wait for convergence.
	require.Eventually(t, func() bool {
		state, err := app.states.Get(context.Background(), customerID)
		return err == nil && state != nil && state.IsActive()
	}, 2*time.Second, 10*time.Millisecond)

	resp = app.authedRequest(t, http.MethodGet, "/api/v1/billing/state", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "sub_1", data["subscription_id"])
	assert.Equal(t, "price_basic", data["price_id"])
	assert.NotEmpty(t, data["current_period_end"])
}

// TestCompleteCheckoutReconcilesEagerly covers the return-from-checkout
// race: the browser lands before the provider event arrives, and the
// complete endpoint must not serve the stale NO_SUBSCRIPTION snapshot.
func TestCompleteCheckoutReconcilesEagerly(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.issueToken(t, "user-2", "two@example.com")

	body := []byte(`{"price_id":"price_basic","success_url":"https://app.test/done","cancel_url":"https://app.test/cancel"}`)
	resp := app.authedRequest(t, http.MethodPost, "/api/v1/checkout/sessions", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	binding, err := app.bindings.GetByUserID(context.Background(), "user-2")
	require.NoError(t, err)
	require.NotNil(t, binding)
	app.provider.setSubscription(binding.ProviderCustomerID, activeSubscription("sub_2", "price_basic", time.Now()))

	// No webhook delivered yet: complete must re-fetch from the provider.
	resp = app.authedRequest(t, http.MethodPost, "/api/v1/checkout/complete", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "ACTIVE", data["status"])
	assert.Equal(t, "sub_2", data["subscription_id"])
}

func TestDoubleCheckoutRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.issueToken(t, "user-3", "three@example.com")
	body := []byte(`{"price_id":"price_basic","success_url":"https://app.test/done","cancel_url":"https://app.test/cancel"}`)

	resp := app.authedRequest(t, http.MethodPost, "/api/v1/checkout/sessions", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	binding, err := app.bindings.GetByUserID(context.Background(), "user-3")
	require.NoError(t, err)
	app.provider.setSubscription(binding.ProviderCustomerID, activeSubscription("sub_3", "price_basic", time.Now()))

	resp = app.authedRequest(t, http.MethodPost, "/api/v1/checkout/sessions", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestWebhookInvalidSignatureRecordedAsFailure(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	payload := []byte(`{"id":"evt_bad","type":"invoice.paid","data":{"object":{"customer":"cus_x"}}}`)
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/stripe", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A single failure in an otherwise empty window drops the success
	// rate to zero, which reads as UNHEALTHY and flips the endpoint to 503.
	resp2, err := http.Get(app.server.URL + "/health/webhooks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
	data := decodeJSON(t, resp2)
	assert.Equal(t, "UNHEALTHY", data["status"])
}

func TestWebhookUnknownTypeAckedAndIgnored(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp := app.postEvent(t, "evt_x", "charge.refunded", "cus_x")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, false, data["accepted"])

	// Ignored events are not recorded; the window stays empty and healthy.
	resp2, err := http.Get(app.server.URL + "/health/webhooks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	data = decodeJSON(t, resp2)
	assert.Equal(t, "HEALTHY", data["status"])
}

func TestWebhookHealthReflectsSuccesses(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.provider.setSubscription("cus_health", activeSubscription("sub_h", "price_basic", time.Now()))

	for i := 0; i < 3; i++ {
		resp := app.postEvent(t, fmt.Sprintf("evt_h%d", i), "invoice.paid", "cus_health")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	require.Eventually(t, func() bool {
		resp, err := http.Get(app.server.URL + "/health/webhooks")
		if err != nil {
			return false
		}
		data := decodeJSON(t, resp)
		stats, ok := data["stats"].(map[string]interface{})
		return ok && data["status"] == "HEALTHY" && stats["successes"] == float64(3)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/api/v1/billing/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
