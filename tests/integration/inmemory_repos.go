package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"booking-billing-gateway/internal/core/domain"
	"booking-billing-gateway/internal/core/ports"
)

// --- In-Memory Binding Repo ---

type inMemoryBindingRepo struct {
	mu       sync.RWMutex
	byUser   map[string]*domain.CustomerBinding
	byCustID map[string]*domain.CustomerBinding
}

func newInMemoryBindingRepo() *inMemoryBindingRepo {
	return &inMemoryBindingRepo{
		byUser:   make(map[string]*domain.CustomerBinding),
		byCustID: make(map[string]*domain.CustomerBinding),
	}
}

func (r *inMemoryBindingRepo) Create(ctx context.Context, b *domain.CustomerBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[b.UserID]; ok {
		return fmt.Errorf("binding already exists for user %s", b.UserID)
	}
	cp := *b
	r.byUser[b.UserID] = &cp
	r.byCustID[b.ProviderCustomerID] = &cp
	return nil
}

func (r *inMemoryBindingRepo) GetByUserID(ctx context.Context, userID string) (*domain.CustomerBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *inMemoryBindingRepo) GetByProviderCustomerID(ctx context.Context, providerCustomerID string) (*domain.CustomerBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byCustID[providerCustomerID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

// --- In-Memory Payment State Repo ---

type inMemoryStateRepo struct {
	mu      sync.RWMutex
	states  map[string]*domain.PaymentState
	upserts int
}

func newInMemoryStateRepo() *inMemoryStateRepo {
	return &inMemoryStateRepo{states: make(map[string]*domain.PaymentState)}
}

func (r *inMemoryStateRepo) Upsert(ctx context.Context, state *domain.PaymentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *state
	r.states[state.ProviderCustomerID] = &cp
	r.upserts++
	return nil
}

func (r *inMemoryStateRepo) Get(ctx context.Context, providerCustomerID string) (*domain.PaymentState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[providerCustomerID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemoryStateRepo) upsertCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.upserts
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// --- Fake Provider Client ---

// fakeProvider simulates the payment provider: customers tagged with a user
// id, a mutable latest subscription per customer, and hosted checkout URLs.
// Subscription lookups are counted so tests can assert how often the
// authoritative source was consulted.
type fakeProvider struct {
	mu       sync.Mutex
	byUser   map[string]string // userID -> providerCustomerID
	subs     map[string]*domain.SubscriptionSnapshot
	seq      int
	subCalls int
}

var _ ports.ProviderClient = (*fakeProvider)(nil)

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		byUser: make(map[string]string),
		subs:   make(map[string]*domain.SubscriptionSnapshot),
	}
}

func (p *fakeProvider) FindCustomerByUserID(ctx context.Context, userID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byUser[userID], nil
}

func (p *fakeProvider) CreateCustomer(ctx context.Context, userID, email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	id := fmt.Sprintf("cus_test_%d", p.seq)
	p.byUser[userID] = id
	return id, nil
}

func (p *fakeProvider) LatestSubscription(ctx context.Context, providerCustomerID string) (*domain.SubscriptionSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subCalls++
	sub, ok := p.subs[providerCustomerID]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (p *fakeProvider) CreateCheckoutSession(ctx context.Context, params ports.CheckoutSessionParams) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	return fmt.Sprintf("https://checkout.test/session/cs_%d", p.seq), nil
}

// setSubscription replaces the customer's latest subscription, as if the
// provider-side state just changed.
func (p *fakeProvider) setSubscription(providerCustomerID string, sub *domain.SubscriptionSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sub == nil {
		delete(p.subs, providerCustomerID)
		return
	}
	cp := *sub
	p.subs[providerCustomerID] = &cp
}

func (p *fakeProvider) subscriptionCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subCalls
}

func activeSubscription(id, priceID string, now time.Time) *domain.SubscriptionSnapshot {
	return &domain.SubscriptionSnapshot{
		ID:                 id,
		Status:             "active",
		PriceID:            priceID,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
		PaymentMethod:      "visa ****4242",
		Created:            now,
	}
}
