package commands_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"localstore/internal/adapters/out/docstore"
	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testPhone   = "9876543210"
	otherPhone  = "9123456780"
	testOrderID = "o1"
)

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

const testOrder = `{
	"orderId": "o1",
	"status": "Pending",
	"items": {
		"Milk": {"quantity": 2, "unit": "L", "price": 60, "category": "Dairy"},
		"Apple": {"quantity": "1", "unit": "kg", "price": 120.5, "category": "Fruits"}
	},
	"address": {"line1": "12 Lake Road"},
	"userId": "u1",
	"orderAddress": "a1",
	"payment": {"method": "cod", "subtotal": 180.5, "deliveryCharge": 20, "total": 200.5, "status": "pending"},
	"delivery": {"method": "standard", "estimatedTime": "30 min", "charge": 20},
	"timestamp": "2024-05-01T09:00:00.000Z",
	"coupon": "WELCOME"
}`

const testTree = `{
	"Accounts": {
		"Stores": {
			"dairy01": {"profile": {"categories": ["Dairy"], "account": {"userId": "dairy01", "password": "milk"}}},
			"veg01": {"profile": {"categories": ["Vegetables", "Fruits"], "account": {"userId": "veg01"}}},
			"bakery01": {"profile": {"categories": ["Bakery"], "account": {"userId": "bakery01"}}}
		},
		"DeliveryPartner": {
			"9876543210": {
				"profile": {"status": "online", "account": {"password": "secret"}},
				"Orders": {"NewOrders": {"o1": ` + testOrder + `}}
			},
			"OnlineDeliveryPartner": {
				"WaitingForOrders": {"9876543210": {"phoneNumber": "9876543210", "status": "waiting", "timestamp": "2024-05-01T08:00:00.000Z"}}
			}
		},
		"Users": {"u1": {"Orders": {"a1": {"status": "Pending", "payment": {"method": "cod", "status": "pending"}}}}}
	},
	"Orders": {"NewOrders": {"o1": ` + testOrder + `}}
}`

func newTestStore(t *testing.T) *docstore.Memory {
	t.Helper()
	m := docstore.NewMemory()
	require.NoError(t, m.Load([]byte(testTree)))
	return m
}

func readDoc(t *testing.T, m *docstore.Memory, path string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(m.Snapshot(path), &doc))
	return doc
}

var (
	partnerOrderPaths = map[string]string{
		"NewOrders":       "/Accounts/DeliveryPartner/9876543210/Orders/NewOrders/o1",
		"AcceptedOrder":   "/Accounts/DeliveryPartner/9876543210/Orders/AcceptedOrder/o1",
		"OutForDelivery":  "/Accounts/DeliveryPartner/9876543210/Orders/OutForDelivery/o1",
		"DeliveredOrders": "/Accounts/DeliveryPartner/9876543210/Orders/DeliveredOrders/o1",
		"CanceledOrders":  "/Accounts/DeliveryPartner/9876543210/Orders/CanceledOrders/o1",
		"RejectedOrders":  "/Accounts/DeliveryPartner/9876543210/Orders/RejectedOrders/o1",
	}
	mirrorOrderPaths = map[string]string{
		"NewOrders":       "/Orders/NewOrders/o1",
		"AcceptedOrders":  "/Orders/AcceptedOrders/o1",
		"OutForDelivery":  "/Orders/OutForDelivery/o1",
		"DeliveredOrders": "/Orders/DeliveredOrders/o1",
		"CanceledOrders":  "/Orders/CanceledOrders/o1",
	}
)

// requireSingleLocation checks that o1 is held in exactly one partner
// collection and one /Orders mirror.
func requireSingleLocation(t *testing.T, m *docstore.Memory, partnerCollection, mirrorCollection string) {
	t.Helper()
	for name, path := range partnerOrderPaths {
		assert.Equal(t, name == partnerCollection, m.Exists(path), "partner collection %s", name)
	}
	for name, path := range mirrorOrderPaths {
		assert.Equal(t, name == mirrorCollection, m.Exists(path), "mirror %s", name)
	}
}

// storeExecutor issues plans straight against a store, without journaling.
type storeExecutor struct {
	store ports.DocumentStore
	plans []*transition.Plan
}

func (e *storeExecutor) Execute(ctx context.Context, plan *transition.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	e.plans = append(e.plans, plan)
	for _, s := range plan.Steps() {
		var err error
		switch s.Method {
		case transition.Put:
			err = e.store.Put(ctx, s.Path, s.Body)
		case transition.Patch:
			err = e.store.Patch(ctx, s.Path, s.Body)
		case transition.Delete:
			err = e.store.Delete(ctx, s.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *storeExecutor) last() *transition.Plan {
	return e.plans[len(e.plans)-1]
}

type MockPlanExecutor struct{ mock.Mock }

func (m *MockPlanExecutor) Execute(ctx context.Context, plan *transition.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type alertSpy struct {
	mu        sync.Mutex
	forgotten []string
}

func (a *alertSpy) Forget(_ context.Context, phone, orderID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forgotten = append(a.forgotten, phone+"/"+orderID)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(s *session.Session) (string, error) {
	args := m.Called(s)
	return args.String(0), args.Error(1)
}
