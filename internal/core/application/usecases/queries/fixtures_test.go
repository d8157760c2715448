package queries_test

import (
	"context"
	"testing"
	"time"

	"localstore/internal/adapters/out/docstore"
	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPhone = "9876543210"

var testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

const partnerTree = `{
	"Accounts": {
		"Stores": {
			"s1": {"profile": {"categories": ["Dairy"], "account": {"userId": "s1"}}}
		},
		"DeliveryPartner": {
			"9876543210": {
				"profile": {"status": "online", "timestamp": "2024-05-01T07:00:00.000Z", "personalInfo": {"name": "Ravi"}},
				"Orders": {
					"NewOrders": {
						"n1": {"orderId": "n1", "timestamp": "2024-05-01T09:00:00.000Z"},
						"n2": {"orderId": "n2", "timestamp": "2024-05-01T09:30:00.000Z"}
					},
					"AcceptedOrder": {
						"a1": {
							"orderId": "a1",
							"status": "Accepted",
							"timestamp": "2024-05-01T08:00:00.000Z",
							"storesWithProducts": {
								"s1": {"userId": "s1", "pickUp": true, "pickupTimestamp": "2024-05-01T08:20:00.000Z"},
								"s2": {"userId": "s2", "pickUp": false}
							}
						},
						"o9": {"orderId": "o9", "timestamp": "2024-05-01T06:00:00.000Z"}
					},
					"OutForDelivery": {
						"o9": {"orderId": "o9", "status": "Out For Delivery", "timestamp": "2024-05-01T06:00:00.000Z"}
					},
					"RejectedOrders": {
						"r1": {"orderId": "r1", "status": "Rejected", "timestamp": "2024-05-01T08:30:00.000Z"},
						"r2": {"orderId": "r2", "status": "Rejected"}
					},
					"DeliveredOrders": {
						"d1": {"orderId": "d1"},
						"d2": {"orderId": "d2"},
						"d3": {"orderId": "d3"}
					},
					"CanceledOrders": {
						"c1": {"orderId": "c1"}
					}
				}
			}
		}
	}
}`

const storeTree = `{
	"Accounts": {
		"Stores": {
			"s1": {
				"profile": {"categories": ["Dairy"], "account": {"userId": "s1"}},
				"Orders": {
					"NewOrder": {
						"p1": {"orderId": "p1", "status": "New Order", "timestamp": "2024-05-01T09:45:00.000Z", "deliveryPartnerNumber": "9876543210"},
						"p2": {"orderId": "p2", "status": "Completed", "timestamp": "2024-05-01T09:50:00.000Z"}
					},
					"PreviousOrders": {
						"2023": {"12": {"31": {"y1": {"orderId": "y1", "status": "Completed", "timestamp": "2023-12-31T10:00:00.000Z"}}}},
						"2024": {
							"04": {
								"29": {"x3": {"orderId": "x3", "status": "Completed", "timestamp": "2024-04-29T11:00:00.000Z"}},
								"30": {
									"x2": {"orderId": "x2", "status": "Completed", "timestamp": "2024-04-30T15:00:00.000Z"},
									"x4": {"orderId": "x4", "status": "Completed", "timestamp": "2024-04-20T15:00:00.000Z"}
								}
							},
							"05": {
								"01": {
									"x1": {"orderId": "x1", "status": "Completed", "timestamp": "2024-05-01T09:30:00.000Z"},
									"x0": {"orderId": "x0", "status": "Completed"}
								}
							},
							"10": {"02": {"z1": {"orderId": "z1", "status": "Completed"}}}
						},
						"notes": {"k": "v"}
					}
				}
			}
		}
	}
}`

func newTestStore(t *testing.T, tree string) *docstore.Memory {
	t.Helper()
	m := docstore.NewMemory()
	require.NoError(t, m.Load([]byte(tree)))
	return m
}

type MockJournalRepository struct{ mock.Mock }

func (m *MockJournalRepository) Add(ctx context.Context, e *journal.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockJournalRepository) Update(ctx context.Context, e *journal.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockJournalRepository) Get(ctx context.Context, id kernel.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if e := args.Get(0); e != nil {
		return e.(*journal.Entry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJournalRepository) ListByOrder(ctx context.Context, orderID string) ([]*journal.Entry, error) {
	args := m.Called(ctx, orderID)
	if e := args.Get(0); e != nil {
		return e.([]*journal.Entry), args.Error(1)
	}
	return nil, args.Error(1)
}
