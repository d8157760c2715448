// Package seed fills a document store with fake customer orders for local
// development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

type product struct {
	name     string
	category string
	unit     string
}

var catalog = []product{
	{"Milk", "Dairy", "L"},
	{"Curd", "Dairy", "kg"},
	{"Paneer", "Dairy", "g"},
	{"Apple", "Fruits", "kg"},
	{"Banana", "Fruits", "dozen"},
	{"Tomato", "Vegetables", "kg"},
	{"Onion", "Vegetables", "kg"},
	{"Bread", "Bakery", "pcs"},
	{"Rusk", "Bakery", "pack"},
}

// Progress is told about every order written.
type Progress interface {
	Add(n int) error
}

// Seeder writes orders to the shared NewOrders queue and, for every listed
// partner, to the partner's NewOrders collection.
type Seeder struct {
	store    ports.DocumentStore
	fake     faker.Faker
	clock    kernel.Clock
	partners []kernel.Key
	logger   *slog.Logger
}

func NewSeeder(store ports.DocumentStore, clock kernel.Clock, partners []string, logger *slog.Logger) (*Seeder, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	keys := make([]kernel.Key, 0, len(partners))
	for _, p := range partners {
		k, err := kernel.NewKey("phone", p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return &Seeder{
		store:    store,
		fake:     faker.New(),
		clock:    clock,
		partners: keys,
		logger:   logger.With("component", "seed"),
	}, nil
}

// Seed writes n orders and returns their ids.
func (s *Seeder) Seed(ctx context.Context, n int, progress Progress) ([]string, error) {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		o := s.Order(s.clock.Now().Add(-time.Duration(n-i) * time.Minute))
		id := o["orderId"].(string)
		key, err := kernel.NewKey("orderId", id)
		if err != nil {
			return ids, err
		}

		if path, ok := docpath.Mirror(order.NewOrders, key); ok {
			if err = s.store.Put(ctx, path, o); err != nil {
				return ids, fmt.Errorf("seed order %s: %w", id, err)
			}
		}
		for _, phone := range s.partners {
			if err = s.store.Put(ctx, docpath.PartnerOrder(phone, order.NewOrders, key), o); err != nil {
				return ids, fmt.Errorf("seed order %s for %s: %w", id, phone, err)
			}
		}

		ids = append(ids, id)
		if progress != nil {
			_ = progress.Add(1)
		}
	}
	s.logger.InfoContext(ctx, "Orders seeded", "count", len(ids), "partners", len(s.partners))
	return ids, nil
}

// Order builds one pending order placed at at.
func (s *Seeder) Order(at time.Time) map[string]any {
	items := map[string]any{}
	subtotal := 0.0
	for range s.fake.IntBetween(1, 4) {
		p := catalog[s.fake.IntBetween(0, len(catalog)-1)]
		price := s.fake.Float64(2, 10, 300)
		qty := s.fake.IntBetween(1, 3)
		items[p.name] = map[string]any{
			"quantity": qty,
			"unit":     p.unit,
			"price":    price,
			"category": p.category,
		}
		subtotal += price * float64(qty)
	}

	const deliveryCharge = 20
	return map[string]any{
		"orderId": cuid.New(),
		"status":  "Pending",
		"items":   items,
		"address": map[string]any{
			"name":  s.fake.Person().Name(),
			"phone": s.fake.Phone().Number(),
			"city":  s.fake.Address().City(),
		},
		"userId":       cuid.New(),
		"orderAddress": cuid.New(),
		"payment": map[string]any{
			"method":         "cod",
			"subtotal":       subtotal,
			"deliveryCharge": deliveryCharge,
			"total":          subtotal + deliveryCharge,
			"status":         "pending",
		},
		"delivery":  map[string]any{"method": "standard", "estimatedTime": "30 min", "charge": deliveryCharge},
		"timestamp": kernel.Timestamp(at),
	}
}
