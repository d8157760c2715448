package http

import (
	"encoding/json"
	"time"

	"localstore/internal/core/application/usecases/queries"
	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/session"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Role     string `json:"role"`
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type AvailabilityRequest struct {
	Status string `json:"status"`
}

type ReleaseRequest struct {
	Mode string `json:"mode"`
}

type Session struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}

func toSession(s *session.Session) Session {
	return Session{
		UserID:    s.UserID().String(),
		Role:      s.Role().String(),
		IssuedAt:  s.IssuedAt(),
		ExpiresAt: s.ExpiresAt(),
	}
}

// Order is an order as the partner app lists it. Document carries the stored
// order unchanged.
type Order struct {
	ID       string          `json:"orderId"`
	Status   string          `json:"status"`
	At       *time.Time      `json:"timestamp,omitempty"`
	Document json.RawMessage `json:"order"`
}

func toOrder(v queries.OrderView) (Order, error) {
	doc, err := json.Marshal(v.Order)
	if err != nil {
		return Order{}, err
	}
	o := Order{ID: v.ID, Status: v.Status.String(), Document: doc}
	if !v.At.IsZero() {
		at := v.At
		o.At = &at
	}
	return o, nil
}

func toOrders(views []queries.OrderView) ([]Order, error) {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		o, err := toOrder(v)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

type RecentOrders struct {
	Orders   []Order    `json:"orders"`
	PolledAt *time.Time `json:"polledAt,omitempty"`
}

type Profile struct {
	Phone        string `json:"phone"`
	Availability string `json:"availability"`
	Profile      any    `json:"profile"`
}

type Outcome struct {
	Count   int    `json:"count"`
	Percent string `json:"percent"`
}

type Analytics struct {
	Total     int     `json:"total"`
	Delivered Outcome `json:"delivered"`
	Canceled  Outcome `json:"canceled"`
	Rejected  Outcome `json:"rejected"`
}

func toAnalytics(r queries.GetPartnerAnalyticsQueryResponse) Analytics {
	return Analytics{
		Total:     r.Total,
		Delivered: Outcome{Count: r.Delivered.Count, Percent: r.Delivered.Percent.StringFixed(1)},
		Canceled:  Outcome{Count: r.Canceled.Count, Percent: r.Canceled.Percent.StringFixed(1)},
		Rejected:  Outcome{Count: r.Rejected.Count, Percent: r.Rejected.Percent.StringFixed(1)},
	}
}

type Alerts struct {
	Ringing []string `json:"ringing"`
}

type Watch struct {
	Focused bool `json:"focused"`
}

type Pickup struct {
	StoreID  string `json:"storeId"`
	PickedUp bool   `json:"pickedUp"`
	Store    any    `json:"store,omitempty"`
	Share    any    `json:"share"`
}

type StoreOrder struct {
	ID       string     `json:"orderId"`
	Status   string     `json:"status"`
	At       *time.Time `json:"timestamp,omitempty"`
	Archived bool       `json:"archived"`
	Record   any        `json:"record"`
}

func toStoreOrders(views []queries.StoreOrderView) []StoreOrder {
	out := make([]StoreOrder, 0, len(views))
	for _, v := range views {
		o := StoreOrder{ID: v.ID, Status: v.Status, Archived: v.Archived, Record: v.Order}
		if !v.At.IsZero() {
			at := v.At
			o.At = &at
		}
		out = append(out, o)
	}
	return out
}

type Archive struct {
	Level  string       `json:"level"`
	Keys   []string     `json:"keys,omitempty"`
	Orders []StoreOrder `json:"orders,omitempty"`
}

type Run struct {
	ID         string     `json:"id"`
	Transition string     `json:"transition"`
	Outcome    string     `json:"outcome"`
	Attempts   int        `json:"attempts"`
	Steps      int        `json:"steps"`
	FailedStep *int       `json:"failedStep,omitempty"`
	LastError  string     `json:"lastError,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func toRun(e *journal.Entry) Run {
	r := Run{
		ID:         e.ID().String(),
		Transition: e.Transition(),
		Outcome:    e.Outcome().String(),
		Attempts:   e.Attempts(),
		Steps:      e.Steps(),
		LastError:  e.LastError(),
		StartedAt:  e.StartedAt(),
		FinishedAt: e.FinishedAt(),
	}
	if step := e.FailedStep(); step >= 0 {
		r.FailedStep = &step
	}
	return r
}
