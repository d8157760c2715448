// Package partner models the delivery partner's availability and the
// OnlineDeliveryPartner registry used for dispatch.
package partner

import (
	"encoding/json"
	"fmt"

	"localstore/internal/pkg/errs"
)

// Availability is the online switch on the partner's profile.
type Availability int

const (
	UnknownAvailability Availability = iota
	Online
	Offline
)

func (a Availability) String() string {
	switch a {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

func ParseAvailability(s string) (Availability, error) {
	switch s {
	case "online":
		return Online, nil
	case "offline":
		return Offline, nil
	default:
		return UnknownAvailability, errs.NewValueIsInvalidErrorWithCause(
			"availability",
			fmt.Errorf("%q is neither online nor offline", s),
		)
	}
}

// Registry is one of the two disjoint sets under OnlineDeliveryPartner.
// A phone number is in at most one of them.
type Registry int

const (
	UnknownRegistry Registry = iota
	WaitingForOrders
	OrderDelivering
)

func (r Registry) String() string {
	switch r {
	case WaitingForOrders:
		return "WaitingForOrders"
	case OrderDelivering:
		return "OrderDelivering"
	default:
		return "Unknown"
	}
}

// Other returns the registry r is disjoint with.
func (r Registry) Other() Registry {
	switch r {
	case WaitingForOrders:
		return OrderDelivering
	case OrderDelivering:
		return WaitingForOrders
	default:
		return UnknownRegistry
	}
}

// Registry entry statuses.
const (
	EntryWaiting        = "waiting"
	EntryAccepted       = "Accepted"
	EntryWaitingForNext = "waiting for another order"
)

// RegistryEntry is the record stored under a registry for one partner.
type RegistryEntry struct {
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// Profile is /Accounts/DeliveryPartner/{phone}/profile.
type Profile struct {
	Status       string          `json:"status,omitempty"`
	Timestamp    string          `json:"timestamp,omitempty"`
	PersonalInfo json.RawMessage `json:"personalInfo,omitempty"`
	VehicleInfo  json.RawMessage `json:"vehicleInfo,omitempty"`
	Address      json.RawMessage `json:"address,omitempty"`
	Documents    json.RawMessage `json:"documents,omitempty"`
}

// Availability reads the online switch; anything but "online" counts as offline.
func (p Profile) Availability() Availability {
	if p.Status == Online.String() {
		return Online
	}
	return Offline
}

// StatusPatch is the profile patch written when the switch flips.
type StatusPatch struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReleaseMode is what a partner chooses after a delivery ends.
type ReleaseMode int

const (
	UnknownRelease ReleaseMode = iota
	WaitForNext
	GoOffline
)

func (m ReleaseMode) String() string {
	switch m {
	case WaitForNext:
		return "waitForNext"
	case GoOffline:
		return "goOffline"
	default:
		return "unknown"
	}
}

func ParseReleaseMode(s string) (ReleaseMode, error) {
	switch s {
	case "waitForNext":
		return WaitForNext, nil
	case "goOffline":
		return GoOffline, nil
	default:
		return UnknownRelease, errs.NewValueIsInvalidErrorWithCause(
			"mode",
			fmt.Errorf("%q is neither waitForNext nor goOffline", s),
		)
	}
}
