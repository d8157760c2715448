package session

import (
	"fmt"

	"localstore/internal/pkg/errs"
)

// Role selects which half of the product a user works in.
type Role int

const (
	UnknownRole Role = iota
	DeliveryPartner
	StorePartner
)

func (r Role) String() string {
	switch r {
	case DeliveryPartner:
		return "deliveryPartner"
	case StorePartner:
		return "storePartner"
	default:
		return "unknown"
	}
}

// AccountRoot is the /Accounts child that holds users of role r.
func (r Role) AccountRoot() string {
	switch r {
	case DeliveryPartner:
		return "DeliveryPartner"
	case StorePartner:
		return "Stores"
	default:
		return ""
	}
}

func (r Role) Validate() error {
	if r != DeliveryPartner && r != StorePartner {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "deliveryPartner":
		return DeliveryPartner, nil
	case "storePartner":
		return StorePartner, nil
	default:
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is neither deliveryPartner nor storePartner", s),
		)
	}
}
