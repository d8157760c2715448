package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand flips a partner's online switch.
type SetAvailabilityCommand struct {
	phone        kernel.Key
	availability partner.Availability

	guard guard.ConstructorGuard
}

func NewSetAvailabilityCommand(phone, availability string) (SetAvailabilityCommand, error) {
	p, phoneErr := kernel.NewKey("phone", phone)
	a, availabilityErr := partner.ParseAvailability(availability)
	if err := errors.Join(phoneErr, availabilityErr); err != nil {
		return SetAvailabilityCommand{}, err
	}
	return SetAvailabilityCommand{
		phone:        p,
		availability: a,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetAvailabilityCommand) Phone() kernel.Key {
	return c.phone
}

func (c SetAvailabilityCommand) Availability() partner.Availability {
	return c.availability
}

func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}
