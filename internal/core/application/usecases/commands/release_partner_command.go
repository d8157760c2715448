package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/pkg/guard"
)

var ErrReleasePartnerCommandIsNotConstructed = errors.New(
	"ReleasePartnerCommand must be created via NewReleasePartnerCommand constructor",
)

// ReleasePartnerCommand is the partner's choice once a delivery has ended.
type ReleasePartnerCommand struct {
	phone kernel.Key
	mode  partner.ReleaseMode

	guard guard.ConstructorGuard
}

func NewReleasePartnerCommand(phone, mode string) (ReleasePartnerCommand, error) {
	p, phoneErr := kernel.NewKey("phone", phone)
	m, modeErr := partner.ParseReleaseMode(mode)
	if err := errors.Join(phoneErr, modeErr); err != nil {
		return ReleasePartnerCommand{}, err
	}
	return ReleasePartnerCommand{
		phone: p,
		mode:  m,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ReleasePartnerCommand) Phone() kernel.Key {
	return c.phone
}

func (c ReleasePartnerCommand) Mode() partner.ReleaseMode {
	return c.mode
}

func (c ReleasePartnerCommand) Validate() error {
	return c.guard.Validate(ErrReleasePartnerCommandIsNotConstructed)
}
