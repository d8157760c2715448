package commands

import (
	"context"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/domain/transition"
)

const transitionSetAvailability = "set_availability"

// SetAvailabilityCommandHandler records the switch on the partner profile and
// adds or removes the partner from WaitingForOrders.
type SetAvailabilityCommandHandler struct {
	executor PlanExecutor
	clock    kernel.Clock
}

func NewSetAvailabilityCommandHandler(executor PlanExecutor, clock kernel.Clock) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		executor: executor,
		clock:    clock,
	}
}

func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, command SetAvailabilityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, availability := command.Phone(), command.Availability()
	ts := kernel.Timestamp(h.clock.Now())

	plan := transition.NewPlan(transitionSetAvailability, "", phone.String()).
		Patch(docpath.PartnerProfile(phone), partner.StatusPatch{Status: availability.String(), Timestamp: ts})

	waiting := docpath.RegistryEntry(partner.WaitingForOrders, phone)
	if availability == partner.Online {
		plan.Put(waiting, partner.RegistryEntry{
			PhoneNumber: phone.String(),
			Status:      partner.EntryWaiting,
			Timestamp:   ts,
		})
	} else {
		plan.Remove(waiting)
	}

	return h.executor.Execute(ctx, plan)
}
