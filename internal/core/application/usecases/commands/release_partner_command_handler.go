package commands

import (
	"context"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/domain/transition"
)

const transitionRelease = "release"

// ReleasePartnerCommandHandler takes the partner out of OrderDelivering and
// either queues them for the next order or switches them offline.
type ReleasePartnerCommandHandler struct {
	executor PlanExecutor
	clock    kernel.Clock
}

func NewReleasePartnerCommandHandler(executor PlanExecutor, clock kernel.Clock) ReleasePartnerCommandHandler {
	return ReleasePartnerCommandHandler{
		executor: executor,
		clock:    clock,
	}
}

func (h ReleasePartnerCommandHandler) Handle(ctx context.Context, command ReleasePartnerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone := command.Phone()
	ts := kernel.Timestamp(h.clock.Now())

	plan := transition.NewPlan(transitionRelease, "", phone.String()).
		Remove(docpath.RegistryEntry(partner.OrderDelivering, phone))

	switch command.Mode() {
	case partner.WaitForNext:
		plan.Put(docpath.RegistryEntry(partner.WaitingForOrders, phone), partner.RegistryEntry{
			PhoneNumber: phone.String(),
			Status:      partner.EntryWaitingForNext,
			Timestamp:   ts,
		})
	case partner.GoOffline:
		plan.Patch(docpath.PartnerProfile(phone), partner.StatusPatch{
			Status:    partner.Offline.String(),
			Timestamp: ts,
		})
	}

	return h.executor.Execute(ctx, plan)
}
