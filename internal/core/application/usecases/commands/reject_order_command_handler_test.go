package commands_test

import (
	"encoding/json"
	"testing"

	"localstore/internal/adapters/out/docstore"
	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRejectOrderCommandHandler_Handle_Success(t *testing.T) {
	m := newTestStore(t)
	require.NoError(t, m.Delete(t.Context(), "/Orders/NewOrders/o1"))
	require.NoError(t, m.Put(t.Context(), "/Accounts/DeliveryPartner/OnlineDeliveryPartner/OrderDelivering/9876543210",
		map[string]string{"phoneNumber": testPhone, "status": "Accepted"}))
	alerts := &alertSpy{}
	h := commands.NewRejectOrderCommandHandler(m, &storeExecutor{store: m}, alerts, kernel.FixedClock{At: testNow})
	cmd, err := commands.NewRejectOrderCommand(testPhone, testOrderID)
	require.NoError(t, err)

	require.NoError(t, h.Handle(t.Context(), cmd))

	rejected := readDoc(t, m, "/Accounts/DeliveryPartner/9876543210/Orders/RejectedOrders/o1")
	assert.Equal(t, "Rejected", rejected["status"])
	assert.Equal(t, "o1-1714557600000", rejected["rejectionId"])
	assert.Equal(t, "2024-05-01T10:00:00.000Z", rejected["timestamp"])
	assert.Equal(t, "WELCOME", rejected["coupon"])

	var original map[string]any
	require.NoError(t, json.Unmarshal([]byte(testOrder), &original))
	assert.Equal(t, original, readDoc(t, m, "/Orders/NewOrders/o1"), "the shared queue gets the order back untouched")

	waiting := readDoc(t, m, "/Accounts/DeliveryPartner/OnlineDeliveryPartner/WaitingForOrders/9876543210")
	assert.Equal(t, "waiting", waiting["status"])
	assert.False(t, m.Exists("/Accounts/DeliveryPartner/OnlineDeliveryPartner/OrderDelivering/9876543210"))
	assert.False(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/NewOrders/o1"))

	assert.Equal(t, []string{"9876543210/o1"}, alerts.forgotten)
}

func TestRejectOrderCommandHandler_Handle_RegistryMoveAlwaysRuns(t *testing.T) {
	m := newTestStore(t)
	exec := &storeExecutor{store: m}
	h := commands.NewRejectOrderCommandHandler(m, exec, &alertSpy{}, kernel.FixedClock{At: testNow})
	cmd, _ := commands.NewRejectOrderCommand(testPhone, testOrderID)

	require.NoError(t, h.Handle(t.Context(), cmd))

	var paths []string
	for _, s := range exec.last().Writes() {
		paths = append(paths, s.String())
	}
	assert.Contains(t, paths, "PUT /Accounts/DeliveryPartner/OnlineDeliveryPartner/WaitingForOrders/9876543210")
	assert.Contains(t, paths, "DELETE /Accounts/DeliveryPartner/OnlineDeliveryPartner/OrderDelivering/9876543210")
	assert.Len(t, exec.last().Retirements(), 1)
}

func TestRejectOrderCommandHandler_Handle_NotFound(t *testing.T) {
	m := docstore.NewMemory()
	exec := new(MockPlanExecutor)
	alerts := &alertSpy{}
	h := commands.NewRejectOrderCommandHandler(m, exec, alerts, kernel.FixedClock{At: testNow})
	cmd, _ := commands.NewRejectOrderCommand(testPhone, testOrderID)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
	exec.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	assert.Empty(t, alerts.forgotten)
}

func TestRejectOrderCommandHandler_Handle_PartialFailureKeepsOrder(t *testing.T) {
	m := newTestStore(t)
	m.Inject(docstore.Fault{Method: "PUT", Path: "/Accounts/DeliveryPartner/OnlineDeliveryPartner/*"})
	alerts := &alertSpy{}
	h := commands.NewRejectOrderCommandHandler(m, &storeExecutor{store: m}, alerts, kernel.FixedClock{At: testNow})
	cmd, _ := commands.NewRejectOrderCommand(testPhone, testOrderID)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRemoteCallFailed)
	assert.True(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/NewOrders/o1"))
	assert.Empty(t, alerts.forgotten)

	m.ClearFaults()
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.False(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/NewOrders/o1"))
}
