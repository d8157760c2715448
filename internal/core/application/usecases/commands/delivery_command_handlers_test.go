package commands_test

import (
	"encoding/json"
	"testing"

	"localstore/internal/adapters/out/docstore"
	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startDelivery(t *testing.T, m *docstore.Memory) {
	t.Helper()
	h := commands.NewStartDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, err := commands.NewStartDeliveryCommand(testPhone, testOrderID)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))
}

func TestStartDeliveryCommandHandler_Handle_Success(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)

	startDelivery(t, m)

	out := readDoc(t, m, "/Accounts/DeliveryPartner/9876543210/Orders/OutForDelivery/o1")
	assert.Equal(t, "Out For Delivery", out["status"])
	assert.Contains(t, out, "storesWithProducts")
	assert.Equal(t, "Out For Delivery", readDoc(t, m, "/Orders/OutForDelivery/o1")["status"])
	assert.Equal(t, "Out For Delivery", readDoc(t, m, "/Accounts/Users/u1/Orders/a1")["status"])
	assert.False(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/AcceptedOrder/o1"))
	assert.False(t, m.Exists("/Orders/AcceptedOrders/o1"))
}

func TestStartDeliveryCommandHandler_Handle_NotAccepted(t *testing.T) {
	m := newTestStore(t)
	h := commands.NewStartDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, _ := commands.NewStartDeliveryCommand(testPhone, testOrderID)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), commands.ErrTransitionNotAllowed)
}

func TestFinishDeliveryCommandHandler_Handle_Complete(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	startDelivery(t, m)
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, err := commands.NewCompleteDeliveryCommand(testPhone, testOrderID)
	require.NoError(t, err)

	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, "Delivered", readDoc(t, m, "/Accounts/DeliveryPartner/9876543210/Orders/DeliveredOrders/o1")["status"])
	assert.Equal(t, "Delivered", readDoc(t, m, "/Orders/DeliveredOrders/o1")["status"])
	user := readDoc(t, m, "/Accounts/Users/u1/Orders/a1")
	assert.Equal(t, "Delivered", user["status"])
	payment := user["payment"].(map[string]any)
	assert.Equal(t, "completed", payment["status"])
	assert.Equal(t, "cod", payment["method"])
	assert.False(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/OutForDelivery/o1"))
	assert.False(t, m.Exists("/Orders/OutForDelivery/o1"))
}

func TestFinishDeliveryCommandHandler_Handle_Cancel(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	startDelivery(t, m)
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, _ := commands.NewCancelDeliveryCommand(testPhone, testOrderID)

	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, "Canceled", readDoc(t, m, "/Accounts/DeliveryPartner/9876543210/Orders/CanceledOrders/o1")["status"])
	assert.True(t, m.Exists("/Orders/CanceledOrders/o1"))
	user := readDoc(t, m, "/Accounts/Users/u1/Orders/a1")
	assert.Equal(t, "Canceled", user["status"])
	assert.Equal(t, "Canceled", user["payment"].(map[string]any)["status"])
}

func TestStartDeliveryCommandHandler_Handle_RetryAfterMirrorDeleteFails(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	m.Inject(docstore.Fault{Method: "DELETE", Path: "/Orders/AcceptedOrders/o1", Times: 1})
	h := commands.NewStartDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, _ := commands.NewStartDeliveryCommand(testPhone, testOrderID)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRemoteCallFailed)
	require.NoError(t, h.Handle(t.Context(), cmd))

	requireSingleLocation(t, m, "OutForDelivery", "OutForDelivery")
}

func TestStartDeliveryCommandHandler_Handle_ResumesFromStaleMirror(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	stale := m.Snapshot("/Orders/AcceptedOrders/o1")
	startDelivery(t, m)
	require.NoError(t, m.Put(t.Context(), "/Orders/AcceptedOrders/o1", json.RawMessage(stale)))

	startDelivery(t, m)

	requireSingleLocation(t, m, "OutForDelivery", "OutForDelivery")
}

func TestFinishDeliveryCommandHandler_Handle_RetryAfterMirrorDeleteFails(t *testing.T) {
	tests := []struct {
		name       string
		newCommand func(phone, orderID string) (commands.FinishDeliveryCommand, error)
		collection string
		wantStatus string
	}{
		{name: "complete", newCommand: commands.NewCompleteDeliveryCommand, collection: "DeliveredOrders", wantStatus: "Delivered"},
		{name: "cancel", newCommand: commands.NewCancelDeliveryCommand, collection: "CanceledOrders", wantStatus: "Canceled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestStore(t)
			acceptOrder(t, m)
			startDelivery(t, m)
			m.Inject(docstore.Fault{Method: "DELETE", Path: "/Orders/OutForDelivery/o1", Times: 1})
			h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
			cmd, err := tt.newCommand(testPhone, testOrderID)
			require.NoError(t, err)

			require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrRemoteCallFailed)
			require.NoError(t, h.Handle(t.Context(), cmd))

			requireSingleLocation(t, m, tt.collection, tt.collection)
			assert.Equal(t, tt.wantStatus, readDoc(t, m, "/Accounts/Users/u1/Orders/a1")["status"])
		})
	}
}

func TestFinishDeliveryCommandHandler_Handle_ResumesFromStaleMirror(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	startDelivery(t, m)
	stale := m.Snapshot("/Orders/OutForDelivery/o1")
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, _ := commands.NewCancelDeliveryCommand(testPhone, testOrderID)
	require.NoError(t, h.Handle(t.Context(), cmd))
	require.NoError(t, m.Put(t.Context(), "/Orders/OutForDelivery/o1", json.RawMessage(stale)))

	require.NoError(t, h.Handle(t.Context(), cmd))
	requireSingleLocation(t, m, "CanceledOrders", "CanceledOrders")

	complete, _ := commands.NewCompleteDeliveryCommand(testPhone, testOrderID)
	require.ErrorIs(t, h.Handle(t.Context(), complete), commands.ErrTransitionNotAllowed)
}

func TestFinishDeliveryCommandHandler_Handle_NotOutForDelivery(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
	cmd, _ := commands.NewCompleteDeliveryCommand(testPhone, testOrderID)

	err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrTransitionNotAllowed)
	assert.True(t, m.Exists("/Accounts/DeliveryPartner/9876543210/Orders/AcceptedOrder/o1"))
}

func TestFinishDeliveryCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	m := newTestStore(t)
	acceptOrder(t, m)
	startDelivery(t, m)
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})
	complete, _ := commands.NewCompleteDeliveryCommand(testPhone, testOrderID)
	require.NoError(t, h.Handle(t.Context(), complete))

	cancel, _ := commands.NewCancelDeliveryCommand(testPhone, testOrderID)
	err := h.Handle(t.Context(), cancel)

	require.ErrorIs(t, err, commands.ErrTransitionNotAllowed)
	assert.Contains(t, err.Error(), "Delivered")
}

func TestFinishDeliveryCommandHandler_Handle_NoCustomerLink(t *testing.T) {
	m := docstore.NewMemory()
	require.NoError(t, m.Put(t.Context(), "/Accounts/DeliveryPartner/9876543210/Orders/OutForDelivery/o1",
		map[string]any{"orderId": "o1", "status": "Out For Delivery"}))
	exec := &storeExecutor{store: m}
	h := commands.NewFinishDeliveryCommandHandler(m, exec)
	cmd, _ := commands.NewCompleteDeliveryCommand(testPhone, testOrderID)

	require.NoError(t, h.Handle(t.Context(), cmd))

	for _, s := range exec.last().Steps() {
		assert.NotContains(t, s.Path, "/Accounts/Users")
	}
	assert.True(t, m.Exists("/Orders/DeliveredOrders/o1"))
}

func TestFinishDeliveryCommandHandler_Handle_NotConstructed(t *testing.T) {
	m := docstore.NewMemory()
	h := commands.NewFinishDeliveryCommandHandler(m, &storeExecutor{store: m})

	err := h.Handle(t.Context(), commands.FinishDeliveryCommand{})

	require.ErrorIs(t, err, commands.ErrFinishDeliveryCommandIsNotConstructed)
	require.NotErrorIs(t, err, errs.ErrObjectNotFound)
}
