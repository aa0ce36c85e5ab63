package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRPC("/dinelink.v1.BillService/CreateBill", "ok", 5*time.Millisecond)
	m.ObserveRPC("/dinelink.v1.BillService/CreateBill", "ok", 7*time.Millisecond)
	m.ObserveRPC("/dinelink.v1.BillService/FinalizeBill", "permission_denied", time.Millisecond)
	m.BillFinalized()
	m.Payment("pending")
	m.Payment("completed")
	m.Payment("completed")
	m.NotificationFailed()

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/dinelink.v1.BillService/CreateBill", "ok")); got != 2 {
		t.Errorf("rpc ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.billsFinalized); got != 1 {
		t.Errorf("bills finalized = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.payments.WithLabelValues("completed")); got != 2 {
		t.Errorf("completed payments = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.notificationsFailed); got != 1 {
		t.Errorf("notifications failed = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.rpcDuration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("p", "ok", time.Second)
	m.BillFinalized()
	m.Payment("pending")
	m.NotificationFailed()
}
