package billing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinelink/dinelink/internal/metrics"
	"github.com/dinelink/dinelink/internal/models"
)

func TestCreateBill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("fills total and defaults", func(t *testing.T) {
		bill := f.newBill(t, f.bob)
		assert.Equal(t, models.BillStatusDraft, bill.Status)
		assert.Equal(t, "HKD", bill.Currency)
		assert.Equal(t, "436", bill.TotalAmount.String())
		assert.Equal(t, f.bob.ID, bill.CreatedBy)
		assert.Equal(t, f.clock.Now(ctx).Unix(), bill.CreatedAt)
	})

	t.Run("accepts a matching total", func(t *testing.T) {
		_, err := f.svc.CreateBill(ctx, CreateBillInput{
			EventID: f.event.ID, Subtotal: d("100"), ServiceCharge: d("10"), TotalAmount: d("110.00"),
		}, f.organizer.ID)
		assert.NoError(t, err)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		tests := []struct {
			name string
			in   CreateBillInput
		}{
			{"missing event", CreateBillInput{Subtotal: d("10")}},
			{"zero subtotal", CreateBillInput{EventID: f.event.ID}},
			{"negative tip", CreateBillInput{EventID: f.event.ID, Subtotal: d("10"), TipAmount: d("-1")}},
			{"total mismatch", CreateBillInput{EventID: f.event.ID, Subtotal: d("10"), TotalAmount: d("12")}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.svc.CreateBill(ctx, tt.in, f.organizer.ID)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})

	t.Run("requires organizer or confirmed member", func(t *testing.T) {
		in := CreateBillInput{EventID: f.event.ID, Subtotal: d("10")}

		_, err := f.svc.CreateBill(ctx, in, f.outsider.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = f.svc.CreateBill(ctx, in, f.invited.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = f.svc.CreateBill(ctx, CreateBillInput{EventID: "missing", Subtotal: d("10")}, f.organizer.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddBillItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bill := f.newBill(t, f.organizer)

	items := f.addItems(t, bill,
		ItemInput{Name: "Har gow", NameChinese: "蝦餃", Price: d("48"), IsShared: true, Category: "dim_sum"},
		ItemInput{Name: "Milk tea", Price: d("32"), Quantity: 2},
	)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, bill.ID, items[0].BillID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "64", items[1].TotalCost().String())

	_, err := f.svc.AddBillItems(ctx, bill.ID, f.organizer.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AddBillItems(ctx, bill.ID, f.organizer.ID, []ItemInput{{Name: "", Price: d("1")}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AddBillItems(ctx, bill.ID, f.organizer.ID, []ItemInput{{Name: "Refund", Price: d("-5")}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AddBillItems(ctx, "missing", f.organizer.ID, []ItemInput{{Name: "Rice", Price: d("1")}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.AddBillItems(ctx, bill.ID, f.outsider.ID, []ItemInput{{Name: "Rice", Price: d("1")}})
	assert.ErrorIs(t, err, ErrAccessDenied)

	stored, err := f.store.ListBillItems(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2, "rejected calls must not insert anything")
}

func TestFinalizeBill(t *testing.T) {
	ctx := context.Background()

	t.Run("non-creator non-organizer is unauthorized", func(t *testing.T) {
		f := newFixture(t)
		bill := f.newBill(t, f.carol)

		err := f.svc.FinalizeBill(ctx, bill.ID, f.bob.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)

		stored, err := f.store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BillStatusDraft, stored.Status)
	})

	t.Run("creator may finalize", func(t *testing.T) {
		f := newFixture(t)
		bill := f.newBill(t, f.carol)
		require.NoError(t, f.svc.FinalizeBill(ctx, bill.ID, f.carol.ID))
	})

	t.Run("organizer finalizes and members are told their share", func(t *testing.T) {
		f := newFixture(t)
		bill := f.newBill(t, f.bob)
		f.addItems(t, bill,
			ItemInput{Name: "A", Price: d("200"), IsShared: true},
			ItemInput{Name: "B", Price: d("160"), IsShared: true},
		)
		_, err := f.svc.AutoSplitBill(ctx, bill.ID, f.bob.ID, f.diners(), nil)
		require.NoError(t, err)

		f.clock.Advance(time.Hour)
		require.NoError(t, f.svc.FinalizeBill(ctx, bill.ID, f.organizer.ID))

		stored, err := f.store.GetBill(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BillStatusFinalized, stored.Status)
		assert.Equal(t, f.clock.Now(ctx).Unix(), stored.UpdatedAt)

		sent := f.notifier.ofKind(models.NotifyBillSplit)
		require.Len(t, sent, 4)
		for _, n := range sent {
			assert.Equal(t, "109.00", n.Data["amount"])
			assert.Contains(t, n.Body, "HK$109.00")
		}
	})

	t.Run("finalized bills are frozen", func(t *testing.T) {
		f := newFixture(t)
		bill := f.newBill(t, f.organizer)
		items := f.addItems(t, bill, ItemInput{Name: "Rice", Price: d("20"), IsShared: true})
		require.NoError(t, f.svc.FinalizeBill(ctx, bill.ID, f.organizer.ID))

		err := f.svc.FinalizeBill(ctx, bill.ID, f.organizer.ID)
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = f.svc.AddBillItems(ctx, bill.ID, f.organizer.ID, []ItemInput{{Name: "Beer", Price: d("40")}})
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = f.svc.AssignItemToUsers(ctx, items[0].ID, f.organizer.ID, shares(f.bob.ID, "1"))
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = f.svc.AutoSplitBill(ctx, bill.ID, f.organizer.ID, f.diners(), nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("unknown bill", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.svc.FinalizeBill(ctx, "missing", f.organizer.ID), ErrNotFound)
	})
}

func TestPayments(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithMetrics(metrics.New(reg)))
	bill := f.newBill(t, f.organizer)

	request := PaymentRequestInput{
		BillID:      bill.ID,
		PayerID:     f.bob.ID,
		RecipientID: f.organizer.ID,
		Amount:      d("109"),
		Method:      "fps",
	}

	_, err := f.svc.CreatePaymentRequest(ctx, request, f.organizer.ID)
	assert.ErrorIs(t, err, ErrInvalidState, "draft bills cannot take payment requests")

	require.NoError(t, f.svc.FinalizeBill(ctx, bill.ID, f.organizer.ID))

	t.Run("request validation", func(t *testing.T) {
		bad := request
		bad.Method = "cheque"
		_, err := f.svc.CreatePaymentRequest(ctx, bad, f.organizer.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad = request
		bad.Amount = decimal.Zero
		_, err = f.svc.CreatePaymentRequest(ctx, bad, f.organizer.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)

		bad = request
		bad.RecipientID = bad.PayerID
		_, err = f.svc.CreatePaymentRequest(ctx, bad, f.organizer.ID)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.CreatePaymentRequest(ctx, request, f.outsider.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	payment, err := f.svc.CreatePaymentRequest(ctx, request, f.organizer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, "HKD", payment.Currency)

	requests := f.notifier.ofKind(models.NotifyPaymentRequest)
	require.Len(t, requests, 1)
	assert.Equal(t, f.bob.ID, requests[0].UserID)
	assert.Equal(t, `Alice is requesting HK$109.00 for "Friday dim sum"`, requests[0].Body)
	assert.Equal(t, payment.ID, requests[0].Data["payment_id"])

	t.Run("only the payer can complete", func(t *testing.T) {
		_, err := f.svc.CompletePayment(ctx, payment.ID, f.organizer.ID, "TX1", "")
		assert.ErrorIs(t, err, ErrUnauthorized)

		stored, err := f.store.GetPayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, stored.Status)
	})

	t.Run("payer completes and recipient is notified", func(t *testing.T) {
		done, err := f.svc.CompletePayment(ctx, payment.ID, f.bob.ID, "FPS-123", "https://example.com/proof.png")
		require.NoError(t, err)
		assert.True(t, done.IsCompleted())

		stored, err := f.store.GetPayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
		assert.Equal(t, "FPS-123", stored.TransactionID)
		assert.Equal(t, f.clock.Now(ctx).Unix(), stored.CompletedAt)

		received := f.notifier.ofKind(models.NotifyPaymentReceived)
		require.Len(t, received, 1)
		assert.Equal(t, f.organizer.ID, received[0].UserID)
		assert.Equal(t, "Bob paid you HK$109.00", received[0].Body)
	})

	t.Run("completing again overwrites the evidence", func(t *testing.T) {
		f.clock.Advance(time.Minute)
		_, err := f.svc.CompletePayment(ctx, payment.ID, f.bob.ID, "FPS-456", "")
		require.NoError(t, err)

		stored, err := f.store.GetPayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, "FPS-456", stored.TransactionID)
		assert.Equal(t, f.clock.Now(ctx).Unix(), stored.CompletedAt)

		assert.Len(t, f.notifier.ofKind(models.NotifyPaymentReceived), 1, "recipient is told once")
		const want = `
# HELP dinelink_payments_total Payments created (pending) and completed.
# TYPE dinelink_payments_total counter
dinelink_payments_total{status="completed"} 1
dinelink_payments_total{status="pending"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "dinelink_payments_total"))
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := f.svc.CompletePayment(ctx, "missing", f.bob.ID, "", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListEventBills(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.newBill(t, f.organizer)
	f.clock.Advance(time.Minute)
	second := f.newBill(t, f.bob)

	bills, err := f.svc.ListEventBills(ctx, f.event.ID, f.invited.ID)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, second.ID, bills[0].ID)
	assert.Equal(t, first.ID, bills[1].ID)

	bills, err = f.svc.ListEventBills(ctx, f.event.ID, f.outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)

	bills, err = f.svc.ListEventBills(ctx, "missing", f.organizer.ID)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestGetBillDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	bill := f.newBill(t, f.organizer)
	items := f.addItems(t, bill, ItemInput{Name: "Congee", Price: d("38")})
	_, err := f.svc.AssignItemToUsers(ctx, items[0].ID, f.organizer.ID, shares(f.carol.ID, "1"))
	require.NoError(t, err)

	details, err := f.svc.GetBillDetails(ctx, bill.ID, f.invited.ID)
	require.NoError(t, err, "members of any status can view")
	require.Len(t, details.Items, 1)
	require.Len(t, details.Items[0].Assignments, 1)
	assert.Equal(t, "Carol", details.Items[0].Assignments[0].UserName)
	assert.Equal(t, f.carol.Phone, details.Items[0].Assignments[0].UserPhone)

	_, err = f.svc.GetBillDetails(ctx, bill.ID, f.outsider.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetBillDetails(ctx, "missing", f.organizer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, string, models.NotificationType, string, string, map[string]any) error {
	return errors.New("notification service unavailable")
}

func TestNotificationFailureKeepsWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithNotifier(failingNotifier{}))
	bill := f.newBill(t, f.organizer)
	items := f.addItems(t, bill, ItemInput{Name: "Duck", Price: d("360")})
	_, err := f.svc.AssignItemToUsers(ctx, items[0].ID, f.organizer.ID, shares(f.bob.ID, "1"))
	require.NoError(t, err)

	require.NoError(t, f.svc.FinalizeBill(ctx, bill.ID, f.organizer.ID))
	stored, err := f.store.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusFinalized, stored.Status)

	payment, err := f.svc.CreatePaymentRequest(ctx, PaymentRequestInput{
		BillID: bill.ID, PayerID: f.bob.ID, RecipientID: f.organizer.ID, Amount: d("436"), Method: "fps",
	}, f.organizer.ID)
	require.NoError(t, err)
	requested, err := f.store.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, requested.Status)

	_, err = f.svc.CompletePayment(ctx, payment.ID, f.bob.ID, "FPS-789", "")
	require.NoError(t, err)
	completed, err := f.store.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, completed.Status)
	assert.Equal(t, "FPS-789", completed.TransactionID)
}
