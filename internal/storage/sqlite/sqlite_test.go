package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "dinelink-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedEvent(t *testing.T, store *SQLiteStore) *models.Event {
	t.Helper()
	event := &models.Event{Name: "Dim sum", OrganizerID: "organizer"}
	if err := store.CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	return event
}

func seedBill(t *testing.T, store *SQLiteStore, eventID string) *models.Bill {
	t.Helper()
	bill := &models.Bill{
		EventID:       eventID,
		Subtotal:      money("360"),
		ServiceCharge: money("36"),
		TaxAmount:     decimal.Zero,
		TipAmount:     money("40"),
		TotalAmount:   money("436"),
		CreatedBy:     "organizer",
	}
	if err := store.CreateBill(context.Background(), bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	return bill
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event := seedEvent(t, store)

	t.Run("CreateBill fills defaults", func(t *testing.T) {
		bill := seedBill(t, store, event.ID)

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.Status != models.BillStatusDraft {
			t.Errorf("Status = %s, want draft", bill.Status)
		}
		if bill.Currency != "HKD" {
			t.Errorf("Currency = %s, want HKD", bill.Currency)
		}
		if bill.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetBill keeps decimal amounts exact", func(t *testing.T) {
		original := &models.Bill{
			EventID:       event.ID,
			Subtotal:      money("133.33"),
			ServiceCharge: money("13.33"),
			TaxAmount:     decimal.Zero,
			TipAmount:     decimal.Zero,
			TotalAmount:   money("146.66"),
			CreatedBy:     "organizer",
		}
		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if !retrieved.Subtotal.Equal(money("133.33")) {
			t.Errorf("Subtotal = %s, want 133.33", retrieved.Subtotal)
		}
		if !retrieved.TotalAmount.Equal(money("146.66")) {
			t.Errorf("TotalAmount = %s, want 146.66", retrieved.TotalAmount)
		}
		if retrieved.Items != nil {
			t.Error("GetBill should not load items")
		}
	})

	t.Run("GetBill returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetBill(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want storage.ErrNotFound", err)
		}
	})

	t.Run("GetBillWithItems loads items and assignments in order", func(t *testing.T) {
		bill := seedBill(t, store, event.ID)
		items := []*models.BillItem{
			{Name: "Har gow", Price: money("200"), IsShared: true},
			{Name: "Milk tea", NameChinese: "奶茶", Price: money("32"), Quantity: 5, Category: "drink"},
		}
		if err := store.CreateBillItems(ctx, bill.ID, items); err != nil {
			t.Fatalf("CreateBillItems failed: %v", err)
		}
		if items[0].Quantity != 1 {
			t.Errorf("Quantity default = %d, want 1", items[0].Quantity)
		}

		if err := store.CreateAssignments(ctx, []*models.ItemAssignment{
			{BillItemID: items[0].ID, UserID: "bob", Portion: money("0.5"), Amount: money("100")},
			{BillItemID: items[0].ID, UserID: "alice", Portion: money("0.5"), Amount: money("100")},
			{BillItemID: items[1].ID, UserID: "alice", Portion: money("1"), Amount: money("160")},
		}); err != nil {
			t.Fatalf("CreateAssignments failed: %v", err)
		}

		full, err := store.GetBillWithItems(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBillWithItems failed: %v", err)
		}
		if len(full.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(full.Items))
		}
		if full.Items[0].Name != "Har gow" || !full.Items[0].IsShared {
			t.Errorf("first item = %+v, want shared Har gow", full.Items[0])
		}
		if full.Items[1].NameChinese != "奶茶" || full.Items[1].Quantity != 5 {
			t.Errorf("second item = %+v, want 5 x 奶茶", full.Items[1])
		}
		got := full.Items[0].Assignments
		if len(got) != 2 || got[0].UserID != "bob" || got[1].UserID != "alice" {
			t.Errorf("assignments = %+v, want bob then alice", got)
		}
		if !full.Items[1].Assignments[0].Amount.Equal(money("160")) {
			t.Errorf("amount = %s, want 160", full.Items[1].Assignments[0].Amount)
		}
	})

	t.Run("assignments carry user name and phone", func(t *testing.T) {
		user := models.NewUser("+85291234567", "Carol", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		bill := seedBill(t, store, event.ID)
		items := []*models.BillItem{{Name: "Siu mai", Price: money("48")}}
		if err := store.CreateBillItems(ctx, bill.ID, items); err != nil {
			t.Fatalf("CreateBillItems failed: %v", err)
		}
		if err := store.CreateAssignments(ctx, []*models.ItemAssignment{
			{BillItemID: items[0].ID, UserID: user.ID, Portion: money("1"), Amount: money("48")},
		}); err != nil {
			t.Fatalf("CreateAssignments failed: %v", err)
		}

		got, err := store.ListAssignmentsForItem(ctx, items[0].ID)
		if err != nil {
			t.Fatalf("ListAssignmentsForItem failed: %v", err)
		}
		if len(got) != 1 || got[0].UserName != "Carol" || got[0].UserPhone != "+85291234567" {
			t.Errorf("assignments = %+v, want Carol with phone", got)
		}
	})

	t.Run("duplicate assignment for the same user is rejected", func(t *testing.T) {
		bill := seedBill(t, store, event.ID)
		items := []*models.BillItem{{Name: "Rice", Price: money("10")}}
		if err := store.CreateBillItems(ctx, bill.ID, items); err != nil {
			t.Fatalf("CreateBillItems failed: %v", err)
		}
		err := store.CreateAssignments(ctx, []*models.ItemAssignment{
			{BillItemID: items[0].ID, UserID: "alice", Portion: money("0.5"), Amount: money("5")},
			{BillItemID: items[0].ID, UserID: "alice", Portion: money("0.5"), Amount: money("5")},
		})
		if err == nil {
			t.Error("expected unique constraint violation")
		}
	})

	t.Run("ListBillsByEvent returns newest first", func(t *testing.T) {
		other := seedEvent(t, store)
		first := &models.Bill{EventID: other.ID, CreatedBy: "organizer", CreatedAt: 100}
		second := &models.Bill{EventID: other.ID, CreatedBy: "organizer", CreatedAt: 200}
		for _, b := range []*models.Bill{first, second} {
			if err := store.CreateBill(ctx, b); err != nil {
				t.Fatalf("CreateBill failed: %v", err)
			}
		}

		bills, err := store.ListBillsByEvent(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListBillsByEvent failed: %v", err)
		}
		if len(bills) != 2 || bills[0].ID != second.ID || bills[1].ID != first.ID {
			t.Errorf("bills not newest first: %+v", bills)
		}
	})

	t.Run("UpdateBillStatus", func(t *testing.T) {
		bill := seedBill(t, store, event.ID)
		if err := store.UpdateBillStatus(ctx, bill.ID, models.BillStatusFinalized, 999); err != nil {
			t.Fatalf("UpdateBillStatus failed: %v", err)
		}
		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Status != models.BillStatusFinalized || got.UpdatedAt != 999 {
			t.Errorf("status/updated = %s/%d, want finalized/999", got.Status, got.UpdatedAt)
		}
		if err := store.UpdateBillStatus(ctx, "missing", models.BillStatusFinalized, 1); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("error = %v, want storage.ErrNotFound", err)
		}
	})
}

func TestWithTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event := seedEvent(t, store)
	bill := seedBill(t, store, event.ID)

	items := []*models.BillItem{{Name: "Duck", Price: money("300")}}
	if err := store.CreateBillItems(ctx, bill.ID, items); err != nil {
		t.Fatalf("CreateBillItems failed: %v", err)
	}
	original := []*models.ItemAssignment{
		{BillItemID: items[0].ID, UserID: "alice", Portion: money("1"), Amount: money("300")},
	}
	if err := store.CreateAssignments(ctx, original); err != nil {
		t.Fatalf("CreateAssignments failed: %v", err)
	}

	t.Run("rollback keeps previous assignments", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTx(ctx, func(q storage.Queries) error {
			if err := q.DeleteAssignmentsForItems(ctx, []string{items[0].ID}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("WithTx error = %v, want boom", err)
		}

		got, err := store.ListAssignmentsForItem(ctx, items[0].ID)
		if err != nil {
			t.Fatalf("ListAssignmentsForItem failed: %v", err)
		}
		if len(got) != 1 || got[0].UserID != "alice" {
			t.Errorf("assignments after rollback = %+v, want alice only", got)
		}
	})

	t.Run("commit replaces assignments", func(t *testing.T) {
		err := store.WithTx(ctx, func(q storage.Queries) error {
			if err := q.DeleteAssignmentsForItems(ctx, []string{items[0].ID}); err != nil {
				return err
			}
			return q.CreateAssignments(ctx, []*models.ItemAssignment{
				{BillItemID: items[0].ID, UserID: "bob", Portion: money("0.5"), Amount: money("150")},
				{BillItemID: items[0].ID, UserID: "carol", Portion: money("0.5"), Amount: money("150")},
			})
		})
		if err != nil {
			t.Fatalf("WithTx failed: %v", err)
		}

		got, err := store.ListAssignmentsForItem(ctx, items[0].ID)
		if err != nil {
			t.Fatalf("ListAssignmentsForItem failed: %v", err)
		}
		if len(got) != 2 || got[0].UserID != "bob" || got[1].UserID != "carol" {
			t.Errorf("assignments after commit = %+v, want bob and carol", got)
		}
	})
}

func TestEventsAndMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event := seedEvent(t, store)

	for _, m := range []*models.EventMember{
		{EventID: event.ID, UserID: "organizer", Status: models.MemberConfirmed, Role: models.RoleOrganizer, JoinedAt: 1},
		{EventID: event.ID, UserID: "guest", Status: models.MemberInvited, Role: models.RoleMember, JoinedAt: 2},
	} {
		if err := store.AddEventMember(ctx, m); err != nil {
			t.Fatalf("AddEventMember failed: %v", err)
		}
	}

	if err := store.UpdateEventMemberStatus(ctx, event.ID, "guest", models.MemberConfirmed); err != nil {
		t.Fatalf("UpdateEventMemberStatus failed: %v", err)
	}

	got, err := store.GetEvent(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.Status != "planning" {
		t.Errorf("Status = %s, want planning", got.Status)
	}
	if len(got.Members) != 2 || got.Members[1].Status != models.MemberConfirmed {
		t.Errorf("members = %+v, want guest confirmed", got.Members)
	}

	if _, err := store.GetEventMember(ctx, event.ID, "stranger"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	event := seedEvent(t, store)
	bill := seedBill(t, store, event.ID)

	payment := &models.Payment{
		BillID:      bill.ID,
		PayerID:     "alice",
		RecipientID: "organizer",
		Amount:      money("90.50"),
		Method:      "fps",
	}
	if err := store.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
	if payment.Status != models.PaymentStatusPending || payment.Currency != "HKD" {
		t.Errorf("defaults = %s/%s, want pending/HKD", payment.Status, payment.Currency)
	}

	if err := store.CompletePayment(ctx, payment.ID, "TX-1", "https://proof", 1234); err != nil {
		t.Fatalf("CompletePayment failed: %v", err)
	}

	got, err := store.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if !got.IsCompleted() || got.TransactionID != "TX-1" || got.CompletedAt != 1234 {
		t.Errorf("payment = %+v, want completed with TX-1 at 1234", got)
	}
	if !got.Amount.Equal(money("90.5")) {
		t.Errorf("Amount = %s, want 90.50", got.Amount)
	}

	list, err := store.ListPaymentsByBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("ListPaymentsByBill failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("got %d payments, want 1", len(list))
	}

	if err := store.CompletePayment(ctx, "missing", "", "", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data, err := structpb.NewStruct(map[string]any{"bill_id": "b1", "amount": "90.00"})
	if err != nil {
		t.Fatalf("NewStruct failed: %v", err)
	}
	for i, title := range []string{"first", "second"} {
		n := &models.Notification{
			UserID: "alice",
			Type:   models.NotifyPaymentRequest,
			Title:  title,
			Body:   "body",
			Data:   data,
			SentAt: int64(100 + i),
		}
		if err := store.CreateNotification(ctx, n); err != nil {
			t.Fatalf("CreateNotification failed: %v", err)
		}
	}

	list, err := store.ListNotifications(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list) != 2 || list[0].Title != "second" {
		t.Fatalf("notifications = %+v, want newest first", list)
	}
	if got := list[0].Data.GetFields()["bill_id"].GetStringValue(); got != "b1" {
		t.Errorf("data bill_id = %q, want b1", got)
	}

	count, err := store.CountUnreadNotifications(ctx, "alice")
	if err != nil || count != 2 {
		t.Fatalf("unread = %d (%v), want 2", count, err)
	}

	if err := store.MarkNotificationRead(ctx, list[0].ID, "alice", 200); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if err := store.MarkNotificationRead(ctx, list[1].ID, "mallory", 200); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("marking someone else's notification: error = %v, want storage.ErrNotFound", err)
	}
	if count, _ := store.CountUnreadNotifications(ctx, "alice"); count != 1 {
		t.Errorf("unread = %d, want 1", count)
	}

	if err := store.MarkAllNotificationsRead(ctx, "alice", 300); err != nil {
		t.Fatalf("MarkAllNotificationsRead failed: %v", err)
	}
	if count, _ := store.CountUnreadNotifications(ctx, "alice"); count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}
}
