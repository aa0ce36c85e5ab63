package billing

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/clock"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
	"github.com/dinelink/dinelink/internal/storage/sqlite"
)

type sentNotification struct {
	UserID string
	Kind   models.NotificationType
	Title  string
	Body   string
	Data   map[string]any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingNotifier) Notify(_ context.Context, userID string, kind models.NotificationType, title, body string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{userID, kind, title, body, data})
	return nil
}

func (r *recordingNotifier) ofKind(kind models.NotificationType) []sentNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []sentNotification
	for _, n := range r.sent {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// fixture is a dinner with an organizer, three confirmed guests, one
// guest who has not answered yet, and an outsider.
type fixture struct {
	store    storage.Store
	svc      *Service
	notifier *recordingNotifier
	clock    *clock.Fixed
	event    *models.Event

	organizer, bob, carol, dave, invited, outsider *models.User
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "billing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return newFixtureWithStore(t, store, opts...)
}

func newFixtureWithStore(t *testing.T, store storage.Store, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		store:    store,
		notifier: &recordingNotifier{},
		clock:    clock.NewFixed(time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC)),
	}
	opts = append([]Option{WithNotifier(f.notifier), WithClock(f.clock)}, opts...)
	f.svc = New(store, opts...)

	newUser := func(phone, name string) *models.User {
		u := models.NewUser(phone, name, "hash")
		require.NoError(t, store.CreateUser(ctx, u))
		return u
	}
	f.organizer = newUser("+85290000001", "Alice")
	f.bob = newUser("+85290000002", "Bob")
	f.carol = newUser("+85290000003", "Carol")
	f.dave = newUser("+85290000004", "Dave")
	f.invited = newUser("+85290000005", "Erin")
	f.outsider = newUser("+85290000006", "Mallory")

	f.event = &models.Event{Name: "Friday dim sum", OrganizerID: f.organizer.ID, RestaurantName: "Tim Ho Wan"}
	require.NoError(t, store.CreateEvent(ctx, f.event))

	add := func(u *models.User, status models.MemberStatus, role models.MemberRole) {
		require.NoError(t, store.AddEventMember(ctx, &models.EventMember{
			EventID: f.event.ID, UserID: u.ID, Status: status, Role: role, JoinedAt: 1,
		}))
	}
	add(f.organizer, models.MemberConfirmed, models.RoleOrganizer)
	add(f.bob, models.MemberConfirmed, models.RoleMember)
	add(f.carol, models.MemberConfirmed, models.RoleMember)
	add(f.dave, models.MemberConfirmed, models.RoleMember)
	add(f.invited, models.MemberInvited, models.RoleMember)
	return f
}

func (f *fixture) diners() []string {
	return []string{f.organizer.ID, f.bob.ID, f.carol.ID, f.dave.ID}
}

// newBill creates a 360 subtotal bill with 10% service charge and a 40 tip.
func (f *fixture) newBill(t *testing.T, creator *models.User) *models.Bill {
	t.Helper()
	bill, err := f.svc.CreateBill(context.Background(), CreateBillInput{
		EventID:       f.event.ID,
		Subtotal:      d("360"),
		ServiceCharge: d("36"),
		TipAmount:     d("40"),
	}, creator.ID)
	require.NoError(t, err)
	return bill
}

func (f *fixture) addItems(t *testing.T, bill *models.Bill, items ...ItemInput) []models.BillItem {
	t.Helper()
	out, err := f.svc.AddBillItems(context.Background(), bill.ID, bill.CreatedBy, items)
	require.NoError(t, err)
	return out
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// shares builds a share set from alternating user ids and portions.
func shares(pairs ...string) []calculator.Share {
	out := make([]calculator.Share, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, calculator.Share{UserID: pairs[i], Portion: d(pairs[i+1])})
	}
	return out
}
