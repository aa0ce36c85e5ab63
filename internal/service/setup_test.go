package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/auth"
	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/middleware"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/notify"
	"github.com/dinelink/dinelink/internal/storage"
	"github.com/dinelink/dinelink/internal/storage/sqlite"
	"github.com/dinelink/dinelink/pkg/api"
	"github.com/dinelink/dinelink/pkg/api/apiconnect"
)

// testUserHeader carries the caller id in tests instead of a JWT.
const testUserHeader = "X-Test-User"

func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := req.Header().Get(testUserHeader); userID != "" {
				ctx = middleware.WithUserID(ctx, userID)
			}
			return next(ctx, req)
		}
	}
}

type testServer struct {
	store         storage.Store
	jwt           *auth.JWTManager
	auth          apiconnect.AuthServiceClient
	events        apiconnect.EventServiceClient
	bills         apiconnect.BillServiceClient
	notifications apiconnect.NotificationServiceClient
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	notifications := notify.New(store)
	bills := billing.New(store, billing.WithNotifier(notifications))

	opts := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), opts))
	mux.Handle(apiconnect.NewEventServiceHandler(NewEventService(store, notifications, logger), opts))
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(bills), opts))
	mux.Handle(apiconnect.NewNotificationServiceHandler(NewNotificationService(notifications, notify.DefaultListLimit), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		store:         store,
		jwt:           jwtManager,
		auth:          apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		events:        apiconnect.NewEventServiceClient(http.DefaultClient, server.URL),
		bills:         apiconnect.NewBillServiceClient(http.DefaultClient, server.URL),
		notifications: apiconnect.NewNotificationServiceClient(http.DefaultClient, server.URL),
	}
}

// as builds a request made by userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func (ts *testServer) createUser(t *testing.T, phone, name string) *models.User {
	t.Helper()
	user := models.NewUser(phone, name, "unused-hash")
	if err := ts.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return user
}

// dinner is an event organized by alice with bob and carol confirmed and
// mallory not invited.
type dinner struct {
	event                      *api.Event
	alice, bob, carol, mallory *models.User
}

func (ts *testServer) newDinner(t *testing.T) *dinner {
	t.Helper()
	ctx := context.Background()

	d := &dinner{
		alice:   ts.createUser(t, "+85291110001", "Alice"),
		bob:     ts.createUser(t, "+85291110002", "Bob"),
		carol:   ts.createUser(t, "+85291110003", "Carol"),
		mallory: ts.createUser(t, "+85291110004", "Mallory"),
	}

	created, err := ts.events.CreateEvent(ctx, as(d.alice.ID, &api.CreateEventRequest{
		Name:           "Friday dim sum",
		RestaurantName: "Maxim's Palace",
	}))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	d.event = created.Msg.Event

	for _, guest := range []*models.User{d.bob, d.carol} {
		if _, err := ts.events.AddEventMember(ctx, as(d.alice.ID, &api.AddEventMemberRequest{
			EventID: d.event.ID,
			UserID:  guest.ID,
		})); err != nil {
			t.Fatalf("AddEventMember(%s) failed: %v", guest.Name, err)
		}
		if _, err := ts.events.RespondToInvitation(ctx, as(guest.ID, &api.RespondToInvitationRequest{
			EventID: d.event.ID,
			Accept:  true,
		})); err != nil {
			t.Fatalf("RespondToInvitation(%s) failed: %v", guest.Name, err)
		}
	}
	return d
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("Expected code %v, got %v (%v)", want, got, err)
	}
}
