package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/clock"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
	"github.com/dinelink/dinelink/pkg/api"
)

var (
	errNotEventManager = errors.New("only the organizer or a co-organizer can invite members")
	errAlreadyMember   = errors.New("user is already a member of this event")
	errOrganizerLeave  = errors.New("the organizer cannot decline their own event")
)

// EventService implements the EventService RPC interface. Events and
// membership decide who may view and mutate bills.
type EventService struct {
	store    storage.Store
	notifier billing.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// NewEventService creates a new event service.
func NewEventService(store storage.Store, notifier billing.Notifier, logger *slog.Logger) *EventService {
	return &EventService{
		store:    store,
		notifier: notifier,
		clock:    clock.SystemClock{},
		logger:   logger,
	}
}

// CreateEvent creates an event with the caller as its confirmed organizer.
func (s *EventService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("event name is required"))
	}

	now := s.clock.Now(ctx).Unix()
	event := &models.Event{
		Name:           name,
		OrganizerID:    userID,
		RestaurantName: req.Msg.RestaurantName,
		Location:       req.Msg.Location,
		EventTime:      req.Msg.EventTime,
		CreatedAt:      now,
	}
	err = s.store.WithTx(ctx, func(q storage.Queries) error {
		if err := q.CreateEvent(ctx, event); err != nil {
			return err
		}
		return q.AddEventMember(ctx, &models.EventMember{
			EventID:  event.ID,
			UserID:   userID,
			Status:   models.MemberConfirmed,
			Role:     models.RoleOrganizer,
			JoinedAt: now,
		})
	})
	if err != nil {
		s.logger.Error("Failed to create event", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	created, err := s.store.GetEvent(ctx, event.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Event created", "event_id", event.ID, "organizer_id", userID)
	return connect.NewResponse(&api.CreateEventResponse{Event: eventToAPI(created)}), nil
}

// GetEvent returns an event and its members to the organizer or any member.
func (s *EventService) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, req.Msg.EventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !isMember(event, userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, billing.ErrAccessDenied)
	}
	return connect.NewResponse(&api.GetEventResponse{Event: eventToAPI(event)}), nil
}

// AddEventMember invites a registered user to an event.
func (s *EventService) AddEventMember(ctx context.Context, req *connect.Request[api.AddEventMemberRequest]) (*connect.Response[api.AddEventMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	role := models.MemberRole(req.Msg.Role)
	switch role {
	case "":
		role = models.RoleMember
	case models.RoleMember, models.RoleCoOrganizer:
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unsupported role %q", req.Msg.Role))
	}

	event, err := s.store.GetEvent(ctx, req.Msg.EventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !canManage(event, userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotEventManager)
	}
	invitee, err := s.store.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if isMember(event, invitee.ID) {
		return nil, connect.NewError(connect.CodeAlreadyExists, errAlreadyMember)
	}

	member := &models.EventMember{
		EventID:  event.ID,
		UserID:   invitee.ID,
		Status:   models.MemberInvited,
		Role:     role,
		JoinedAt: s.clock.Now(ctx).Unix(),
	}
	if err := s.store.AddEventMember(ctx, member); err != nil {
		return nil, toConnectError(err)
	}
	member.UserName = invitee.Name
	member.UserPhone = invitee.Phone

	s.notify(ctx, invitee.ID, models.NotifyEventInvitation, "New Event Invitation",
		fmt.Sprintf("%s invited you to join %q", s.userName(ctx, userID), event.Name),
		map[string]any{"event_id": event.ID})

	s.logger.Info("Event member invited", "event_id", event.ID, "user_id", invitee.ID, "role", role)
	return connect.NewResponse(&api.AddEventMemberResponse{Member: memberToAPI(member)}), nil
}

// RespondToInvitation confirms or declines the caller's membership.
func (s *EventService) RespondToInvitation(ctx context.Context, req *connect.Request[api.RespondToInvitationRequest]) (*connect.Response[api.RespondToInvitationResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, req.Msg.EventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	member, err := s.store.GetEventMember(ctx, event.ID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	status := models.MemberDeclined
	if req.Msg.Accept {
		status = models.MemberConfirmed
	}
	if status == models.MemberDeclined && member.Role == models.RoleOrganizer {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errOrganizerLeave)
	}
	if err := s.store.UpdateEventMemberStatus(ctx, event.ID, userID, status); err != nil {
		return nil, toConnectError(err)
	}
	member.Status = status

	if event.OrganizerID != userID {
		verb := "declined"
		if req.Msg.Accept {
			verb = "accepted"
		}
		s.notify(ctx, event.OrganizerID, models.NotifyEventUpdate, "Invitation "+verb,
			fmt.Sprintf("%s %s your invitation to %q", s.userName(ctx, userID), verb, event.Name),
			map[string]any{"event_id": event.ID, "user_id": userID, "status": string(status)})
	}

	return connect.NewResponse(&api.RespondToInvitationResponse{Member: memberToAPI(member)}), nil
}

func (s *EventService) notify(ctx context.Context, userID string, kind models.NotificationType, title, body string, data map[string]any) {
	if err := s.notifier.Notify(ctx, userID, kind, title, body, data); err != nil {
		s.logger.Warn("Failed to send notification", "user_id", userID, "type", kind, "error", err)
	}
}

func (s *EventService) userName(ctx context.Context, userID string) string {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil || user.Name == "" {
		return "Someone"
	}
	return user.Name
}

func isMember(event *models.Event, userID string) bool {
	if event.OrganizerID == userID {
		return true
	}
	for _, m := range event.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func canManage(event *models.Event, userID string) bool {
	if event.OrganizerID == userID {
		return true
	}
	for i := range event.Members {
		m := &event.Members[i]
		if m.UserID == userID {
			return m.CanManage() && m.Status == models.MemberConfirmed
		}
	}
	return false
}
