package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/pkg/api"
)

// EventServiceName is the fully-qualified name of the EventService service.
const EventServiceName = "dinelink.v1.EventService"

// Procedure paths, usable for routing and in interceptors.
const (
	EventServiceCreateEventProcedure         = "/dinelink.v1.EventService/CreateEvent"
	EventServiceGetEventProcedure            = "/dinelink.v1.EventService/GetEvent"
	EventServiceAddEventMemberProcedure      = "/dinelink.v1.EventService/AddEventMember"
	EventServiceRespondToInvitationProcedure = "/dinelink.v1.EventService/RespondToInvitation"
)

// EventServiceHandler is implemented by the server side of dinelink.v1.EventService.
type EventServiceHandler interface {
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	AddEventMember(context.Context, *connect.Request[api.AddEventMemberRequest]) (*connect.Response[api.AddEventMemberResponse], error)
	RespondToInvitation(context.Context, *connect.Request[api.RespondToInvitationRequest]) (*connect.Response[api.RespondToInvitationResponse], error)
}

// NewEventServiceHandler builds an HTTP handler for every EventService procedure.
// It returns the path prefix to mount the handler on.
func NewEventServiceHandler(svc EventServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(EventServiceCreateEventProcedure, connect.NewUnaryHandler(EventServiceCreateEventProcedure, svc.CreateEvent, opts...))
	mux.Handle(EventServiceGetEventProcedure, connect.NewUnaryHandler(EventServiceGetEventProcedure, svc.GetEvent, opts...))
	mux.Handle(EventServiceAddEventMemberProcedure, connect.NewUnaryHandler(EventServiceAddEventMemberProcedure, svc.AddEventMember, opts...))
	mux.Handle(EventServiceRespondToInvitationProcedure, connect.NewUnaryHandler(EventServiceRespondToInvitationProcedure, svc.RespondToInvitation, opts...))
	return "/" + EventServiceName + "/", mux
}

// UnimplementedEventServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedEventServiceHandler struct{}

func (UnimplementedEventServiceHandler) CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.EventService.CreateEvent is not implemented"))
}

func (UnimplementedEventServiceHandler) GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.EventService.GetEvent is not implemented"))
}

func (UnimplementedEventServiceHandler) AddEventMember(context.Context, *connect.Request[api.AddEventMemberRequest]) (*connect.Response[api.AddEventMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.EventService.AddEventMember is not implemented"))
}

func (UnimplementedEventServiceHandler) RespondToInvitation(context.Context, *connect.Request[api.RespondToInvitationRequest]) (*connect.Response[api.RespondToInvitationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.EventService.RespondToInvitation is not implemented"))
}

// EventServiceClient is a client for dinelink.v1.EventService.
type EventServiceClient interface {
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
	GetEvent(context.Context, *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error)
	AddEventMember(context.Context, *connect.Request[api.AddEventMemberRequest]) (*connect.Response[api.AddEventMemberResponse], error)
	RespondToInvitation(context.Context, *connect.Request[api.RespondToInvitationRequest]) (*connect.Response[api.RespondToInvitationResponse], error)
}

// NewEventServiceClient creates a client for the service served at baseURL,
// e.g. http://localhost:8080.
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) EventServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &eventServiceClient{
		createEvent:         connect.NewClient[api.CreateEventRequest, api.CreateEventResponse](httpClient, baseURL+EventServiceCreateEventProcedure, opts...),
		getEvent:            connect.NewClient[api.GetEventRequest, api.GetEventResponse](httpClient, baseURL+EventServiceGetEventProcedure, opts...),
		addEventMember:      connect.NewClient[api.AddEventMemberRequest, api.AddEventMemberResponse](httpClient, baseURL+EventServiceAddEventMemberProcedure, opts...),
		respondToInvitation: connect.NewClient[api.RespondToInvitationRequest, api.RespondToInvitationResponse](httpClient, baseURL+EventServiceRespondToInvitationProcedure, opts...),
	}
}

type eventServiceClient struct {
	createEvent         *connect.Client[api.CreateEventRequest, api.CreateEventResponse]
	getEvent            *connect.Client[api.GetEventRequest, api.GetEventResponse]
	addEventMember      *connect.Client[api.AddEventMemberRequest, api.AddEventMemberResponse]
	respondToInvitation *connect.Client[api.RespondToInvitationRequest, api.RespondToInvitationResponse]
}

func (c *eventServiceClient) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) GetEvent(ctx context.Context, req *connect.Request[api.GetEventRequest]) (*connect.Response[api.GetEventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *eventServiceClient) AddEventMember(ctx context.Context, req *connect.Request[api.AddEventMemberRequest]) (*connect.Response[api.AddEventMemberResponse], error) {
	return c.addEventMember.CallUnary(ctx, req)
}

func (c *eventServiceClient) RespondToInvitation(ctx context.Context, req *connect.Request[api.RespondToInvitationRequest]) (*connect.Response[api.RespondToInvitationResponse], error) {
	return c.respondToInvitation.CallUnary(ctx, req)
}
