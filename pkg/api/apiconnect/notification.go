package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/pkg/api"
)

// NotificationServiceName is the fully-qualified name of the NotificationService service.
const NotificationServiceName = "dinelink.v1.NotificationService"

// Procedure paths, usable for routing and in interceptors.
const (
	NotificationServiceListNotificationsProcedure        = "/dinelink.v1.NotificationService/ListNotifications"
	NotificationServiceMarkNotificationReadProcedure     = "/dinelink.v1.NotificationService/MarkNotificationRead"
	NotificationServiceMarkAllNotificationsReadProcedure = "/dinelink.v1.NotificationService/MarkAllNotificationsRead"
	NotificationServiceGetUnreadCountProcedure           = "/dinelink.v1.NotificationService/GetUnreadCount"
)

// NotificationServiceHandler is implemented by the server side of dinelink.v1.NotificationService.
type NotificationServiceHandler interface {
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	MarkAllNotificationsRead(context.Context, *connect.Request[api.MarkAllNotificationsReadRequest]) (*connect.Response[api.MarkAllNotificationsReadResponse], error)
	GetUnreadCount(context.Context, *connect.Request[api.GetUnreadCountRequest]) (*connect.Response[api.GetUnreadCountResponse], error)
}

// NewNotificationServiceHandler builds an HTTP handler for every NotificationService procedure.
// It returns the path prefix to mount the handler on.
func NewNotificationServiceHandler(svc NotificationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(NotificationServiceListNotificationsProcedure, connect.NewUnaryHandler(NotificationServiceListNotificationsProcedure, svc.ListNotifications, opts...))
	mux.Handle(NotificationServiceMarkNotificationReadProcedure, connect.NewUnaryHandler(NotificationServiceMarkNotificationReadProcedure, svc.MarkNotificationRead, opts...))
	mux.Handle(NotificationServiceMarkAllNotificationsReadProcedure, connect.NewUnaryHandler(NotificationServiceMarkAllNotificationsReadProcedure, svc.MarkAllNotificationsRead, opts...))
	mux.Handle(NotificationServiceGetUnreadCountProcedure, connect.NewUnaryHandler(NotificationServiceGetUnreadCountProcedure, svc.GetUnreadCount, opts...))
	return "/" + NotificationServiceName + "/", mux
}

// UnimplementedNotificationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedNotificationServiceHandler struct{}

func (UnimplementedNotificationServiceHandler) ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.NotificationService.ListNotifications is not implemented"))
}

func (UnimplementedNotificationServiceHandler) MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.NotificationService.MarkNotificationRead is not implemented"))
}

func (UnimplementedNotificationServiceHandler) MarkAllNotificationsRead(context.Context, *connect.Request[api.MarkAllNotificationsReadRequest]) (*connect.Response[api.MarkAllNotificationsReadResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.NotificationService.MarkAllNotificationsRead is not implemented"))
}

func (UnimplementedNotificationServiceHandler) GetUnreadCount(context.Context, *connect.Request[api.GetUnreadCountRequest]) (*connect.Response[api.GetUnreadCountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.NotificationService.GetUnreadCount is not implemented"))
}

// NotificationServiceClient is a client for dinelink.v1.NotificationService.
type NotificationServiceClient interface {
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	MarkNotificationRead(context.Context, *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error)
	MarkAllNotificationsRead(context.Context, *connect.Request[api.MarkAllNotificationsReadRequest]) (*connect.Response[api.MarkAllNotificationsReadResponse], error)
	GetUnreadCount(context.Context, *connect.Request[api.GetUnreadCountRequest]) (*connect.Response[api.GetUnreadCountResponse], error)
}

// NewNotificationServiceClient creates a client for the service served at baseURL,
// e.g. http://localhost:8080.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) NotificationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &notificationServiceClient{
		listNotifications:        connect.NewClient[api.ListNotificationsRequest, api.ListNotificationsResponse](httpClient, baseURL+NotificationServiceListNotificationsProcedure, opts...),
		markNotificationRead:     connect.NewClient[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse](httpClient, baseURL+NotificationServiceMarkNotificationReadProcedure, opts...),
		markAllNotificationsRead: connect.NewClient[api.MarkAllNotificationsReadRequest, api.MarkAllNotificationsReadResponse](httpClient, baseURL+NotificationServiceMarkAllNotificationsReadProcedure, opts...),
		getUnreadCount:           connect.NewClient[api.GetUnreadCountRequest, api.GetUnreadCountResponse](httpClient, baseURL+NotificationServiceGetUnreadCountProcedure, opts...),
	}
}

type notificationServiceClient struct {
	listNotifications        *connect.Client[api.ListNotificationsRequest, api.ListNotificationsResponse]
	markNotificationRead     *connect.Client[api.MarkNotificationReadRequest, api.MarkNotificationReadResponse]
	markAllNotificationsRead *connect.Client[api.MarkAllNotificationsReadRequest, api.MarkAllNotificationsReadResponse]
	getUnreadCount           *connect.Client[api.GetUnreadCountRequest, api.GetUnreadCountResponse]
}

func (c *notificationServiceClient) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	return c.markNotificationRead.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkAllNotificationsRead(ctx context.Context, req *connect.Request[api.MarkAllNotificationsReadRequest]) (*connect.Response[api.MarkAllNotificationsReadResponse], error) {
	return c.markAllNotificationsRead.CallUnary(ctx, req)
}

func (c *notificationServiceClient) GetUnreadCount(ctx context.Context, req *connect.Request[api.GetUnreadCountRequest]) (*connect.Response[api.GetUnreadCountResponse], error) {
	return c.getUnreadCount.CallUnary(ctx, req)
}
