package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "dinelink.v1.BillService"

// Procedure paths, usable for routing and in interceptors.
const (
	BillServiceCalculateTotalsProcedure      = "/dinelink.v1.BillService/CalculateTotals"
	BillServiceCreateBillProcedure           = "/dinelink.v1.BillService/CreateBill"
	BillServiceAddBillItemsProcedure         = "/dinelink.v1.BillService/AddBillItems"
	BillServiceAssignItemProcedure           = "/dinelink.v1.BillService/AssignItem"
	BillServiceAutoSplitBillProcedure        = "/dinelink.v1.BillService/AutoSplitBill"
	BillServiceGetBillDetailsProcedure       = "/dinelink.v1.BillService/GetBillDetails"
	BillServiceGetBillSummaryProcedure       = "/dinelink.v1.BillService/GetBillSummary"
	BillServiceListEventBillsProcedure       = "/dinelink.v1.BillService/ListEventBills"
	BillServiceFinalizeBillProcedure         = "/dinelink.v1.BillService/FinalizeBill"
	BillServiceCreatePaymentRequestProcedure = "/dinelink.v1.BillService/CreatePaymentRequest"
	BillServiceCompletePaymentProcedure      = "/dinelink.v1.BillService/CompletePayment"
	BillServiceListPaymentMethodsProcedure   = "/dinelink.v1.BillService/ListPaymentMethods"
)

// BillServiceHandler is implemented by the server side of dinelink.v1.BillService.
type BillServiceHandler interface {
	CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	AddBillItems(context.Context, *connect.Request[api.AddBillItemsRequest]) (*connect.Response[api.AddBillItemsResponse], error)
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error)
	AutoSplitBill(context.Context, *connect.Request[api.AutoSplitBillRequest]) (*connect.Response[api.AutoSplitBillResponse], error)
	GetBillDetails(context.Context, *connect.Request[api.GetBillDetailsRequest]) (*connect.Response[api.GetBillDetailsResponse], error)
	GetBillSummary(context.Context, *connect.Request[api.GetBillSummaryRequest]) (*connect.Response[api.GetBillSummaryResponse], error)
	ListEventBills(context.Context, *connect.Request[api.ListEventBillsRequest]) (*connect.Response[api.ListEventBillsResponse], error)
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error)
	CreatePaymentRequest(context.Context, *connect.Request[api.CreatePaymentRequestRequest]) (*connect.Response[api.CreatePaymentRequestResponse], error)
	CompletePayment(context.Context, *connect.Request[api.CompletePaymentRequest]) (*connect.Response[api.CompletePaymentResponse], error)
	ListPaymentMethods(context.Context, *connect.Request[api.ListPaymentMethodsRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for every BillService procedure.
// It returns the path prefix to mount the handler on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BillServiceCalculateTotalsProcedure, connect.NewUnaryHandler(BillServiceCalculateTotalsProcedure, svc.CalculateTotals, opts...))
	mux.Handle(BillServiceCreateBillProcedure, connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(BillServiceAddBillItemsProcedure, connect.NewUnaryHandler(BillServiceAddBillItemsProcedure, svc.AddBillItems, opts...))
	mux.Handle(BillServiceAssignItemProcedure, connect.NewUnaryHandler(BillServiceAssignItemProcedure, svc.AssignItem, opts...))
	mux.Handle(BillServiceAutoSplitBillProcedure, connect.NewUnaryHandler(BillServiceAutoSplitBillProcedure, svc.AutoSplitBill, opts...))
	mux.Handle(BillServiceGetBillDetailsProcedure, connect.NewUnaryHandler(BillServiceGetBillDetailsProcedure, svc.GetBillDetails, opts...))
	mux.Handle(BillServiceGetBillSummaryProcedure, connect.NewUnaryHandler(BillServiceGetBillSummaryProcedure, svc.GetBillSummary, opts...))
	mux.Handle(BillServiceListEventBillsProcedure, connect.NewUnaryHandler(BillServiceListEventBillsProcedure, svc.ListEventBills, opts...))
	mux.Handle(BillServiceFinalizeBillProcedure, connect.NewUnaryHandler(BillServiceFinalizeBillProcedure, svc.FinalizeBill, opts...))
	mux.Handle(BillServiceCreatePaymentRequestProcedure, connect.NewUnaryHandler(BillServiceCreatePaymentRequestProcedure, svc.CreatePaymentRequest, opts...))
	mux.Handle(BillServiceCompletePaymentProcedure, connect.NewUnaryHandler(BillServiceCompletePaymentProcedure, svc.CompletePayment, opts...))
	mux.Handle(BillServiceListPaymentMethodsProcedure, connect.NewUnaryHandler(BillServiceListPaymentMethodsProcedure, svc.ListPaymentMethods, opts...))
	return "/" + BillServiceName + "/", mux
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.CalculateTotals is not implemented"))
}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.CreateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) AddBillItems(context.Context, *connect.Request[api.AddBillItemsRequest]) (*connect.Response[api.AddBillItemsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.AddBillItems is not implemented"))
}

func (UnimplementedBillServiceHandler) AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.AssignItem is not implemented"))
}

func (UnimplementedBillServiceHandler) AutoSplitBill(context.Context, *connect.Request[api.AutoSplitBillRequest]) (*connect.Response[api.AutoSplitBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.AutoSplitBill is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBillDetails(context.Context, *connect.Request[api.GetBillDetailsRequest]) (*connect.Response[api.GetBillDetailsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.GetBillDetails is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBillSummary(context.Context, *connect.Request[api.GetBillSummaryRequest]) (*connect.Response[api.GetBillSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.GetBillSummary is not implemented"))
}

func (UnimplementedBillServiceHandler) ListEventBills(context.Context, *connect.Request[api.ListEventBillsRequest]) (*connect.Response[api.ListEventBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.ListEventBills is not implemented"))
}

func (UnimplementedBillServiceHandler) FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.FinalizeBill is not implemented"))
}

func (UnimplementedBillServiceHandler) CreatePaymentRequest(context.Context, *connect.Request[api.CreatePaymentRequestRequest]) (*connect.Response[api.CreatePaymentRequestResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.CreatePaymentRequest is not implemented"))
}

func (UnimplementedBillServiceHandler) CompletePayment(context.Context, *connect.Request[api.CompletePaymentRequest]) (*connect.Response[api.CompletePaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.CompletePayment is not implemented"))
}

func (UnimplementedBillServiceHandler) ListPaymentMethods(context.Context, *connect.Request[api.ListPaymentMethodsRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("dinelink.v1.BillService.ListPaymentMethods is not implemented"))
}

// BillServiceClient is a client for dinelink.v1.BillService.
type BillServiceClient interface {
	CalculateTotals(context.Context, *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	AddBillItems(context.Context, *connect.Request[api.AddBillItemsRequest]) (*connect.Response[api.AddBillItemsResponse], error)
	AssignItem(context.Context, *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error)
	AutoSplitBill(context.Context, *connect.Request[api.AutoSplitBillRequest]) (*connect.Response[api.AutoSplitBillResponse], error)
	GetBillDetails(context.Context, *connect.Request[api.GetBillDetailsRequest]) (*connect.Response[api.GetBillDetailsResponse], error)
	GetBillSummary(context.Context, *connect.Request[api.GetBillSummaryRequest]) (*connect.Response[api.GetBillSummaryResponse], error)
	ListEventBills(context.Context, *connect.Request[api.ListEventBillsRequest]) (*connect.Response[api.ListEventBillsResponse], error)
	FinalizeBill(context.Context, *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error)
	CreatePaymentRequest(context.Context, *connect.Request[api.CreatePaymentRequestRequest]) (*connect.Response[api.CreatePaymentRequestResponse], error)
	CompletePayment(context.Context, *connect.Request[api.CompletePaymentRequest]) (*connect.Response[api.CompletePaymentResponse], error)
	ListPaymentMethods(context.Context, *connect.Request[api.ListPaymentMethodsRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error)
}

// NewBillServiceClient creates a client for the service served at baseURL,
// e.g. http://localhost:8080.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &billServiceClient{
		calculateTotals:      connect.NewClient[api.CalculateTotalsRequest, api.CalculateTotalsResponse](httpClient, baseURL+BillServiceCalculateTotalsProcedure, opts...),
		createBill:           connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		addBillItems:         connect.NewClient[api.AddBillItemsRequest, api.AddBillItemsResponse](httpClient, baseURL+BillServiceAddBillItemsProcedure, opts...),
		assignItem:           connect.NewClient[api.AssignItemRequest, api.AssignItemResponse](httpClient, baseURL+BillServiceAssignItemProcedure, opts...),
		autoSplitBill:        connect.NewClient[api.AutoSplitBillRequest, api.AutoSplitBillResponse](httpClient, baseURL+BillServiceAutoSplitBillProcedure, opts...),
		getBillDetails:       connect.NewClient[api.GetBillDetailsRequest, api.GetBillDetailsResponse](httpClient, baseURL+BillServiceGetBillDetailsProcedure, opts...),
		getBillSummary:       connect.NewClient[api.GetBillSummaryRequest, api.GetBillSummaryResponse](httpClient, baseURL+BillServiceGetBillSummaryProcedure, opts...),
		listEventBills:       connect.NewClient[api.ListEventBillsRequest, api.ListEventBillsResponse](httpClient, baseURL+BillServiceListEventBillsProcedure, opts...),
		finalizeBill:         connect.NewClient[api.FinalizeBillRequest, api.FinalizeBillResponse](httpClient, baseURL+BillServiceFinalizeBillProcedure, opts...),
		createPaymentRequest: connect.NewClient[api.CreatePaymentRequestRequest, api.CreatePaymentRequestResponse](httpClient, baseURL+BillServiceCreatePaymentRequestProcedure, opts...),
		completePayment:      connect.NewClient[api.CompletePaymentRequest, api.CompletePaymentResponse](httpClient, baseURL+BillServiceCompletePaymentProcedure, opts...),
		listPaymentMethods:   connect.NewClient[api.ListPaymentMethodsRequest, api.ListPaymentMethodsResponse](httpClient, baseURL+BillServiceListPaymentMethodsProcedure, opts...),
	}
}

type billServiceClient struct {
	calculateTotals      *connect.Client[api.CalculateTotalsRequest, api.CalculateTotalsResponse]
	createBill           *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	addBillItems         *connect.Client[api.AddBillItemsRequest, api.AddBillItemsResponse]
	assignItem           *connect.Client[api.AssignItemRequest, api.AssignItemResponse]
	autoSplitBill        *connect.Client[api.AutoSplitBillRequest, api.AutoSplitBillResponse]
	getBillDetails       *connect.Client[api.GetBillDetailsRequest, api.GetBillDetailsResponse]
	getBillSummary       *connect.Client[api.GetBillSummaryRequest, api.GetBillSummaryResponse]
	listEventBills       *connect.Client[api.ListEventBillsRequest, api.ListEventBillsResponse]
	finalizeBill         *connect.Client[api.FinalizeBillRequest, api.FinalizeBillResponse]
	createPaymentRequest *connect.Client[api.CreatePaymentRequestRequest, api.CreatePaymentRequestResponse]
	completePayment      *connect.Client[api.CompletePaymentRequest, api.CompletePaymentResponse]
	listPaymentMethods   *connect.Client[api.ListPaymentMethodsRequest, api.ListPaymentMethodsResponse]
}

func (c *billServiceClient) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	return c.calculateTotals.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) AddBillItems(ctx context.Context, req *connect.Request[api.AddBillItemsRequest]) (*connect.Response[api.AddBillItemsResponse], error) {
	return c.addBillItems.CallUnary(ctx, req)
}

func (c *billServiceClient) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

func (c *billServiceClient) AutoSplitBill(ctx context.Context, req *connect.Request[api.AutoSplitBillRequest]) (*connect.Response[api.AutoSplitBillResponse], error) {
	return c.autoSplitBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBillDetails(ctx context.Context, req *connect.Request[api.GetBillDetailsRequest]) (*connect.Response[api.GetBillDetailsResponse], error) {
	return c.getBillDetails.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBillSummary(ctx context.Context, req *connect.Request[api.GetBillSummaryRequest]) (*connect.Response[api.GetBillSummaryResponse], error) {
	return c.getBillSummary.CallUnary(ctx, req)
}

func (c *billServiceClient) ListEventBills(ctx context.Context, req *connect.Request[api.ListEventBillsRequest]) (*connect.Response[api.ListEventBillsResponse], error) {
	return c.listEventBills.CallUnary(ctx, req)
}

func (c *billServiceClient) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error) {
	return c.finalizeBill.CallUnary(ctx, req)
}

func (c *billServiceClient) CreatePaymentRequest(ctx context.Context, req *connect.Request[api.CreatePaymentRequestRequest]) (*connect.Response[api.CreatePaymentRequestResponse], error) {
	return c.createPaymentRequest.CallUnary(ctx, req)
}

func (c *billServiceClient) CompletePayment(ctx context.Context, req *connect.Request[api.CompletePaymentRequest]) (*connect.Response[api.CompletePaymentResponse], error) {
	return c.completePayment.CallUnary(ctx, req)
}

func (c *billServiceClient) ListPaymentMethods(ctx context.Context, req *connect.Request[api.ListPaymentMethodsRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error) {
	return c.listPaymentMethods.CallUnary(ctx, req)
}
