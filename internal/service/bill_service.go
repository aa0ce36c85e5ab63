package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/dinelink/dinelink/internal/billing"
	"github.com/dinelink/dinelink/internal/calculator"
	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/pkg/api"
)

// BillService implements the BillService RPC interface on top of
// billing.Service.
type BillService struct {
	billing *billing.Service
}

// NewBillService creates a new bill service.
func NewBillService(b *billing.Service) *BillService {
	return &BillService{billing: b}
}

// CalculateTotals previews service charge, tax and totals for a subtotal.
// It does not read or write any bill.
func (s *BillService) CalculateTotals(ctx context.Context, req *connect.Request[api.CalculateTotalsRequest]) (*connect.Response[api.CalculateTotalsResponse], error) {
	if req.Msg.TipAmount.IsNegative() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: tip_amount must not be negative", billing.ErrInvalidInput))
	}
	totals, err := s.billing.CalculateTotals(req.Msg.Subtotal, req.Msg.ServiceChargeRate, req.Msg.TaxRate)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CalculateTotalsResponse{
		Subtotal:      totals.Subtotal,
		ServiceCharge: totals.ServiceCharge,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.TotalAmount,
		PayableTotal:  calculator.PayableTotal(totals, req.Msg.TipAmount),
	}), nil
}

func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.billing.CreateBill(ctx, billing.CreateBillInput{
		EventID:         req.Msg.EventID,
		Subtotal:        req.Msg.Subtotal,
		ServiceCharge:   req.Msg.ServiceCharge,
		TaxAmount:       req.Msg.TaxAmount,
		TipAmount:       req.Msg.TipAmount,
		TotalAmount:     req.Msg.TotalAmount,
		Currency:        req.Msg.Currency,
		ReceiptImageURL: req.Msg.ReceiptImageURL,
	}, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateBillResponse{Bill: billToAPI(bill)}), nil
}

func (s *BillService) AddBillItems(ctx context.Context, req *connect.Request[api.AddBillItemsRequest]) (*connect.Response[api.AddBillItemsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]billing.ItemInput, 0, len(req.Msg.Items))
	for _, item := range req.Msg.Items {
		if item == nil {
			continue
		}
		inputs = append(inputs, billing.ItemInput{
			Name:        item.Name,
			NameChinese: item.NameChinese,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Category:    item.Category,
			IsShared:    item.IsShared,
		})
	}

	items, err := s.billing.AddBillItems(ctx, req.Msg.BillID, userID, inputs)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.BillItem, len(items))
	for i := range items {
		out[i] = itemToAPI(&items[i])
	}
	return connect.NewResponse(&api.AddBillItemsResponse{Items: out}), nil
}

// AssignItem replaces an item's assignments with the given shares.
func (s *BillService) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.AssignItemResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	shares := make([]calculator.Share, 0, len(req.Msg.Shares))
	for _, sh := range req.Msg.Shares {
		if sh == nil {
			continue
		}
		shares = append(shares, calculator.Share{UserID: sh.UserID, Portion: sh.Portion})
	}

	assignments, err := s.billing.AssignItemToUsers(ctx, req.Msg.ItemID, userID, shares)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AssignItemResponse{Assignments: assignmentsToAPI(assignments)}), nil
}

// AutoSplitBill splits every shared item equally between the given members
// and gives personal items to their owners.
func (s *BillService) AutoSplitBill(ctx context.Context, req *connect.Request[api.AutoSplitBillRequest]) (*connect.Response[api.AutoSplitBillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.billing.AutoSplitBill(ctx, req.Msg.BillID, userID, req.Msg.MemberIDs, req.Msg.Owners)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AutoSplitBillResponse{Assignments: assignmentsToAPI(assignments)}), nil
}

func (s *BillService) GetBillDetails(ctx context.Context, req *connect.Request[api.GetBillDetailsRequest]) (*connect.Response[api.GetBillDetailsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.billing.GetBillDetails(ctx, req.Msg.BillID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBillDetailsResponse{Bill: billToAPI(bill)}), nil
}

func (s *BillService) GetBillSummary(ctx context.Context, req *connect.Request[api.GetBillSummaryRequest]) (*connect.Response[api.GetBillSummaryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.billing.GetBillSummary(ctx, req.Msg.BillID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetBillSummaryResponse{Summary: summaryToAPI(summary)}), nil
}

func (s *BillService) ListEventBills(ctx context.Context, req *connect.Request[api.ListEventBillsRequest]) (*connect.Response[api.ListEventBillsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.billing.ListEventBills(ctx, req.Msg.EventID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Bill, len(bills))
	for i, b := range bills {
		out[i] = billToAPI(b)
	}
	return connect.NewResponse(&api.ListEventBillsResponse{Bills: out}), nil
}

func (s *BillService) FinalizeBill(ctx context.Context, req *connect.Request[api.FinalizeBillRequest]) (*connect.Response[api.FinalizeBillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.billing.FinalizeBill(ctx, req.Msg.BillID, userID); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.FinalizeBillResponse{
		BillID: req.Msg.BillID,
		Status: string(models.BillStatusFinalized),
	}), nil
}

func (s *BillService) CreatePaymentRequest(ctx context.Context, req *connect.Request[api.CreatePaymentRequestRequest]) (*connect.Response[api.CreatePaymentRequestResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	payment, err := s.billing.CreatePaymentRequest(ctx, billing.PaymentRequestInput{
		BillID:      req.Msg.BillID,
		PayerID:     req.Msg.PayerID,
		RecipientID: req.Msg.RecipientID,
		Amount:      req.Msg.Amount,
		Method:      req.Msg.Method,
	}, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreatePaymentRequestResponse{Payment: paymentToAPI(payment)}), nil
}

func (s *BillService) CompletePayment(ctx context.Context, req *connect.Request[api.CompletePaymentRequest]) (*connect.Response[api.CompletePaymentResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	payment, err := s.billing.CompletePayment(ctx, req.Msg.PaymentID, userID, req.Msg.TransactionID, req.Msg.ProofURL)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CompletePaymentResponse{Payment: paymentToAPI(payment)}), nil
}

// ListPaymentMethods returns the supported payment methods with labels in
// the requested language.
func (s *BillService) ListPaymentMethods(ctx context.Context, req *connect.Request[api.ListPaymentMethodsRequest]) (*connect.Response[api.ListPaymentMethodsResponse], error) {
	methods := billing.PaymentMethods(req.Msg.Language)
	out := make([]*api.PaymentMethod, len(methods))
	for i, m := range methods {
		out[i] = &api.PaymentMethod{Value: m.Value, Label: m.Label}
	}
	return connect.NewResponse(&api.ListPaymentMethodsResponse{Methods: out}), nil
}
