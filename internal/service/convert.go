package service

import (
	"log/slog"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/pkg/api"
)

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func eventToAPI(e *models.Event) *api.Event {
	out := &api.Event{
		ID:             e.ID,
		Name:           e.Name,
		OrganizerID:    e.OrganizerID,
		RestaurantName: e.RestaurantName,
		Location:       e.Location,
		EventTime:      e.EventTime,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
	for i := range e.Members {
		out.Members = append(out.Members, memberToAPI(&e.Members[i]))
	}
	return out
}

func memberToAPI(m *models.EventMember) *api.EventMember {
	return &api.EventMember{
		EventID:  m.EventID,
		UserID:   m.UserID,
		Name:     m.UserName,
		Phone:    m.UserPhone,
		Status:   string(m.Status),
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func billToAPI(b *models.Bill) *api.Bill {
	out := &api.Bill{
		ID:              b.ID,
		EventID:         b.EventID,
		Subtotal:        b.Subtotal,
		ServiceCharge:   b.ServiceCharge,
		TaxAmount:       b.TaxAmount,
		TipAmount:       b.TipAmount,
		TotalAmount:     b.TotalAmount,
		Currency:        b.Currency,
		Status:          string(b.Status),
		ReceiptImageURL: b.ReceiptImageURL,
		CreatedBy:       b.CreatedBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	for i := range b.Items {
		out.Items = append(out.Items, itemToAPI(&b.Items[i]))
	}
	return out
}

func itemToAPI(i *models.BillItem) *api.BillItem {
	return &api.BillItem{
		ID:          i.ID,
		BillID:      i.BillID,
		Name:        i.Name,
		NameChinese: i.NameChinese,
		Price:       i.Price,
		Quantity:    i.EffectiveQuantity(),
		Category:    i.Category,
		IsShared:    i.IsShared,
		TotalCost:   i.TotalCost(),
		Assignments: assignmentsToAPI(i.Assignments),
	}
}

func assignmentsToAPI(in []models.ItemAssignment) []*api.ItemAssignment {
	out := make([]*api.ItemAssignment, len(in))
	for i, a := range in {
		out[i] = &api.ItemAssignment{
			ID:         a.ID,
			BillItemID: a.BillItemID,
			UserID:     a.UserID,
			UserName:   a.UserName,
			UserPhone:  a.UserPhone,
			Portion:    a.Portion,
			Amount:     a.Amount,
		}
	}
	return out
}

func paymentToAPI(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:            p.ID,
		BillID:        p.BillID,
		PayerID:       p.PayerID,
		RecipientID:   p.RecipientID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        p.Method,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		ProofURL:      p.ProofURL,
		CreatedAt:     p.CreatedAt,
		CompletedAt:   p.CompletedAt,
	}
}

func summaryToAPI(s *models.BillSummary) *api.BillSummary {
	out := &api.BillSummary{
		Bill:         billToAPI(s.Bill),
		UserTotals:   make([]*api.UserTotal, len(s.UserTotals)),
		TotalPaid:    s.TotalPaid,
		TotalPending: s.TotalPending,
	}
	for i, r := range s.UserTotals {
		out.UserTotals[i] = &api.UserTotal{
			UserID:        r.UserID,
			UserName:      r.UserName,
			UserPhone:     r.UserPhone,
			TotalAmount:   r.TotalAmount,
			PaidAmount:    r.PaidAmount,
			PendingAmount: r.PendingAmount,
			PaymentStatus: string(r.Status),
			ChargesShare:  r.ChargesShare,
			PayableAmount: r.PayableAmount,
		}
	}
	return out
}

func notificationToAPI(n *models.Notification) *api.Notification {
	out := &api.Notification{
		ID:     n.ID,
		Type:   string(n.Type),
		Title:  n.Title,
		Body:   n.Body,
		IsRead: n.IsRead,
		SentAt: n.SentAt,
		ReadAt: n.ReadAt,
	}
	if n.Data != nil {
		data, err := protojson.Marshal(n.Data)
		if err != nil {
			slog.Warn("Dropping unencodable notification data", "notification_id", n.ID, "error", err)
		} else {
			out.Data = data
		}
	}
	return out
}
