package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinelink/dinelink/internal/models"
)

const billColumns = `id, event_id, subtotal, service_charge, tax_amount, tip_amount, total_amount,
	currency, status, receipt_image_url, created_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	bill := &models.Bill{}
	err := row.Scan(&bill.ID, &bill.EventID, &bill.Subtotal, &bill.ServiceCharge, &bill.TaxAmount,
		&bill.TipAmount, &bill.TotalAmount, &bill.Currency, &bill.Status, &bill.ReceiptImageURL,
		&bill.CreatedBy, &bill.CreatedAt, &bill.UpdatedAt)
	return bill, err
}

// CreateBill persists a new bill to the database.
func (q *queries) CreateBill(ctx context.Context, bill *models.Bill) error {
	// Generate IDs if not set
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.UpdatedAt == 0 {
		bill.UpdatedAt = bill.CreatedAt
	}
	if bill.Currency == "" {
		bill.Currency = models.DefaultCurrency
	}
	if bill.Status == "" {
		bill.Status = models.BillStatusDraft
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.EventID, bill.Subtotal, bill.ServiceCharge, bill.TaxAmount, bill.TipAmount,
		bill.TotalAmount, bill.Currency, bill.Status, bill.ReceiptImageURL, bill.CreatedBy,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID without its items.
func (q *queries) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := scanBill(q.db.QueryRowContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE id = ?`, billID,
	))
	if isNoRows(err) {
		return nil, notFound("bill", billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// GetBillWithItems retrieves a bill by ID, including all items and their assignments.
func (q *queries) GetBillWithItems(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := q.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	items, err := q.ListBillItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	// Load all assignments for the bill in one query, then attach by item.
	rows, err := q.db.QueryContext(ctx,
		`SELECT a.id, a.bill_item_id, a.user_id, a.portion, a.amount, a.created_at,
		        COALESCE(u.name, ''), COALESCE(u.phone, '')
		 FROM item_assignments a
		 JOIN bill_items i ON i.id = a.bill_item_id
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE i.bill_id = ?
		 ORDER BY a.rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	defer rows.Close()

	byItem := make(map[string][]models.ItemAssignment)
	for rows.Next() {
		var a models.ItemAssignment
		if err := rows.Scan(&a.ID, &a.BillItemID, &a.UserID, &a.Portion, &a.Amount, &a.CreatedAt,
			&a.UserName, &a.UserPhone); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		byItem[a.BillItemID] = append(byItem[a.BillItemID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	for i := range items {
		items[i].Assignments = byItem[items[i].ID]
	}
	bill.Items = items

	return bill, nil
}

// ListBillsByEvent retrieves all bills for an event, newest first.
func (q *queries) ListBillsByEvent(ctx context.Context, eventID string) ([]*models.Bill, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+billColumns+` FROM bills WHERE event_id = ? ORDER BY created_at DESC, rowid DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by event: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// UpdateBillStatus sets a bill's status.
func (q *queries) UpdateBillStatus(ctx context.Context, billID string, status models.BillStatus, updatedAt int64) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE bills SET status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, billID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return notFound("bill", billID)
	}
	return nil
}

// CreateBillItems inserts the given items for a bill.
func (q *queries) CreateBillItems(ctx context.Context, billID string, items []*models.BillItem) error {
	now := time.Now().Unix()
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}
		item.BillID = billID
		item.Quantity = item.EffectiveQuantity()

		_, err := q.db.ExecContext(ctx,
			`INSERT INTO bill_items (id, bill_id, name, name_chinese, price, quantity, category, is_shared, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, billID, item.Name, item.NameChinese, item.Price, item.Quantity,
			item.Category, boolToInt(item.IsShared), item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}
	return nil
}

const itemColumns = `id, bill_id, name, name_chinese, price, quantity, category, is_shared, created_at`

func scanItem(row rowScanner) (models.BillItem, error) {
	var item models.BillItem
	var shared int
	err := row.Scan(&item.ID, &item.BillID, &item.Name, &item.NameChinese, &item.Price,
		&item.Quantity, &item.Category, &shared, &item.CreatedAt)
	item.IsShared = shared != 0
	return item, err
}

// GetBillItem retrieves a single bill item.
func (q *queries) GetBillItem(ctx context.Context, itemID string) (*models.BillItem, error) {
	item, err := scanItem(q.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM bill_items WHERE id = ?`, itemID,
	))
	if isNoRows(err) {
		return nil, notFound("bill item", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill item: %w", err)
	}
	return &item, nil
}

// ListBillItems retrieves a bill's items in insertion order.
func (q *queries) ListBillItems(ctx context.Context, billID string) ([]models.BillItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM bill_items WHERE bill_id = ? ORDER BY rowid`, billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill items: %w", err)
	}
	defer rows.Close()

	var items []models.BillItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}
	return items, nil
}

// DeleteAssignmentsForItems removes all assignments for the given items.
func (q *queries) DeleteAssignmentsForItems(ctx context.Context, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM item_assignments WHERE bill_item_id IN (`+placeholders(len(itemIDs))+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item assignments: %w", err)
	}
	return nil
}

// CreateAssignments inserts item assignments.
func (q *queries) CreateAssignments(ctx context.Context, assignments []*models.ItemAssignment) error {
	now := time.Now().Unix()
	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.CreatedAt == 0 {
			a.CreatedAt = now
		}
		_, err := q.db.ExecContext(ctx,
			`INSERT INTO item_assignments (id, bill_item_id, user_id, portion, amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.BillItemID, a.UserID, a.Portion, a.Amount, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item assignment: %w", err)
		}
	}
	return nil
}

// ListAssignmentsForItem retrieves an item's assignments in insertion order.
func (q *queries) ListAssignmentsForItem(ctx context.Context, itemID string) ([]models.ItemAssignment, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT a.id, a.bill_item_id, a.user_id, a.portion, a.amount, a.created_at,
		        COALESCE(u.name, ''), COALESCE(u.phone, '')
		 FROM item_assignments a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.bill_item_id = ?
		 ORDER BY a.rowid`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list item assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.ItemAssignment
	for rows.Next() {
		var a models.ItemAssignment
		if err := rows.Scan(&a.ID, &a.BillItemID, &a.UserID, &a.Portion, &a.Amount, &a.CreatedAt,
			&a.UserName, &a.UserPhone); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return assignments, nil
}
