package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dinelink/dinelink/internal/models"
)

const paymentColumns = `id, bill_id, payer_id, recipient_id, amount, currency, payment_method, status,
	transaction_id, payment_proof_url, created_at, completed_at`

func scanPayment(row rowScanner) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.BillID, &p.PayerID, &p.RecipientID, &p.Amount, &p.Currency, &p.Method,
		&p.Status, &p.TransactionID, &p.ProofURL, &p.CreatedAt, &p.CompletedAt)
	return p, err
}

// CreatePayment persists a new payment to the database.
func (q *queries) CreatePayment(ctx context.Context, payment *models.Payment) error {
	// Generate ID if not set
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}
	if payment.Currency == "" {
		payment.Currency = models.DefaultCurrency
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO payments (`+paymentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.BillID, payment.PayerID, payment.RecipientID, payment.Amount,
		payment.Currency, payment.Method, payment.Status, payment.TransactionID, payment.ProofURL,
		payment.CreatedAt, payment.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// GetPayment retrieves a payment by ID.
func (q *queries) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, err := scanPayment(q.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, paymentID,
	))
	if isNoRows(err) {
		return nil, notFound("payment", paymentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// ListPaymentsByBill retrieves all payments recorded against a bill, oldest first.
func (q *queries) ListPaymentsByBill(ctx context.Context, billID string) ([]models.Payment, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE bill_id = ? ORDER BY created_at, rowid`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by bill: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// CompletePayment marks a payment as completed with optional evidence.
func (q *queries) CompletePayment(ctx context.Context, paymentID, transactionID, proofURL string, completedAt int64) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE payments
		 SET status = ?, transaction_id = ?, payment_proof_url = ?, completed_at = ?
		 WHERE id = ?`,
		models.PaymentStatusCompleted, transactionID, proofURL, completedAt, paymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete payment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return notFound("payment", paymentID)
	}
	return nil
}
