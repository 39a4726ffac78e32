package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Create создаёт счёт; issued_date фиксируется здесь и больше не меняется
func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (reference, student_id, term_id, amount_cents, notes, issued_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(
		ctx, query,
		invoice.Reference,
		invoice.StudentID,
		invoice.TermID,
		invoice.AmountCents,
		invoice.Notes,
		invoice.IssuedDate,
	).Scan(&invoice.ID)

	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	return nil
}

// GetByID получает счёт по ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `
		SELECT i.id, i.reference, i.student_id, i.term_id, i.amount_cents, i.notes, i.issued_date, i.paid_date,
		       t.id, t.name, t.start_date, t.end_date, t.created_at
		FROM invoices i
		JOIN terms t ON t.id = i.term_id
		WHERE i.id = $1
	`

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}

	return invoice, nil
}

// ListByStudent возвращает счета студента вместе с учебными периодами
func (r *InvoiceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.Invoice, error) {
	query := `
		SELECT i.id, i.reference, i.student_id, i.term_id, i.amount_cents, i.notes, i.issued_date, i.paid_date,
		       t.id, t.name, t.start_date, t.end_date, t.created_at
		FROM invoices i
		JOIN terms t ON t.id = i.term_id
		WHERE i.student_id = $1
		ORDER BY i.issued_date DESC, i.id DESC
	`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by student: %w", err)
	}
	defer rows.Close()

	var invoices []*model.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

// MarkPaid проставляет дату оплаты
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id int64, paidDate time.Time) error {
	query := `
		UPDATE invoices
		SET paid_date = $1
		WHERE id = $2 AND paid_date IS NULL
	`

	result, err := r.pool.Exec(ctx, query, paidDate, id)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found or already paid")
	}

	return nil
}

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var invoice model.Invoice
	var term model.Term
	err := row.Scan(
		&invoice.ID,
		&invoice.Reference,
		&invoice.StudentID,
		&invoice.TermID,
		&invoice.AmountCents,
		&invoice.Notes,
		&invoice.IssuedDate,
		&invoice.PaidDate,
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	invoice.Term = &term
	return &invoice, nil
}
