package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService выставление и оплата счетов. Счета выставляет
// только администратор
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	studentRepo *repository.StudentProfileRepository
	termRepo    *repository.TermRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	studentRepo *repository.StudentProfileRepository,
	termRepo *repository.TermRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		studentRepo: studentRepo,
		termRepo:    termRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Issue выставляет студенту счёт за учебный период.
// Дата выставления фиксируется в момент создания и не меняется
func (s *InvoiceService) Issue(ctx context.Context, studentID, termID, amountCents int64, notes string) (*model.Invoice, error) {
	if amountCents < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student not found")
	}

	term, err := s.termRepo.GetByID(ctx, termID)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}
	if term == nil {
		return nil, fmt.Errorf("term not found")
	}

	invoice := &model.Invoice{
		Reference:   uuid.New(),
		StudentID:   studentID,
		TermID:      termID,
		AmountCents: amountCents,
		Notes:       notes,
		IssuedDate:  s.now().UTC(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	invoice.Term = term

	s.logger.Info("Invoice issued",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("reference", invoice.Reference.String()),
		zap.Int64("student_id", studentID),
		zap.Int64("amount_cents", amountCents),
	)

	return invoice, nil
}

// MarkPaid проставляет счёту дату оплаты
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID int64) error {
	if err := s.invoiceRepo.MarkPaid(ctx, invoiceID, s.now().UTC()); err != nil {
		return err
	}

	s.logger.Info("Invoice paid", zap.Int64("invoice_id", invoiceID))
	return nil
}

// ListForStudentUser возвращает счета студента по его пользователю
func (s *InvoiceService) ListForStudentUser(ctx context.Context, userID int64) ([]*model.Invoice, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	if student == nil {
		return nil, ErrStudentProfileNotFound
	}

	return s.invoiceRepo.ListByStudent(ctx, student.ID)
}
