package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/schedule"
	"go.uber.org/zap"
)

var ErrStudentProfileNotFound = errors.New("student profile not found")

type (
	// DashboardLessonStore выборка уроков для дашборда
	DashboardLessonStore interface {
		ListByStudent(ctx context.Context, studentID int64, onlyActive bool) ([]*model.Lesson, error)
		ListByTutor(ctx context.Context, tutorID int64, onlyActive bool) ([]*model.Lesson, error)
	}

	// DashboardInvoiceStore выборка счетов студента
	DashboardInvoiceStore interface {
		ListByStudent(ctx context.Context, studentID int64) ([]*model.Invoice, error)
	}

	// DashboardTutorStore профили репетиторов: поиск и create-if-missing
	DashboardTutorStore interface {
		GetOrCreateByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error)
		Filter(ctx context.Context, filter model.TutorFilter) ([]*model.TutorProfile, error)
	}

	// DashboardStudentStore профиль студента по пользователю
	DashboardStudentStore interface {
		GetByUserID(ctx context.Context, userID int64) (*model.StudentProfile, error)
	}
)

// StudentDashboard дашборд студента: счета, будущие занятия и,
// если был поиск, подошедшие репетиторы
type StudentDashboard struct {
	Invoices      []*model.Invoice      `json:"invoices"`
	TotalDueCents int64                 `json:"total_due_cents"` // сумма неоплаченных счетов
	Upcoming      []schedule.Occurrence `json:"upcoming"`
	Tutors        []*model.TutorProfile `json:"tutors,omitempty"`
}

// TutorDashboard дашборд репетитора: профиль и будущие занятия
type TutorDashboard struct {
	Profile  *model.TutorProfile   `json:"profile"`
	Upcoming []schedule.Occurrence `json:"upcoming"`
}

// DashboardService собирает данные дашборда для текущего пользователя.
// Каждый вызов — одно синхронное чтение из базы плюс чистое разворачивание
// расписания; никакого состояния между запросами сервис не держит.
type DashboardService struct {
	lessonStore  DashboardLessonStore
	invoiceStore DashboardInvoiceStore
	tutorStore   DashboardTutorStore
	studentStore DashboardStudentStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardService(
	lessonStore DashboardLessonStore,
	invoiceStore DashboardInvoiceStore,
	tutorStore DashboardTutorStore,
	studentStore DashboardStudentStore,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		lessonStore:  lessonStore,
		invoiceStore: invoiceStore,
		tutorStore:   tutorStore,
		studentStore: studentStore,
		logger:       logger,
		now:          time.Now,
	}
}

// ForStudent собирает дашборд студента: счета с периодами, активные уроки,
// развёрнутые в будущие занятия, и поиск репетиторов, если фильтр не пустой
func (s *DashboardService) ForStudent(ctx context.Context, userID int64, filter model.TutorFilter) (*StudentDashboard, error) {
	profile, err := s.studentStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	if profile == nil {
		return nil, ErrStudentProfileNotFound
	}

	invoices, err := s.invoiceStore.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	var totalDue int64
	for _, invoice := range invoices {
		if !invoice.Paid() {
			totalDue += invoice.AmountCents
		}
	}

	// Разворачиваем только активные уроки: это решение сборщика,
	// сам разворот активность не проверяет
	lessons, err := s.lessonStore.ListByStudent(ctx, profile.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	upcoming, err := schedule.Expand(lessons, s.now(), schedule.ViewpointStudent)
	if err != nil {
		return nil, fmt.Errorf("expand lessons: %w", err)
	}

	dashboard := &StudentDashboard{
		Invoices:      invoices,
		TotalDueCents: totalDue,
		Upcoming:      upcoming,
	}

	// Поиск репетиторов выполняется только когда задан хотя бы один параметр
	if !filter.Empty() {
		tutors, err := s.tutorStore.Filter(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("filter tutors: %w", err)
		}
		dashboard.Tutors = tutors
	}

	s.logger.Debug("Student dashboard assembled",
		zap.Int64("user_id", userID),
		zap.Int("lessons", len(lessons)),
		zap.Int("occurrences", len(upcoming)),
	)

	return dashboard, nil
}

// ForTutor собирает дашборд репетитора. Профиль создаётся при первом входе,
// если его ещё нет; создание идемпотентно
func (s *DashboardService) ForTutor(ctx context.Context, userID int64) (*TutorDashboard, error) {
	profile, err := s.tutorStore.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get or create tutor profile: %w", err)
	}

	lessons, err := s.lessonStore.ListByTutor(ctx, profile.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	upcoming, err := schedule.Expand(lessons, s.now(), schedule.ViewpointTutor)
	if err != nil {
		return nil, fmt.Errorf("expand lessons: %w", err)
	}

	s.logger.Debug("Tutor dashboard assembled",
		zap.Int64("user_id", userID),
		zap.Int("lessons", len(lessons)),
		zap.Int("occurrences", len(upcoming)),
	)

	return &TutorDashboard{
		Profile:  profile,
		Upcoming: upcoming,
	}, nil
}
