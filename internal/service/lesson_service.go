package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"go.uber.org/zap"
)

// LessonService административные операции над уроками.
// Уроки создаёт и меняет только администратор; студенты и репетиторы
// видят их через дашборд
type LessonService struct {
	lessonRepo  *repository.LessonRepository
	tutorRepo   *repository.TutorProfileRepository
	studentRepo *repository.StudentProfileRepository
	termRepo    *repository.TermRepository
	venueRepo   *repository.VenueRepository
	logger      *zap.Logger
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	tutorRepo *repository.TutorProfileRepository,
	studentRepo *repository.StudentProfileRepository,
	termRepo *repository.TermRepository,
	venueRepo *repository.VenueRepository,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo:  lessonRepo,
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
		termRepo:    termRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// CreateLessonInput параметры нового урока
type CreateLessonInput struct {
	TutorID         int64
	StudentID       int64
	TermID          int64
	VenueID         *int64
	RequestID       *int64
	StartDate       time.Time
	StartHour       int
	StartMinute     int
	Frequency       model.Frequency
	DurationMinutes int
	Notes           string
}

// Create создаёт урок, проверив все связи и правило повторения
func (s *LessonService) Create(ctx context.Context, input CreateLessonInput) (*model.Lesson, error) {
	if input.Frequency == "" {
		input.Frequency = model.FrequencyWeekly // по умолчанию, как и раньше
	}
	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("unsupported frequency %q", input.Frequency)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if input.StartHour < 0 || input.StartHour > 23 || input.StartMinute < 0 || input.StartMinute > 59 {
		return nil, fmt.Errorf("invalid start time")
	}

	tutor, err := s.tutorRepo.GetByID(ctx, input.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("tutor not found")
	}

	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student not found")
	}

	term, err := s.termRepo.GetByID(ctx, input.TermID)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}
	if term == nil {
		return nil, fmt.Errorf("term not found")
	}

	if input.VenueID != nil {
		venue, err := s.venueRepo.GetByID(ctx, *input.VenueID)
		if err != nil {
			return nil, fmt.Errorf("get venue: %w", err)
		}
		if venue == nil {
			return nil, fmt.Errorf("venue not found")
		}
	}

	lesson := &model.Lesson{
		RequestID:       input.RequestID,
		TutorID:         input.TutorID,
		StudentID:       input.StudentID,
		TermID:          input.TermID,
		VenueID:         input.VenueID,
		StartDate:       input.StartDate,
		StartHour:       input.StartHour,
		StartMinute:     input.StartMinute,
		Frequency:       input.Frequency,
		DurationMinutes: input.DurationMinutes,
		Active:          true,
		Notes:           input.Notes,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("tutor_id", lesson.TutorID),
		zap.Int64("student_id", lesson.StudentID),
		zap.String("frequency", string(lesson.Frequency)),
	)

	return lesson, nil
}

// SetActive переключает ручной флаг активности урока
func (s *LessonService) SetActive(ctx context.Context, lessonID int64, active bool) error {
	if err := s.lessonRepo.SetActive(ctx, lessonID, active); err != nil {
		return err
	}

	s.logger.Info("Lesson active flag changed",
		zap.Int64("lesson_id", lessonID),
		zap.Bool("active", active),
	)

	return nil
}
