package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRequestNotFound   = errors.New("lesson request not found")
	ErrRequestNotPending = errors.New("lesson request already resolved")
)

// RequestService заявки студентов на уроки и их рассмотрение администратором
type RequestService struct {
	requestRepo *repository.LessonRequestRepository
	lessonRepo  *repository.LessonRepository
	studentRepo *repository.StudentProfileRepository
	tutorRepo   *repository.TutorProfileRepository
	termRepo    *repository.TermRepository
	venueRepo   *repository.VenueRepository
	logger      *zap.Logger
}

func NewRequestService(
	requestRepo *repository.LessonRequestRepository,
	lessonRepo *repository.LessonRepository,
	studentRepo *repository.StudentProfileRepository,
	tutorRepo *repository.TutorProfileRepository,
	termRepo *repository.TermRepository,
	venueRepo *repository.VenueRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		lessonRepo:  lessonRepo,
		studentRepo: studentRepo,
		tutorRepo:   tutorRepo,
		termRepo:    termRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// CreateRequestInput параметры заявки студента
type CreateRequestInput struct {
	TutorID                  int64
	TermID                   int64
	RequestedLanguages       string
	RequestedSpecializations string
	Frequency                model.Frequency
	DurationMinutes          int
	RequestedStartDate       time.Time
	RequestedStartHour       int
	RequestedStartMinute     int
	RequestedVenueID         *int64
	Notes                    string
}

// Create создаёт заявку от имени студента; заявка попадает в статус pending
func (s *RequestService) Create(ctx context.Context, studentUserID int64, input CreateRequestInput) (*model.LessonRequest, error) {
	student, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	if student == nil {
		return nil, ErrStudentProfileNotFound
	}

	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("unsupported frequency %q", input.Frequency)
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	tutor, err := s.tutorRepo.GetByID(ctx, input.TutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("tutor not found")
	}

	term, err := s.termRepo.GetByID(ctx, input.TermID)
	if err != nil {
		return nil, fmt.Errorf("get term: %w", err)
	}
	if term == nil {
		return nil, fmt.Errorf("term not found")
	}

	if input.RequestedVenueID != nil {
		venue, err := s.venueRepo.GetByID(ctx, *input.RequestedVenueID)
		if err != nil {
			return nil, fmt.Errorf("get venue: %w", err)
		}
		if venue == nil {
			return nil, fmt.Errorf("venue not found")
		}
	}

	request := &model.LessonRequest{
		PublicID:                 uuid.New(),
		StudentID:                student.ID,
		TutorID:                  input.TutorID,
		TermID:                   input.TermID,
		RequestedLanguages:       input.RequestedLanguages,
		RequestedSpecializations: input.RequestedSpecializations,
		Frequency:                input.Frequency,
		DurationMinutes:          input.DurationMinutes,
		RequestedStartDate:       input.RequestedStartDate,
		RequestedStartHour:       input.RequestedStartHour,
		RequestedStartMinute:     input.RequestedStartMinute,
		RequestedVenueID:         input.RequestedVenueID,
		Notes:                    input.Notes,
		Status:                   model.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("Lesson request created",
		zap.Int64("request_id", request.ID),
		zap.String("public_id", request.PublicID.String()),
		zap.Int64("student_id", request.StudentID),
		zap.Int64("tutor_id", request.TutorID),
	)

	return request, nil
}

// ListMine возвращает заявки текущего студента
func (s *RequestService) ListMine(ctx context.Context, studentUserID int64) ([]*model.LessonRequest, error) {
	student, err := s.studentRepo.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	if student == nil {
		return nil, ErrStudentProfileNotFound
	}

	return s.requestRepo.ListByStudent(ctx, student.ID)
}

// ListPending возвращает нерассмотренные заявки для администратора
func (s *RequestService) ListPending(ctx context.Context) ([]*model.LessonRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

// Allocate создаёт урок по заявке и помечает её как allocated.
// venueID позволяет администратору назначить другое место вместо запрошенного
func (s *RequestService) Allocate(ctx context.Context, requestID int64, venueID *int64) (*model.Lesson, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.Status != model.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	if venueID == nil {
		venueID = request.RequestedVenueID
	}

	lesson := &model.Lesson{
		RequestID:       &request.ID,
		TutorID:         request.TutorID,
		StudentID:       request.StudentID,
		TermID:          request.TermID,
		VenueID:         venueID,
		StartDate:       request.RequestedStartDate,
		StartHour:       request.RequestedStartHour,
		StartMinute:     request.RequestedStartMinute,
		Frequency:       request.Frequency,
		DurationMinutes: request.DurationMinutes,
		Active:          true,
		Notes:           request.Notes,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson from request: %w", err)
	}

	if err := s.requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusAllocated); err != nil {
		return nil, fmt.Errorf("mark request allocated: %w", err)
	}

	s.logger.Info("Lesson request allocated",
		zap.Int64("request_id", request.ID),
		zap.Int64("lesson_id", lesson.ID),
	)

	return lesson, nil
}

// Reject отклоняет заявку
func (s *RequestService) Reject(ctx context.Context, requestID int64) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	if request == nil {
		return ErrRequestNotFound
	}
	if request.Status != model.RequestStatusPending {
		return ErrRequestNotPending
	}

	if err := s.requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusRejected); err != nil {
		return fmt.Errorf("mark request rejected: %w", err)
	}

	s.logger.Info("Lesson request rejected", zap.Int64("request_id", request.ID))
	return nil
}
