package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository/base"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("a user with this username already exists")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrBadUsername        = errors.New("username must consist of @ followed by at least three alphanumericals")
)

// usernameRe "@" и минимум три буквенно-цифровых символа
var usernameRe = regexp.MustCompile(`^@\w{3,}$`)

type UserService struct {
	userRepo    *repository.UserRepository
	studentRepo *repository.StudentProfileRepository
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	studentRepo *repository.StudentProfileRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// RegisterInput данные регистрации; роль — student или tutor
type RegisterInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsTutor   bool
}

// Register регистрирует пользователя. Студенту профиль создаётся сразу,
// репетитору — лениво при первом открытии дашборда
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if !usernameRe.MatchString(input.Username) {
		return nil, ErrBadUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsStudent:    !input.IsTutor,
		IsTutor:      input.IsTutor,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, s.uniqueViolation(ctx, input)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if user.IsStudent {
		profile := &model.StudentProfile{UserID: user.ID}
		if err := s.studentRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("create student profile: %w", err)
		}
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.Bool("is_tutor", user.IsTutor),
	)

	return user, nil
}

// Authenticate проверяет логин и пароль
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// uniqueViolation различает, какое из уникальных полей занято
func (s *UserService) uniqueViolation(ctx context.Context, input RegisterInput) error {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
