package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// tokenTTL время жизни access-токена
const tokenTTL = 72 * time.Hour

// AuthHandler регистрация, вход и сведения о текущем пользователе
type AuthHandler struct {
	userService *service.UserService
	jwtSecret   string
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsTutor:   req.IsTutor,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadUsername),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			h.logger.Error("Failed to register user", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
		}
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": user, "token": token})
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "the credentials provided were invalid"})
		}
		h.logger.Error("Failed to authenticate user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// Me обрабатывает GET /api/v1/me
func (h *AuthHandler) Me(c echo.Context) error {
	identity := CurrentIdentity(c)

	user, err := h.userService.GetByID(c.Request().Context(), identity.UserID)
	if err != nil {
		h.logger.Error("Failed to get current user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// issueToken подписывает HS256-токен с ролями пользователя
func (h *AuthHandler) issueToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"student": user.IsStudent,
		"tutor":   user.IsTutor,
		"staff":   user.IsStaff,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
}
