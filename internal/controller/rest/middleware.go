package rest

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// identityKey ключ в echo.Context, под которым лежит Identity
const identityKey = "identity"

// Identity аутентифицированный пользователь запроса
type Identity struct {
	UserID    int64
	IsStudent bool
	IsTutor   bool
	IsStaff   bool
}

// JWTAuth проверяет Bearer-токен и кладёт Identity в контекст запроса.
// Secret должен совпадать с тем, которым токены подписывались при логине
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Числовые claims после разбора JSON приходят как float64
			sub, ok := claims["sub"].(float64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid subject"})
			}

			c.Set(identityKey, Identity{
				UserID:    int64(sub),
				IsStudent: boolClaim(claims, "student"),
				IsTutor:   boolClaim(claims, "tutor"),
				IsStaff:   boolClaim(claims, "staff"),
			})

			return next(c)
		}
	}
}

// RequireStudent пускает дальше только студентов
func RequireStudent(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentIdentity(c).IsStudent {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "student access required"})
		}
		return next(c)
	}
}

// RequireStaff пускает дальше только администраторов
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentIdentity(c).IsStaff {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "staff access required"})
		}
		return next(c)
	}
}

// CurrentIdentity возвращает Identity текущего запроса.
// До JWTAuth вызывать нельзя: вернётся нулевое значение
func CurrentIdentity(c echo.Context) Identity {
	identity, _ := c.Get(identityKey).(Identity)
	return identity
}

func boolClaim(claims jwt.MapClaims, name string) bool {
	value, _ := claims[name].(bool)
	return value
}
