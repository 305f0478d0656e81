package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// AdminClaims carries the admin session token claims.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminAuth issues and verifies admin session tokens. The admin console
// exchanges the shared admin token for a short-lived JWT which guards
// every mutating route.
type AdminAuth struct {
	Secret     []byte
	AdminToken string
	TokenTTL   time.Duration
}

func NewAdminAuth(secret, adminToken string) *AdminAuth {
	return &AdminAuth{
		Secret:     []byte(secret),
		AdminToken: adminToken,
		TokenTTL:   24 * time.Hour,
	}
}

type loginRequest struct {
	Token string `json:"token"`
}

// Login exchanges the configured admin token for a signed session JWT.
func (a *AdminAuth) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if a.AdminToken == "" || req.Token != a.AdminToken {
		logrus.Warn("Admin login rejected: token mismatch")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid admin token",
		})
	}

	now := time.Now().UTC()
	expiresAt := now.Add(a.TokenTTL)
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ipocraft-backend",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Second)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to sign session token",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"token":      signed,
		"expires_at": expiresAt,
	})
}

// Middleware verifies the Bearer token on admin routes.
func (a *AdminAuth) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Missing bearer token",
			})
		}

		claims, err := a.verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid token",
			})
		}

		c.Locals("admin_claims", claims)
		return c.Next()
	}
}

func (a *AdminAuth) verify(token string) (*AdminClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid || claims.Role != "admin" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
