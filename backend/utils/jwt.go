package utils

import (
	"errors"
	"strings"
	"time"

	"examprep-backend/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("Access denied. No valid token provided.")
	ErrInvalidToken = errors.New("Invalid token")
	ErrExpiredToken = errors.New("Token expired")
)

// TokenClaims is the payload carried by every issued token.
type TokenClaims struct {
	UserID uint
	Email  string
	Name   string
}

func GenerateJWTToken(user TokenClaims, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.UserID,
		"email":   user.Email,
		"name":    user.Name,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractTokenClaims reads and verifies the bearer token on the request.
func ExtractTokenClaims(c *fiber.Ctx, cfg *config.Config) (TokenClaims, error) {
	header := c.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return TokenClaims{}, ErrMissingToken
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrExpiredToken
		}
		return TokenClaims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return TokenClaims{}, ErrInvalidToken
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return TokenClaims{
		UserID: uint(userIDFloat),
		Email:  email,
		Name:   name,
	}, nil
}
