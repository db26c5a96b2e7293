package token

import (
	"errors"
	"fmt"
	"time"

	"personal-notes-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a verified token tells about its bearer.
type Claims struct {
	SessionId string
	UserId    uuid.UUID
	Username  string
	Role      entity.UserRole
	ExpiresAt time.Time
}

type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

func (m *Manager) Issue(session *entity.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      session.Id,
		"user_id":  session.UserId.String(),
		"username": session.Username,
		"role":     string(session.Role),
		"iat":      session.CreatedAt.Unix(),
		"exp":      session.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sid, _ := mc["sid"].(string)
	userIdStr, _ := mc["user_id"].(string)
	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)

	userId, err := uuid.Parse(userIdStr)
	if err != nil || sid == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		SessionId: sid,
		UserId:    userId,
		Username:  username,
		Role:      entity.UserRole(role),
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
