package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeUser(jwtStr string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

type claims struct {
	Uid       domain.UserId   `json:"uid"`
	Name      domain.UserName `json:"name"`
	Admin     bool            `json:"admin"`
	CreatedAt int64           `json:"created_at"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	now := time.Now()
	c := claims{
		Uid:       user.Id,
		Name:      user.Name,
		Admin:     user.Admin,
		CreatedAt: user.CreatedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

// DecodeUser verifies the signature and expiry and returns the signed-in user.
func (j *Jwt) DecodeUser(jwtStr string) (*domain.User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(jwtStr, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		logger.Log.Debug("rejected access token", "error", err)
		return nil, ErrInvalidToken
	}
	if c.Uid <= 0 {
		return nil, ErrInvalidToken
	}

	return &domain.User{
		Id:        c.Uid,
		Name:      c.Name,
		Admin:     c.Admin,
		CreatedAt: time.Unix(c.CreatedAt, 0).UTC(),
	}, nil
}
