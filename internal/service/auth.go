package service

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/domain"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error)
	Login(ctx context.Context, email domain.Email, password domain.Password) (string, error)
}

type Auth struct {
	storage   AuthStorage
	jwt       Jwt
	validator Validator
	cfg       *config.Public
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User, passwordHash string) (domain.UserId, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, string, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

var errInvalidCredentials = &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}

func NewAuth(storage AuthStorage, jwt Jwt, validator Validator, cfg *config.Public) *Auth {
	return &Auth{storage: storage, jwt: jwt, validator: validator, cfg: cfg}
}

func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (domain.UserId, error) {
	creds.Name = strings.TrimSpace(creds.Name)
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := a.validator.Struct(creds); err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	user := domain.User{
		Name:  creds.Name,
		Email: creds.Email,
		Admin: slices.Contains(a.cfg.AdminEmails, creds.Email),
	}
	id, err := a.storage.SaveUser(ctx, user, string(passHash))
	if err != nil {
		return 0, err
	}
	logger.Log.Info("user registered", "user_id", id, "admin", user.Admin)
	return id, nil
}

// Login returns an access token for the user with given email and password.
// Unknown email and wrong password are reported identically.
func (a *Auth) Login(ctx context.Context, email domain.Email, password domain.Password) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, passHash, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", errInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to issue token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}
