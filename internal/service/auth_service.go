package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/shop-backend/internal/models"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateName(ctx context.Context, id int64, name string) error
}

type AuthService struct {
	users     UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(secret), jwtTTL: ttl}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !models.ValidEmail(email) {
		return nil, models.ValidationError("invalid email address")
	}
	if !models.ValidPassword(password) {
		return nil, models.ValidationError("password too weak")
	}
	name = strings.TrimSpace(name)
	if !models.ValidName(name) {
		return nil, models.ValidationError("invalid name")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: string(hash), Name: name}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an HS256 token. Unknown email
// and wrong password collapse into the same error on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.jwtTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// VerifyToken returns the user ID a bearer token was issued for.
func (s *AuthService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrInvalidCredentials
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, models.ErrInvalidCredentials
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, models.ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidCredentials
	}
	return id, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) UpdateUser(ctx context.Context, id int64, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || !models.ValidName(name) {
		return nil, models.ValidationError("invalid name")
	}
	if err := s.users.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
