// Package auth issues and validates the signed bearer tokens that carry the
// owner identity, and manages owner accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
)

var (
	// ErrEmailTaken is returned by Signup when the email is already registered.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password; callers cannot tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned by VerifyToken for malformed, forged or
	// expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// UserStore is the slice of the entity store the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error)
}

// Claims is the token payload: the owner id and email.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service implements signup, login and token verification.
type Service struct {
	store    UserStore
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewService wires an auth service instance.
func NewService(store UserStore, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, secret: []byte(secret), tokenTTL: tokenTTL, logger: logger}
}

// SignupInput carries the fields required to register an owner.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Signup registers a new owner account and returns it with a fresh token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, string, error) {
	_, err := s.store.UserByEmail(ctx, in.Email)
	if err == nil {
		return models.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, mongodb.ErrNotFound) {
		return models.User{}, "", fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Phone:    in.Phone,
	})
	if err != nil {
		return models.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}

	s.logger.Info("owner signed up", zap.String("email", user.Email))
	return user, token, nil
}

// Login checks the credentials and returns the account with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *Service) issueToken(user models.User) (string, error) {
	claims := &Claims{
		ID:    user.ID.Hex(),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a raw bearer token and returns its claims.
func (s *Service) VerifyToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Profile returns the owner's account document.
func (s *Service) Profile(ctx context.Context, ownerID primitive.ObjectID) (models.User, error) {
	return s.store.UserByID(ctx, ownerID)
}

// ProfileUpdate carries the optional profile fields; empty values are left
// untouched.
type ProfileUpdate struct {
	Name  string
	Email string
	Phone string
}

// UpdateProfile patches the owner's account and returns the updated document.
func (s *Service) UpdateProfile(ctx context.Context, ownerID primitive.ObjectID, in ProfileUpdate) (models.User, error) {
	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Email != "" {
		set["email"] = in.Email
	}
	if in.Phone != "" {
		set["phone"] = in.Phone
	}
	if len(set) == 0 {
		return s.store.UserByID(ctx, ownerID)
	}
	return s.store.UpdateUser(ctx, ownerID, set)
}
