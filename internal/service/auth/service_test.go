package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	user.ID = primitive.NewObjectID()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, mongodb.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UserByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, mongodb.ErrNotFound
}

func (f *fakeUserStore) UpdateUser(_ context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	for email, u := range f.users {
		if u.ID != id {
			continue
		}
		if name, ok := set["name"].(string); ok {
			u.Name = name
		}
		if mail, ok := set["email"].(string); ok {
			u.Email = mail
		}
		if phone, ok := set["phone"].(string); ok {
			u.Phone = phone
		}
		delete(f.users, email)
		f.users[u.Email] = u
		return u, nil
	}
	return models.User{}, mongodb.ErrNotFound
}

func newTestService(store UserStore) *Service {
	return NewService(store, "test-secret", time.Hour, nil)
}

func TestSignupAndLoginRoundTrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, token, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: "secret123",
		Phone:    "0501234567",
	})
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.NotEmpty(t, token)
	// Stored password must be a bcrypt hash, never the raw value.
	assert.NotEqual(t, "secret123", store.users["owner@example.com"].Password)

	logged, loginToken, err := svc.Login(context.Background(), "owner@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUserStore())

	_, _, err := svc.Signup(context.Background(), SignupInput{Email: "dup@example.com", Password: "pw"})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), SignupInput{Email: "dup@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserStore())
	_, _, err := svc.Signup(context.Background(), SignupInput{Email: "a@example.com", Password: "right"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserStore())
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	svc := newTestService(newFakeUserStore())
	user, token, err := svc.Signup(context.Background(), SignupInput{Email: "v@example.com", Password: "pw"})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.ID)
	assert.Equal(t, "v@example.com", claims.Email)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newTestService(newFakeUserStore())
	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	store := newFakeUserStore()
	issuer := NewService(store, "secret-a", time.Hour, nil)
	verifier := NewService(store, "secret-b", time.Hour, nil)

	_, token, err := issuer.Signup(context.Background(), SignupInput{Email: "x@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store, "test-secret", -time.Minute, nil)

	_, token, err := svc.Signup(context.Background(), SignupInput{Email: "e@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfile_PartialSet(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, _, err := svc.Signup(context.Background(), SignupInput{
		Name:  "Before",
		Email: "p@example.com",
		Phone: "111",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{Name: "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "p@example.com", updated.Email)
	assert.Equal(t, "111", updated.Phone)
}

func TestUpdateProfile_EmptyUpdateReturnsCurrent(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestService(store)

	user, _, err := svc.Signup(context.Background(), SignupInput{Name: "Keep", Email: "k@example.com"})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(context.Background(), user.ID, ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Keep", got.Name)
}
