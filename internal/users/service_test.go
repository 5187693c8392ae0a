package users

import (
	"context"
	"io"
	"testing"

	"github.com/brewthree/brewpos-backend/pkg/config"
	"github.com/brewthree/brewpos-backend/pkg/db/models"
	"github.com/brewthree/brewpos-backend/pkg/errors"
	"github.com/brewthree/brewpos-backend/pkg/logger"
	"github.com/brewthree/brewpos-backend/pkg/security"
)

type fakeRepo struct {
	byUsername map[string]*models.User
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUsername: map[string]*models.User{}, nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := f.byUsername[user.Username]; exists {
		return errors.New(errors.CodeConflict, "username already taken")
	}
	user.ID = f.nextID
	f.nextID++
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "user not found")
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, errors.New(errors.CodeNotFound, "user not found")
}

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	svc, err := NewService(Params{
		Repo: repo,
		Hasher: security.NewHasher(config.PasswordConfig{
			Memory:      8 * 1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		}),
		Log: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, repo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "opensesame1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordHash == "opensesame1" {
		t.Fatal("password must not be stored in the clear")
	}

	authed, err := svc.Authenticate(ctx, "alice", "opensesame1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, authed.ID)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "opensesame1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Authenticate(ctx, "alice", "wrong")
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	_, err = svc.Authenticate(ctx, "nobody", "whatever")
	typed = errors.As(err)
	if typed == nil || typed.Code() != errors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "opensesame1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "different9"})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}
