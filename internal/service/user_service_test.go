package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shahvandan19/Bookly/internal/auth"
	dom "github.com/shahvandan19/Bookly/internal/domain"
	"github.com/shahvandan19/Bookly/internal/repo"

	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory UserRepo enforcing the same uniqueness the Mongo
// indexes do.
type fakeRepo struct {
	mu    sync.Mutex
	users []dom.User
	seq   int
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (f *fakeRepo) Insert(_ context.Context, u dom.User) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return dom.User{}, repo.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return dom.User{}, repo.ErrDuplicateUsername
		}
	}
	f.seq++
	u.ID = strconv.Itoa(f.seq)
	u.CreatedAt = time.Now().UTC()
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dom.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeRepo) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.users))
	f.users = nil
	return n, nil
}

func signupAnn() SignupParams {
	return SignupParams{
		FirstName: "Ann",
		LastName:  "Lee",
		Username:  "annl",
		Email:     "ann@x.com",
		Password:  "secret1",
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	u, err := svc.Register(context.Background(), signupAnn())
	require.NoError(t, err)

	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "secret1", u.PasswordHash)
	require.True(t, auth.CheckPassword("secret1", u.PasswordHash))
}

func TestRegister_UsernameIsAuthoritative(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	p := signupAnn()
	p.Username = "completely-unrelated"
	u, err := svc.Register(context.Background(), p)
	require.NoError(t, err)

	// The username must never be rewritten from the email local-part.
	require.Equal(t, "completely-unrelated", u.Username)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	_, err := svc.Register(context.Background(), signupAnn())
	require.NoError(t, err)

	p := signupAnn()
	p.Username = "different-username"
	_, err = svc.Register(context.Background(), p)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	_, err := svc.Register(context.Background(), signupAnn())
	require.NoError(t, err)

	p := signupAnn()
	p.Email = "other@x.com"
	_, err = svc.Register(context.Background(), p)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	p := signupAnn()
	p.Email = "  Ann@X.com "
	u, err := svc.Register(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", u.Email)

	got, err := svc.ValidateCredentials(context.Background(), "ANN@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeRepo{}, nil)
	_, err := svc.Register(context.Background(), signupAnn())
	require.NoError(t, err)

	u, err := svc.ValidateCredentials(context.Background(), "ann@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", u.Email)

	_, err = svc.ValidateCredentials(context.Background(), "ann@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ValidateCredentials(context.Background(), "nobody@x.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListAndDeleteAll(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	svc := NewUserService(fr, nil)
	_, err := svc.Register(context.Background(), signupAnn())
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := svc.DeleteAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	list, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
