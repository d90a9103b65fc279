package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shahvandan19/Bookly/internal/auth"
	"github.com/shahvandan19/Bookly/internal/cache"
	dom "github.com/shahvandan19/Bookly/internal/domain"
	"github.com/shahvandan19/Bookly/internal/repo"
	"github.com/shahvandan19/Bookly/internal/utils"

	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// SignupParams carries the validated signup fields. Password is plaintext
// here and exists only for the duration of the call; only its hash is stored.
type SignupParams struct {
	FirstName         string
	LastName          string
	Username          string
	Email             string
	Password          string
	Birthday          *time.Time
	ProfilePictureURL string
}

// UserService handles account registration and credential verification.
type UserService struct {
	repo  repo.UserRepo
	cache *cache.UserCache
	sf    singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, c *cache.UserCache) *UserService {
	return &UserService{repo: r, cache: c}
}

// ValidateCredentials checks email and password; returns the user if valid.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new account with a hashed password. The caller-supplied
// username is authoritative; it is never derived from the email.
func (s *UserService) Register(ctx context.Context, p SignupParams) (dom.User, error) {
	email := utils.NormalizeEmail(p.Email)
	username := strings.TrimSpace(p.Username)

	// Pre-checks give field-level errors; the unique indexes remain the
	// source of truth under concurrent signups.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return dom.User{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return dom.User{}, err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return dom.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return dom.User{}, err
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return dom.User{}, err
	}

	u, err := s.repo.Insert(ctx, dom.User{
		FirstName:         strings.TrimSpace(p.FirstName),
		LastName:          strings.TrimSpace(p.LastName),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Birthday:          p.Birthday,
		ProfilePictureURL: p.ProfilePictureURL,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return dom.User{}, ErrEmailTaken
		}
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

// List returns all accounts for the administrative listing.
func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("users:list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.User), nil
	}
	return s.repo.ListAll(ctx)
}

// DeleteAll removes every account. Reachable only through the admin-gated route.
func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidateCache(ctx)
	return n, nil
}

func (s *UserService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
