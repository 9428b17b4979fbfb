package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/ratelimit"
	"github.com/flicky/carcare-storefront/internal/repository"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserMessage turns an auth failure into text fit for the sign-in form.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password. Please try again."
	case errors.Is(err, ErrUserAlreadyExists):
		return "An account with this email already exists. Please sign in instead."
	case errors.Is(err, ErrTooManyAttempts):
		return "Too many login attempts. Please wait a minute and try again."
	case errors.Is(err, ErrInvalidToken):
		return "Your session has expired. Please sign in again."
	}
	return "Unable to connect to the authentication server. Please try again."
}

type AuthOptions struct {
	Secret     string
	Expiry     time.Duration
	AdminEmail string
	Limiter    ratelimit.Limiter
	// Session is set in mock mode only. Login then accepts any password.
	Session *repository.MockSession
}

type AuthResult struct {
	Token string
	User  model.User
}

type AuthService struct {
	userRepo   repository.UserRepository
	limiter    ratelimit.Limiter
	session    *repository.MockSession
	jwtSecret  []byte
	jwtExpiry  time.Duration
	adminEmail string
}

func NewAuthService(userRepo repository.UserRepository, opts AuthOptions) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		limiter:    opts.Limiter,
		session:    opts.Session,
		jwtSecret:  []byte(opts.Secret),
		jwtExpiry:  opts.Expiry,
		adminEmail: normalizeEmail(opts.AdminEmail),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) mock() bool { return s.session != nil }

func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	email = normalizeEmail(email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		IsAdmin:      email == s.adminEmail,
		PasswordHash: string(hashed),
	}
	if user.FullName == "" && user.IsAdmin {
		user.FullName = "Admin User"
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check rate limit: %w", err)
		}
		if !ok {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if s.mock() {
		if user == nil {
			user = &model.User{Email: email, FullName: displayName(email), IsAdmin: email == s.adminEmail}
			if err := s.userRepo.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("create mock user: %w", err)
			}
		}
		return s.issue(user)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func displayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// Logout ends the mock session of userID. Live tokens are stateless and
// simply expire.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if !s.mock() {
		return nil
	}
	if err := s.session.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear mock session: %w", err)
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RestoreMockSession puts the persisted mock user back into the store so
// tokens issued before a restart stay valid. Returns nil outside mock mode
// or when no session was saved.
func (s *AuthService) RestoreMockSession(ctx context.Context) (*model.User, error) {
	if !s.mock() {
		return nil, nil
	}
	user, err := s.session.Load()
	if err != nil || user == nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if existing == nil {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("restore mock user: %w", err)
		}
	}
	return user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if s.mock() {
		if err := s.session.Save(*user); err != nil {
			return nil, fmt.Errorf("save mock session: %w", err)
		}
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(s.jwtExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// ParseToken validates an HS256 token and returns its subject.
func (s *AuthService) ParseToken(raw string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
