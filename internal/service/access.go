package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/carcare-storefront/internal/model"
	"github.com/flicky/carcare-storefront/internal/repository"
)

const (
	LoginRedirect = "/login?redirect=/admin"
	HomeRedirect  = "/"

	profilePollInterval = 100 * time.Millisecond
)

type Access struct {
	State    model.AccessState
	Redirect string
	User     *model.User
}

// AccessService decides whether a bearer may enter the admin area.
type AccessService struct {
	auth  *AuthService
	users repository.UserRepository
	grace time.Duration
	poll  time.Duration
}

func NewAccessService(auth *AuthService, users repository.UserRepository, grace time.Duration) *AccessService {
	return &AccessService{auth: auth, users: users, grace: grace, poll: profilePollInterval}
}

// WaitForProfile polls for the user's profile until it appears or the grace
// period runs out. A missing profile after the grace period returns nil, nil.
func (s *AccessService) WaitForProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	deadline := time.Now().Add(s.grace)
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user != nil || !time.Now().Before(deadline) {
			return user, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Resolve walks loading → unauthenticated | non-admin | admin for a token.
func (s *AccessService) Resolve(ctx context.Context, token string) Access {
	if token == "" {
		return Access{State: model.AccessUnauthenticated, Redirect: LoginRedirect}
	}
	userID, err := s.auth.ParseToken(token)
	if err != nil {
		return Access{State: model.AccessUnauthenticated, Redirect: LoginRedirect}
	}

	user, err := s.WaitForProfile(ctx, userID)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Access{State: model.AccessLoading}
	case err != nil, user == nil:
		return Access{State: model.AccessNonAdmin, Redirect: HomeRedirect}
	case !user.IsAdmin:
		return Access{State: model.AccessNonAdmin, Redirect: HomeRedirect, User: user}
	}
	return Access{State: model.AccessAdmin, User: user}
}
