package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chorehub/chorehub/internal/auth"
	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/storage"
)

// AuthService implements registration, login and the current-user view.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account and returns a session token.
func (s *AuthService) Register(ctx context.Context, username, name, email, password string) (*models.User, string, error) {
	s.logger.Info("Register request", "username", username)

	if username == "" || email == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, username, name, email, password)
	if err != nil {
		s.logger.Error("Registration failed", "username", username, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates a user and returns a session token.
// The username match is case-insensitive.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	s.logger.Info("Login request", "username", username)

	if username == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// ChangeUsername renames the authenticated user's account. The new
// username must be free; the case-insensitive lookup means a name
// differing only in case from another user's is taken, but a user may
// re-case their own.
func (s *AuthService) ChangeUsername(ctx context.Context, userID, username string) (*models.User, error) {
	if username == "" {
		return nil, ErrNoUsernameProvided
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if existing, err := s.store.GetUserByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil && existing.ID != userID {
		return nil, auth.ErrUsernameExists
	}

	if err := s.store.UpdateUsername(ctx, userID, username); err != nil {
		s.logger.Error("Failed to change username", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("Username changed", "user_id", userID, "old", user.Username, "new", username)
	user.Username = username
	return user, nil
}

// CurrentUserView is the authenticated user's profile plus their
// groups and each group's events.
type CurrentUserView struct {
	User   *models.User
	Groups []*GroupEvents
}

// GroupEvents pairs a group with its events.
type GroupEvents struct {
	Group  *models.Group
	Events []*models.Event
}

// CurrentUser loads the authenticated user's profile, groups and the
// events in each group.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*CurrentUserView, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, auth.ErrInvalidCredentials
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CurrentUserView{User: user}
	for _, group := range groups {
		events, err := s.store.ListEventsByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		view.Groups = append(view.Groups, &GroupEvents{Group: group, Events: events})
	}

	return view, nil
}
