package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/observability"
	"github.com/kenziemed/medclient/internal/storage"
	"github.com/kenziemed/medclient/internal/utils"
	"go.uber.org/zap"
)

// Restore reconstitutes the session persisted by a previous run. It
// reads durable storage only and never contacts the remote service.
// Malformed persisted state yields an empty session, never a crash.
func (s *Store) Restore(ctx context.Context) error {
	record, err := s.storage.Read(ctx)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrSessionNotFound):
		observability.SessionRestores.WithLabelValues("empty").Inc()
		return nil
	case errors.Is(err, models.ErrCorruptSession):
		observability.SessionRestores.WithLabelValues("corrupt").Inc()
		s.logger.Warn("discarding malformed persisted session")
		if clearErr := s.storage.Clear(ctx); clearErr != nil {
			s.logger.Error("failed to clear malformed session", zap.Error(clearErr))
		}
		return nil
	default:
		observability.SessionRestores.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.session = models.Session{
		User:            record.User,
		UserID:          record.UserID,
		Token:           record.Token,
		IsAuthenticated: true,
	}
	s.mu.Unlock()

	observability.SessionRestores.WithLabelValues("restored").Inc()
	s.logger.Info("session restored", zap.String("user_id", record.UserID))

	return nil
}

// SignIn authenticates against the remote service and persists the
// returned session. On failure the session and durable storage are left
// untouched; the attempt is terminal and must be re-initiated.
func (s *Store) SignIn(ctx context.Context, credentials models.Credentials) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "sign_in")
	defer done()

	if credentials.Email == "" || credentials.Password == "" {
		return models.ErrEmptyCredentials
	}

	s.setLoading(true)

	response, err := s.api.SignIn(ctx, credentials)
	if err != nil {
		s.setLoading(false)
		observability.SignInAttempts.WithLabelValues("failure").Inc()
		s.notifier.Error(msgSomethingWentWrong)
		return fmt.Errorf("sign in failed: %w", err)
	}

	record := &storage.Record{
		User:   response.User,
		UserID: response.UserID.String(),
		Token:  response.Token,
	}
	if err := s.storage.Write(ctx, record); err != nil {
		s.setLoading(false)
		observability.SignInAttempts.WithLabelValues("failure").Inc()
		s.notifier.Error(msgSomethingWentWrong)
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.session = models.Session{
		User:            response.User,
		UserID:          record.UserID,
		Token:           response.Token,
		IsAuthenticated: true,
	}
	s.loading = false
	target := defaultLandingTarget
	if s.redirectTarget != "" {
		target = s.redirectTarget
		s.redirectTarget = ""
	}
	s.mu.Unlock()

	observability.SignInAttempts.WithLabelValues("success").Inc()
	s.notifier.Success(msgLoginSuccess)
	s.navigator.NavigateTo(target, true)

	return nil
}

// Register submits a new account. The confirmation field never reaches
// the wire and the privilege flag is server-assigned. Registration does
// not sign the user in.
func (s *Store) Register(ctx context.Context, input models.RegisterInput) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "register")
	defer done()

	if result := utils.ValidateRegistration(input); !result.IsValid {
		s.notifier.Error(msgSomethingWentWrong)
		return &ValidationFailedError{Result: result}
	}

	// The privilege flag is never client-asserted
	input.IsAdmin = false
	input.ConfirmPassword = ""

	if _, err := s.api.Register(ctx, input); err != nil {
		s.notifier.Error(msgSomethingWentWrong)
		return fmt.Errorf("registration failed: %w", err)
	}

	s.notifier.Success(msgRegisterSuccess)
	s.navigator.NavigateTo(loginTarget, false)

	return nil
}

// EditProfile replaces the mutable profile fields of the signed-in
// user. The server's returned record becomes the session user and is
// persisted, keeping storage and memory in agreement.
func (s *Store) EditProfile(ctx context.Context, input models.EditProfileInput) error {
	ctx, _, done := utils.TraceStoreOperation(ctx, "edit_profile")
	defer done()

	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()

	if !session.IsAuthenticated || session.Token == "" {
		return models.ErrNotAuthenticated
	}

	if result := utils.ValidateEditProfile(input); !result.IsValid {
		s.notifier.Error(msgTryAgain)
		return &ValidationFailedError{Result: result}
	}

	updated, err := s.api.UpdateProfile(ctx, session.User.ID, session.Token, input)
	if err != nil {
		s.notifier.Error(msgTryAgain)
		return fmt.Errorf("profile update failed: %w", err)
	}

	record := &storage.Record{
		User:   *updated,
		UserID: session.UserID,
		Token:  session.Token,
	}
	if err := s.storage.Write(ctx, record); err != nil {
		s.notifier.Error(msgTryAgain)
		return fmt.Errorf("failed to persist updated profile: %w", err)
	}

	s.mu.Lock()
	s.session.User = *updated
	s.mu.Unlock()

	s.notifier.Success(msgProfileUpdated)
	s.navigator.NavigateTo(defaultLandingTarget, true)

	return nil
}

// SignOut clears the session and its durable state, the structural
// inverse of SignIn.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}

	s.mu.Lock()
	s.session = models.Session{}
	s.appointments = nil
	s.mu.Unlock()

	s.notifier.Success(msgSignedOut)
	s.navigator.NavigateTo(loginTarget, true)

	return nil
}
