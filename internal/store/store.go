package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kenziemed/medclient/internal/config"
	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/notify"
	"github.com/kenziemed/medclient/internal/storage"
	"github.com/kenziemed/medclient/internal/utils"
)

// User-visible notification messages, in the platform's locale.
const (
	msgLoginSuccess       = "Login realizado com sucesso!"
	msgSomethingWentWrong = "Ops, Algo deu errado"
	msgRegisterSuccess    = "Cadastro efetuado com sucesso"
	msgProfileUpdated     = "Dados alterados com sucesso!"
	msgTryAgain           = "Algo deu errado! Tente novamente!"
	msgSpecialtyNotFound  = "Não conseguimos encontrar essa especialidade.."
	msgSignedOut          = "Sessão encerrada"
)

// Navigation targets handed to the Navigator after operations complete.
const (
	defaultLandingTarget = "/dashboard"
	loginTarget          = "/login"
)

// APIClient is the remote service surface the store depends on
type APIClient interface {
	SignIn(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, input models.RegisterInput) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListDoctorSchedule(ctx context.Context, doctorID int64) ([]models.ScheduleSlot, error)
	ListAppointments(ctx context.Context, token, userID string) ([]models.Appointment, error)
}

// Navigator receives navigation requests after operations complete.
// The terminal front end logs them; a richer front end routes on them.
type Navigator interface {
	NavigateTo(target string, replace bool)
}

// Store is the Session & Directory Store: the one shared state container
// behind every presentation collaborator. It holds the authenticated
// session, the doctor directory and its filtered view, and the
// appointment list, and it is safe for concurrent use.
type Store struct {
	api       APIClient
	storage   storage.Storage
	notifier  notify.Notifier
	navigator Navigator
	logger    *logging.SafeLogger

	noMatchPolicy config.FilterNoMatchPolicy

	mu             sync.RWMutex
	loading        bool
	session        models.Session
	doctors        []models.Doctor
	filtered       []models.Doctor
	filterInput    string
	selectedDoctor *models.Doctor
	schedule       []models.ScheduleSlot
	appointments   []models.Appointment
	modalOpen      bool
	redirectTarget string

	// fetch sequencing: responses older than the last applied one are
	// discarded so a slow first fetch cannot overwrite a newer refresh
	fetchSeq   uint64
	appliedSeq uint64
}

// New creates a store wired to its collaborators. The store has no
// package-level state; construct one per process at start-up.
func New(api APIClient, store storage.Storage, notifier notify.Notifier, navigator Navigator, cfg *config.Config, logger *logging.SafeLogger) *Store {
	policy := config.NoMatchShowAll
	if cfg != nil && cfg.FilterNoMatch != "" {
		policy = cfg.FilterNoMatch
	}

	return &Store{
		api:           api,
		storage:       store,
		notifier:      notifier,
		navigator:     navigator,
		logger:        logger,
		noMatchPolicy: policy,
	}
}

// ValidationFailedError carries the field errors of a rejected submission
type ValidationFailedError struct {
	Result *utils.ValidationResult
}

func (e *ValidationFailedError) Error() string {
	fields := make([]string, 0, len(e.Result.Errors))
	for _, fieldError := range e.Result.Errors {
		fields = append(fields, fieldError.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Loading reports whether a first directory load or sign-in is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Session returns a copy of the current session
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// User returns the current user profile (zero value when signed out)
func (s *Store) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}

// IsAuthenticated reports whether a user is signed in
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated
}

// Doctors returns the full doctor directory
func (s *Store) Doctors() []models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Doctor(nil), s.doctors...)
}

// Filtered returns the current filtered view of the directory
func (s *Store) Filtered() []models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Doctor(nil), s.filtered...)
}

// FilterInput returns the current free-text specialty query
func (s *Store) FilterInput() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterInput
}

// SelectedDoctor returns the doctor selected for booking, if any
func (s *Store) SelectedDoctor() *models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedDoctor == nil {
		return nil
	}
	doctor := *s.selectedDoctor
	return &doctor
}

// Schedule returns the selected doctor's bookable slots
func (s *Store) Schedule() []models.ScheduleSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ScheduleSlot(nil), s.schedule...)
}

// Appointments returns the current appointment list
func (s *Store) Appointments() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Appointment(nil), s.appointments...)
}

// ModalOpen reports the booking dialog visibility flag
func (s *Store) ModalOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modalOpen
}

// SetModalOpen sets the booking dialog visibility flag
func (s *Store) SetModalOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modalOpen = open
}

// RecordRedirect records where to land after the next successful
// sign-in, for callers bounced to the login page from a protected page.
func (s *Store) RecordRedirect(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectTarget = target
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
