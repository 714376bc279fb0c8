package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kenziemed/medclient/internal/config"
	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/notify"
	"github.com/kenziemed/medclient/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errUnexpectedCall = errors.New("unexpected remote call")

// fakeAPI stubs the remote service. Unset methods fail the operation
// with errUnexpectedCall, so tests that must not touch the network get
// that guarantee for free.
type fakeAPI struct {
	signIn             func(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error)
	register           func(ctx context.Context, input models.RegisterInput) (*models.User, error)
	updateProfile      func(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error)
	listDoctors        func(ctx context.Context) ([]models.Doctor, error)
	listDoctorSchedule func(ctx context.Context, doctorID int64) ([]models.ScheduleSlot, error)
	listAppointments   func(ctx context.Context, token, userID string) ([]models.Appointment, error)
}

func (f *fakeAPI) SignIn(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
	if f.signIn == nil {
		return nil, errUnexpectedCall
	}
	return f.signIn(ctx, credentials)
}

func (f *fakeAPI) Register(ctx context.Context, input models.RegisterInput) (*models.User, error) {
	if f.register == nil {
		return nil, errUnexpectedCall
	}
	return f.register(ctx, input)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error) {
	if f.updateProfile == nil {
		return nil, errUnexpectedCall
	}
	return f.updateProfile(ctx, id, token, input)
}

func (f *fakeAPI) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	if f.listDoctors == nil {
		return nil, errUnexpectedCall
	}
	return f.listDoctors(ctx)
}

func (f *fakeAPI) ListDoctorSchedule(ctx context.Context, doctorID int64) ([]models.ScheduleSlot, error) {
	if f.listDoctorSchedule == nil {
		return nil, errUnexpectedCall
	}
	return f.listDoctorSchedule(ctx, doctorID)
}

func (f *fakeAPI) ListAppointments(ctx context.Context, token, userID string) ([]models.Appointment, error) {
	if f.listAppointments == nil {
		return nil, errUnexpectedCall
	}
	return f.listAppointments(ctx, token, userID)
}

// navRecorder captures navigation requests
type navRecorder struct {
	mu    sync.Mutex
	calls []navCall
}

type navCall struct {
	target  string
	replace bool
}

func (n *navRecorder) NavigateTo(target string, replace bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, navCall{target: target, replace: replace})
}

func (n *navRecorder) last() (navCall, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return navCall{}, false
	}
	return n.calls[len(n.calls)-1], true
}

func (n *navRecorder) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type storeFixture struct {
	store     *Store
	api       *fakeAPI
	files     *storage.FileStore
	notifier  *notify.Recorder
	navigator *navRecorder
}

func setupStoreTest(t *testing.T, cfg *config.Config) *storeFixture {
	t.Helper()

	if cfg == nil {
		cfg = &config.Config{FilterNoMatch: config.NoMatchShowAll}
	}

	files, err := storage.NewFileStore(
		filepath.Join(t.TempDir(), "session.json"),
		logging.NewSafeLogger(zap.NewNop()),
	)
	require.NoError(t, err)

	api := &fakeAPI{}
	notifier := notify.NewRecorder()
	navigator := &navRecorder{}

	return &storeFixture{
		store:     New(api, files, notifier, navigator, cfg, logging.NewSafeLogger(zap.NewNop())),
		api:       api,
		files:     files,
		notifier:  notifier,
		navigator: navigator,
	}
}

// validRegistration returns a submission that passes every account rule
func validRegistration() models.RegisterInput {
	return models.RegisterInput{
		Name:            "Maria da Silva Souza",
		Email:           "maria@example.com",
		Password:        "Str0ng@pass",
		ConfirmPassword: "Str0ng@pass",
		CPF:             "52998224725",
		Age:             34,
		Sex:             "female",
		Address: models.Address{
			District: "Centro",
			ZipCode:  "20000-000",
			Number:   "10",
			City:     "Rio de Janeiro",
			State:    "RJ",
		},
	}
}

func validProfileEdit() models.EditProfileInput {
	return models.EditProfileInput{
		Name:  "Maria de Souza Oliveira",
		Email: "maria@example.com",
		CPF:   "52998224725",
		Age:   35,
		Sex:   "female",
		Address: models.Address{
			District: "Botafogo",
			ZipCode:  "22250-040",
			Number:   "42",
			City:     "Rio de Janeiro",
			State:    "RJ",
		},
	}
}

func loginResponse() *models.LoginResponse {
	return &models.LoginResponse{
		User: models.User{
			ID:    7,
			Name:  "Maria da Silva Souza",
			Email: "maria@example.com",
		},
		UserID: "7",
		Token:  "opaque-token",
	}
}

// signIn drives the fixture into an authenticated state
func (f *storeFixture) signIn(t *testing.T) {
	t.Helper()

	f.api.signIn = func(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
		return loginResponse(), nil
	}
	require.NoError(t, f.store.SignIn(context.Background(), models.Credentials{
		Email:    "maria@example.com",
		Password: "Str0ng@pass",
	}))
	f.api.signIn = nil
	f.notifier.Drain()
}
