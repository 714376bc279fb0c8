package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestore_NothingPersisted(t *testing.T) {
	f := setupStoreTest(t, nil)

	require.NoError(t, f.store.Restore(context.Background()))

	assert.False(t, f.store.IsAuthenticated())
	assert.True(t, f.store.Session().Empty())
}

func TestRestore_PersistedSession(t *testing.T) {
	f := setupStoreTest(t, nil)

	require.NoError(t, f.files.Write(context.Background(), &storage.Record{
		User:   models.User{ID: 7, Name: "Maria da Silva Souza", Email: "maria@example.com"},
		UserID: "7",
		Token:  "opaque-token",
	}))

	// The fake fails any remote call, so this also proves restore is a
	// storage-only operation.
	require.NoError(t, f.store.Restore(context.Background()))

	session := f.store.Session()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "opaque-token", session.Token)
	assert.Equal(t, "7", session.UserID)
	assert.Equal(t, "maria@example.com", session.User.Email)
}

func TestRestore_CorruptStateRecovers(t *testing.T) {
	f := setupStoreTest(t, nil)

	require.NoError(t, os.WriteFile(f.files.Path(), []byte(`{"user":{`), 0o600))

	require.NoError(t, f.store.Restore(context.Background()))

	assert.False(t, f.store.IsAuthenticated())

	// The malformed file is cleared so the next start is clean
	_, err := os.Stat(f.files.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSignIn_PersistsAndNavigates(t *testing.T) {
	f := setupStoreTest(t, nil)

	f.api.signIn = func(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
		assert.Equal(t, "maria@example.com", credentials.Email)
		return loginResponse(), nil
	}

	require.NoError(t, f.store.SignIn(context.Background(), models.Credentials{
		Email:    "maria@example.com",
		Password: "Str0ng@pass",
	}))

	session := f.store.Session()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "opaque-token", session.Token)
	assert.False(t, f.store.Loading())

	// Storage and session agree
	record, err := f.files.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Token, record.Token)
	assert.Equal(t, session.UserID, record.UserID)
	assert.Equal(t, session.User, record.User)

	call, ok := f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, "/dashboard", call.target)
	assert.True(t, call.replace)

	assert.Equal(t, msgLoginSuccess, f.notifier.Last().Message)
}

func TestSignIn_EmptyCredentials(t *testing.T) {
	f := setupStoreTest(t, nil)

	tests := []struct {
		name        string
		credentials models.Credentials
	}{
		{name: "missing email", credentials: models.Credentials{Password: "Str0ng@pass"}},
		{name: "missing password", credentials: models.Credentials{Email: "maria@example.com"}},
		{name: "both missing", credentials: models.Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.store.SignIn(context.Background(), tt.credentials)
			assert.ErrorIs(t, err, models.ErrEmptyCredentials)
		})
	}

	assert.Equal(t, 0, f.navigator.count())
}

func TestSignIn_FailureLeavesNoTrace(t *testing.T) {
	f := setupStoreTest(t, nil)

	f.api.signIn = func(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
		return nil, errors.New("incorrect password")
	}

	err := f.store.SignIn(context.Background(), models.Credentials{
		Email:    "maria@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	assert.False(t, f.store.IsAuthenticated())
	assert.False(t, f.store.Loading())
	assert.Equal(t, 0, f.navigator.count())

	_, readErr := f.files.Read(context.Background())
	assert.ErrorIs(t, readErr, models.ErrSessionNotFound)

	assert.Equal(t, msgSomethingWentWrong, f.notifier.Last().Message)
}

func TestSignIn_HonorsRecordedRedirect(t *testing.T) {
	f := setupStoreTest(t, nil)
	f.store.RecordRedirect("/profile")

	f.api.signIn = func(ctx context.Context, credentials models.Credentials) (*models.LoginResponse, error) {
		return loginResponse(), nil
	}

	require.NoError(t, f.store.SignIn(context.Background(), models.Credentials{
		Email:    "maria@example.com",
		Password: "Str0ng@pass",
	}))

	call, ok := f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, "/profile", call.target)

	// The recorded target is consumed; the next sign-in lands on the default
	require.NoError(t, f.store.SignOut(context.Background()))
	f.signIn(t)

	call, ok = f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, "/dashboard", call.target)
}

func TestRegister_Success(t *testing.T) {
	f := setupStoreTest(t, nil)

	f.api.register = func(ctx context.Context, input models.RegisterInput) (*models.User, error) {
		return &models.User{ID: 8, Name: input.Name, Email: input.Email}, nil
	}

	require.NoError(t, f.store.Register(context.Background(), validRegistration()))

	// Registration never signs the user in
	assert.False(t, f.store.IsAuthenticated())

	call, ok := f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, "/login", call.target)
	assert.False(t, call.replace)

	assert.Equal(t, msgRegisterSuccess, f.notifier.Last().Message)
}

func TestRegister_StripsLocalOnlyFields(t *testing.T) {
	f := setupStoreTest(t, nil)

	var submitted models.RegisterInput
	f.api.register = func(ctx context.Context, input models.RegisterInput) (*models.User, error) {
		submitted = input
		return &models.User{ID: 8}, nil
	}

	input := validRegistration()
	input.IsAdmin = true
	require.NoError(t, f.store.Register(context.Background(), input))

	assert.False(t, submitted.IsAdmin)
	assert.Empty(t, submitted.ConfirmPassword)
}

func TestRegister_ValidationRejection(t *testing.T) {
	f := setupStoreTest(t, nil)

	tests := []struct {
		name   string
		mutate func(input *models.RegisterInput)
		field  string
	}{
		{
			name:   "short name",
			mutate: func(input *models.RegisterInput) { input.Name = "Maria" },
			field:  "name",
		},
		{
			name:   "invalid email",
			mutate: func(input *models.RegisterInput) { input.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:   "weak password",
			mutate: func(input *models.RegisterInput) { input.Password = "abc" },
			field:  "password",
		},
		{
			name: "confirmation mismatch",
			mutate: func(input *models.RegisterInput) {
				input.ConfirmPassword = "Other@pass1"
			},
			field: "confirmPassword",
		},
		{
			name:   "invalid cpf",
			mutate: func(input *models.RegisterInput) { input.CPF = "11111111111" },
			field:  "cpf",
		},
		{
			name:   "missing city",
			mutate: func(input *models.RegisterInput) { input.Address.City = "" },
			field:  "address.city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegistration()
			tt.mutate(&input)

			err := f.store.Register(context.Background(), input)
			require.Error(t, err)

			var validationErr *ValidationFailedError
			require.ErrorAs(t, err, &validationErr)

			fields := make([]string, 0, len(validationErr.Result.Errors))
			for _, fieldError := range validationErr.Result.Errors {
				fields = append(fields, fieldError.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}

	// Nothing reached the remote service
	assert.Equal(t, 0, f.navigator.count())
}

func TestEditProfile_RequiresAuthentication(t *testing.T) {
	f := setupStoreTest(t, nil)

	err := f.store.EditProfile(context.Background(), validProfileEdit())
	assert.ErrorIs(t, err, models.ErrNotAuthenticated)
}

func TestEditProfile_PersistsServerRecord(t *testing.T) {
	f := setupStoreTest(t, nil)
	f.signIn(t)

	f.api.updateProfile = func(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error) {
		assert.Equal(t, int64(7), id)
		assert.Equal(t, "opaque-token", token)
		return &models.User{ID: 7, Name: input.Name, Email: input.Email, Age: 99}, nil
	}

	require.NoError(t, f.store.EditProfile(context.Background(), validProfileEdit()))

	// The server's record wins, even where it disagrees with the input
	user := f.store.User()
	assert.Equal(t, "Maria de Souza Oliveira", user.Name)
	assert.Equal(t, 99, user.Age)

	record, err := f.files.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, record.User)
	assert.Equal(t, "opaque-token", record.Token)

	assert.Equal(t, msgProfileUpdated, f.notifier.Last().Message)
}

func TestEditProfile_RemoteFailureKeepsSession(t *testing.T) {
	f := setupStoreTest(t, nil)
	f.signIn(t)

	f.api.updateProfile = func(ctx context.Context, id int64, token string, input models.EditProfileInput) (*models.User, error) {
		return nil, errors.New("boom")
	}

	err := f.store.EditProfile(context.Background(), validProfileEdit())
	require.Error(t, err)

	assert.Equal(t, "Maria da Silva Souza", f.store.User().Name)

	record, readErr := f.files.Read(context.Background())
	require.NoError(t, readErr)
	assert.Equal(t, "Maria da Silva Souza", record.User.Name)
}

func TestSignOut(t *testing.T) {
	f := setupStoreTest(t, nil)
	f.signIn(t)

	require.NoError(t, f.store.SignOut(context.Background()))

	assert.False(t, f.store.IsAuthenticated())
	assert.True(t, f.store.Session().Empty())

	_, err := f.files.Read(context.Background())
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	call, ok := f.navigator.last()
	require.True(t, ok)
	assert.Equal(t, "/login", call.target)
	assert.True(t, call.replace)
}
