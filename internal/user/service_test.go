package user

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/auth"
	"github.com/ratepoint/service-core/internal/user/entity"
	"github.com/ratepoint/service-core/internal/user/repo"
)

// fakeRepo mirrors the storage contract in memory, including the unique
// email constraint.
type fakeRepo struct {
	users []entity.User
}

func (f *fakeRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return apperr.DuplicateEmail()
		}
	}
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].PasswordHash = hash
			return nil
		}
	}
	return apperr.Validation("user not found")
}

func (f *fakeRepo) List(_ context.Context, _ repo.Filter, _, _ string) ([]entity.User, error) {
	return f.users, nil
}

func newTestService(f *fakeRepo) *Service {
	return NewService(f, auth.BcryptHasher{Cost: 4}, auth.NewIssuer([]byte("test-secret")))
}

const (
	validName    = "Johnathan Maxwell Stirling"
	validAddress = "12 Harbour Lane, Dockside"
	validPass    = "Valid@pass1"
)

func TestSignupPersistsHashedPassword(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	s := newTestService(f)

	u, err := s.Signup(context.Background(), SignupInput{
		Name: validName, Email: "Jon@Example.COM", Password: validPass, Address: validAddress,
	})
	require.NoError(t, err)
	require.Len(t, f.users, 1)

	assert.NotEqual(t, validPass, u.PasswordHash)
	assert.True(t, auth.BcryptHasher{}.Verify(u.PasswordHash, validPass))
	assert.Equal(t, "jon@example.com", u.Email)
	assert.Equal(t, auth.RoleNormal, u.Role)
	assert.NotEmpty(t, u.ID)
}

func TestSignupRoleFolding(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	s := newTestService(f)

	cases := map[string]string{
		"owner":      auth.RoleStoreOwner,
		"storeowner": auth.RoleStoreOwner,
		"admin":      auth.RoleAdmin,
		"wizard":     auth.RoleNormal,
	}
	i := 0
	for in, want := range cases {
		u, err := s.Signup(context.Background(), SignupInput{
			Name: validName, Email: "role" + string(rune('a'+i)) + "@example.com",
			Password: validPass, Address: validAddress, Role: in,
		})
		require.NoError(t, err)
		assert.Equal(t, want, u.Role, "role input %q", in)
		i++
	}
}

func TestSignupValidationRejectsAndPersistsNothing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"short name", SignupInput{Name: "Too Short", Email: "a@b.co", Password: validPass, Address: validAddress}},
		{"long name", SignupInput{Name: strings.Repeat("x", 61), Email: "a@b.co", Password: validPass, Address: validAddress}},
		{"long address", SignupInput{Name: validName, Email: "a@b.co", Password: validPass, Address: strings.Repeat("x", 401)}},
		{"missing address", SignupInput{Name: validName, Email: "a@b.co", Password: validPass}},
		{"weak password", SignupInput{Name: validName, Email: "a@b.co", Password: "weakweak", Address: validAddress}},
		{"bad email", SignupInput{Name: validName, Email: "not-an-email", Password: validPass, Address: validAddress}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := &fakeRepo{}
			s := newTestService(f)
			_, err := s.Signup(context.Background(), c.in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Empty(t, f.users, "nothing may be persisted on validation failure")
		})
	}
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	s := newTestService(f)

	first := SignupInput{Name: validName, Email: "dup@example.com", Password: validPass, Address: validAddress}
	_, err := s.Signup(context.Background(), first)
	require.NoError(t, err)

	second := first
	second.Email = "DUP@Example.Com"
	_, err = s.Signup(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDuplicateEmail, apperr.KindOf(err))
	assert.Len(t, f.users, 1, "exactly one row after duplicate attempt")
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	s := newTestService(f)
	_, err := s.Signup(context.Background(), SignupInput{
		Name: validName, Email: "who@example.com", Password: validPass, Address: validAddress,
	})
	require.NoError(t, err)

	_, _, errWrongPass := s.Login(context.Background(), "who@example.com", "Wrong@pass1")
	_, _, errUnknown := s.Login(context.Background(), "nobody@example.com", validPass)

	require.Error(t, errWrongPass)
	require.Error(t, errUnknown)
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(errWrongPass))
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(errUnknown))
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestLoginIssuesValidToken(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	issuer := auth.NewIssuer([]byte("test-secret"))
	s := NewService(f, auth.BcryptHasher{Cost: 4}, issuer)

	u, err := s.Signup(context.Background(), SignupInput{
		Name: validName, Email: "tok@example.com", Password: validPass, Address: validAddress, Role: "owner",
	})
	require.NoError(t, err)

	token, got, err := s.Login(context.Background(), "TOK@example.com", validPass)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, auth.RoleStoreOwner, claims.Role)
}

func TestChangePasswordAuthorization(t *testing.T) {
	t.Parallel()

	f := &fakeRepo{}
	s := newTestService(f)
	u, err := s.Signup(context.Background(), SignupInput{
		Name: validName, Email: "pw@example.com", Password: validPass, Address: validAddress,
	})
	require.NoError(t, err)

	// a stranger may not change it
	err = s.ChangePassword(context.Background(), u.ID, "Other@pass1", "someone-else", auth.RoleNormal)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// weak replacement rejected
	err = s.ChangePassword(context.Background(), u.ID, "weakweak", u.ID, auth.RoleNormal)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// self change works and the new password verifies
	require.NoError(t, s.ChangePassword(context.Background(), u.ID, "Fresh@pass2", u.ID, auth.RoleNormal))
	_, _, err = s.Login(context.Background(), "pw@example.com", "Fresh@pass2")
	require.NoError(t, err)

	// admin may change anyone's
	require.NoError(t, s.ChangePassword(context.Background(), u.ID, "Admin@set3!", "admin-id", auth.RoleAdmin))
}
