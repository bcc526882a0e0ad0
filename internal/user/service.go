package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ratepoint/service-core/internal/apperr"
	"github.com/ratepoint/service-core/internal/auth"
	"github.com/ratepoint/service-core/internal/user/entity"
	"github.com/ratepoint/service-core/internal/user/repo"
	"github.com/ratepoint/service-core/pkg/utilities"
)

// Repository is the data-access surface the service needs; *repo.UserRepo
// satisfies it, tests supply an in-memory fake.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	List(ctx context.Context, f repo.Filter, sortBy, order string) ([]entity.User, error)
}

// Service orchestrates signup, login, password change and admin listing.
type Service struct {
	repo   Repository
	hasher auth.Hasher
	tokens *auth.Issuer
}

func NewService(r Repository, hasher auth.Hasher, tokens *auth.Issuer) *Service {
	if hasher == nil {
		hasher = auth.BcryptHasher{Cost: 12}
	}
	return &Service{repo: r, hasher: hasher, tokens: tokens}
}

// SignupInput carries caller-supplied account fields. Role is optional and
// folds to normal when unrecognized.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// Signup validates, hashes and persists a new account. Validation runs in a
// fixed order and the first failing rule is reported; nothing is written on
// failure.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateAddress(in.Address); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
		Role:         auth.NormalizeRole(in.Role),
		Address:      in.Address,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if apperr.KindOf(err) == apperr.KindDuplicateEmail {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

// Login authenticates by normalized email and password and issues a bearer
// token. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperr.InvalidCredentials()
		}
		return "", nil, apperr.Storage(err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return "", nil, apperr.InvalidCredentials()
	}
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, apperr.Storage(err)
	}
	return token, u, nil
}

// IssueToken signs a token for an already-created user, so the HTTP layer
// can log callers in right after signup.
func (s *Service) IssueToken(u *entity.User) (string, error) {
	return s.tokens.Issue(u.ID, u.Role)
}

// ChangePassword re-hashes and overwrites the stored hash. Only the account
// holder or an admin may change a password; the current password is not
// checked, the bearer token is trusted in full.
func (s *Service) ChangePassword(ctx context.Context, targetID, newPassword, requesterID, requesterRole string) error {
	if requesterID != targetID && requesterRole != auth.RoleAdmin {
		return apperr.Forbidden("cannot change another user's password")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Storage(err)
	}
	if err := s.repo.UpdatePassword(ctx, targetID, hash); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return err
		}
		return apperr.Storage(err)
	}
	return nil
}

// List returns public views of users matching the filter.
func (s *Service) List(ctx context.Context, f repo.Filter, sortBy, order string) ([]entity.View, error) {
	users, err := s.repo.List(ctx, f, sortBy, order)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	views := make([]entity.View, 0, len(users))
	for i := range users {
		views = append(views, users[i].Public())
	}
	return views, nil
}
