package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/IgnacioLauriano/vive-salud/internal/auth"
	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login responses leak neither.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingFields rejects incomplete registrations.
	ErrMissingFields = errors.New("full name, email and password are required")
)

type UserService struct {
	repo user.Repository
	jwt  *config.JWTConfig
}

func NewUserService(repo user.Repository, jwt *config.JWTConfig) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

func newSalt() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Register creates a customer account.
func (s *UserService) Register(ctx context.Context, fullName, email, phone, password string) (*user.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	u := &user.User{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Salt:     newSalt(),
		Role:     user.RoleCustomer,
	}
	u.Password = hashPassword(password, u.Salt)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns a signed JWT carrying the user
// id, email and role.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if hashPassword(password, u.Salt) != u.Password {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(s.jwt, u.ID, u.Email, u.Role)
}

// GetByID returns one account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCustomers returns every account, for the back office.
func (s *UserService) ListCustomers(ctx context.Context) ([]*user.User, error) {
	return s.repo.ListAll(ctx)
}

// UpdateCustomer edits contact fields; role and credentials stay as they
// are.
func (s *UserService) UpdateCustomer(ctx context.Context, id int64, fullName, email, phone string) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		u.FullName = fullName
	}
	if email != "" {
		u.Email = email
	}
	u.Phone = phone
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteCustomer removes an account.
func (s *UserService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
