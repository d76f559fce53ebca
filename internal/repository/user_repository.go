package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusmerch/store/internal/model"
	"github.com/campusmerch/store/internal/store"
	"github.com/campusmerch/store/internal/utils"
)

// UserRepo is the credential store: user records plus the refresh-token
// bookkeeping that makes revocation possible.
type UserRepo struct{ Store *store.Store }

func NewUserRepo(s *store.Store) *UserRepo { return &UserRepo{Store: s} }

// NewUser carries the validated signup fields into Create. Password is
// plaintext here and only here; Create hashes it before anything is
// persisted.
type NewUser struct {
	Username  string
	Email     string
	Password  string
	Role      model.Role
	StoreName string
	Location  string
}

// Create inserts a user after enforcing case-insensitive username and email
// uniqueness. The returned record includes the generated id and timestamp.
func (r *UserRepo) Create(ctx context.Context, nu NewUser, cost int) (model.User, error) {
	hash, err := utils.HashPassword(nu.Password, cost)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(nu.Username),
		Email:        strings.TrimSpace(nu.Email),
		PasswordHash: hash,
		Role:         nu.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if nu.Role == model.RoleStoreKeeper {
		u.StoreName = strings.TrimSpace(nu.StoreName)
		u.Location = strings.TrimSpace(nu.Location)
	}
	err = r.Store.Update(func(d *store.Data) error {
		for i := range d.Users {
			if strings.EqualFold(d.Users[i].Username, u.Username) {
				return ErrUsernameExists
			}
			if strings.EqualFold(d.Users[i].Email, u.Email) {
				return ErrEmailExists
			}
		}
		d.Users = append(d.Users, u)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// GetByEmail fetches a user by email, compared case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Users {
			if strings.EqualFold(d.Users[i].Email, strings.TrimSpace(email)) {
				u = d.Users[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Users {
			if d.Users[i].ID == id {
				u = d.Users[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return u, err
}

// SaveRefreshToken overwrites the user's live refresh token, implicitly
// invalidating whatever token was stored before.
func (r *UserRepo) SaveRefreshToken(ctx context.Context, userID, token string) error {
	return r.Store.Update(func(d *store.Data) error {
		for i := range d.Users {
			if d.Users[i].ID == userID {
				d.Users[i].RefreshToken = token
				return nil
			}
		}
		return ErrNotFound
	})
}

// FindByRefreshToken returns the user currently holding exactly this token
// value. The match is byte-for-byte; an older rotated-out token no longer
// matches anyone.
func (r *UserRepo) FindByRefreshToken(ctx context.Context, token string) (model.User, error) {
	var u model.User
	err := r.Store.View(func(d *store.Data) error {
		for i := range d.Users {
			if d.Users[i].RefreshToken != "" && d.Users[i].RefreshToken == token {
				u = d.Users[i]
				return nil
			}
		}
		return ErrNotFound
	})
	return u, err
}

// ClearRefreshToken revokes the session holding this token value. It is the
// sole revocation mechanism: access tokens run out their TTL.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, token string) error {
	return r.Store.Update(func(d *store.Data) error {
		for i := range d.Users {
			if d.Users[i].RefreshToken != "" && d.Users[i].RefreshToken == token {
				d.Users[i].RefreshToken = ""
				return nil
			}
		}
		return ErrNotFound
	})
}
