package memory

import (
	"context"

	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	v view
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.with("CreateUser", func(st *state) error {
		if _, ok := st.userByEmail[user.Email]; ok {
			return domain.ErrAccountExists
		}
		st.users[user.ID] = *user
		st.userByEmail[user.Email] = user.ID
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.with("GetUserByID", func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.with("GetUserByEmail", func(st *state) error {
		if id, ok := st.userByEmail[email]; ok {
			u := st.users[id]
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.v.with("UpdateUser", func(st *state) error {
		old, ok := st.users[user.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if old.Email != user.Email {
			if _, taken := st.userByEmail[user.Email]; taken {
				return domain.ErrAccountExists
			}
			delete(st.userByEmail, old.Email)
			st.userByEmail[user.Email] = user.ID
		}
		st.users[user.ID] = *user
		return nil
	})
}
