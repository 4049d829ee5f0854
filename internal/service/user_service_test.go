package service

import (
	"context"
	"errors"
	"testing"

	"contech_bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	*fakeUserStore
	deleted   []int
	removed   int64
	deleteErr error
}

func (r *fakeUserRepo) DeleteCascade(_ context.Context, id int) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return r.removed, nil
}

func TestGetUser(t *testing.T) {
	users := &fakeUserRepo{fakeUserStore: newFakeUserStore(contractor())}
	svc := NewUserService(users, newFakeJobRepo(), zap.NewNop())

	u, err := svc.GetUser(context.Background(), ownerPhone)
	require.NoError(t, err)
	assert.Equal(t, "Construtora", u.DisplayName)

	_, err = svc.GetUser(context.Background(), "whatsapp:+000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_InvalidatesCacheWhenPostingsRemoved(t *testing.T) {
	users := &fakeUserRepo{fakeUserStore: newFakeUserStore(contractor()), removed: 3}
	jobs := newFakeJobRepo()
	svc := NewUserService(users, jobs, zap.NewNop())

	removed, err := svc.DeleteUser(context.Background(), ownerPhone)

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, []int{7}, users.deleted)
	assert.Equal(t, 1, jobs.invalidated)
}

func TestDeleteUser_NoPostings(t *testing.T) {
	users := &fakeUserRepo{fakeUserStore: newFakeUserStore(model.User{ID: 2, Phone: phone, Role: model.RoleWorker})}
	jobs := newFakeJobRepo()
	svc := NewUserService(users, jobs, zap.NewNop())

	removed, err := svc.DeleteUser(context.Background(), phone)

	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Zero(t, jobs.invalidated)
}

func TestDeleteUser_Errors(t *testing.T) {
	users := &fakeUserRepo{fakeUserStore: newFakeUserStore()}
	_, err := NewUserService(users, newFakeJobRepo(), zap.NewNop()).DeleteUser(context.Background(), phone)
	assert.ErrorIs(t, err, ErrUserNotFound)

	boom := errors.New("tx aborted")
	users = &fakeUserRepo{fakeUserStore: newFakeUserStore(contractor()), deleteErr: boom}
	_, err = NewUserService(users, newFakeJobRepo(), zap.NewNop()).DeleteUser(context.Background(), ownerPhone)
	assert.ErrorIs(t, err, boom)
}
