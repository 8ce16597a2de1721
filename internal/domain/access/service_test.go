package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"cat-registry/internal/domain/owners"
	"cat-registry/internal/ports/auth"
	"cat-registry/internal/ports/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeOwners struct {
	owner owners.Owner
	pass  string
	err   error
}

func (f fakeOwners) Authenticate(_ context.Context, email, password string) (owners.Owner, error) {
	if f.err != nil {
		return owners.Owner{}, f.err
	}
	if email != f.owner.Email || password != f.pass {
		return owners.Owner{}, owners.ErrInvalidCredentials
	}
	return f.owner, nil
}

type mapStore struct {
	items map[string]session.Session
}

func (m *mapStore) Put(_ context.Context, s session.Session) error {
	m.items[s.Token] = s
	return nil
}

func (m *mapStore) Get(_ context.Context, token string) (session.Session, error) {
	s, ok := m.items[token]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (m *mapStore) Delete(_ context.Context, token string) error {
	delete(m.items, token)
	return nil
}

func (m *mapStore) DeleteByOwner(_ context.Context, ownerID int64) (int, error) {
	n := 0
	for k, s := range m.items {
		if s.OwnerID == ownerID {
			delete(m.items, k)
			n++
		}
	}
	return n, nil
}

func TestService_LoginLogout(t *testing.T) {
	store := &mapStore{items: map[string]session.Session{}}
	o := owners.Owner{ID: 5, Email: "ana@example.com", Permission: auth.PermissionOwner}
	svc := NewService(fakeOwners{owner: o, pass: "secret-pass"}, store, time.Hour)
	fixed := time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	sess, got, err := svc.Login(ctx, "ana@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, fixed.Add(time.Hour), sess.ExpiresAt)
	assert.Equal(t, auth.PermissionOwner, sess.Permission)

	stored, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.OwnerID)

	other, _, err := svc.Login(ctx, "ana@example.com", "secret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, sess.Token, other.Token)

	require.NoError(t, svc.Logout(ctx, sess.Token))
	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "unknown"))
}

func TestService_Login_Rejections(t *testing.T) {
	store := &mapStore{items: map[string]session.Session{}}
	svc := NewService(fakeOwners{owner: owners.Owner{ID: 1, Email: "a@example.com"}, pass: "12345678"}, store, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, store.items)

	boom := errors.New("db down")
	svc = NewService(fakeOwners{err: boom}, store, time.Hour)
	_, _, err = svc.Login(ctx, "a@example.com", "12345678")
	assert.ErrorIs(t, err, boom)
}
