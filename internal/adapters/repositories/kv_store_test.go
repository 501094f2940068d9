package repositories

import (
	"context"
	"emergency-response-service/internal/platform/db"
	"emergency-response-service/internal/ports"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type KVStoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) ports.KVStore
	store    ports.KVStore
	ctx      context.Context
}

func (s *KVStoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func TestSqliteKVStore(t *testing.T) {
	suite.Run(t, &KVStoreSuite{newStore: func(t *testing.T) ports.KVStore {
		conn, err := db.OpenSQLite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = conn.Close() })
		require.NoError(t, InitSchema(conn))
		return NewSqliteKVStore(conn)
	}})
}

func TestRedisKVStore(t *testing.T) {
	suite.Run(t, &KVStoreSuite{newStore: func(t *testing.T) ports.KVStore {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedisKVStore(client)
	}})
}

func TestMemoryKVStore(t *testing.T) {
	suite.Run(t, &KVStoreSuite{newStore: func(t *testing.T) ports.KVStore {
		return NewMemoryKVStore()
	}})
}

func (s *KVStoreSuite) TestMissingKey() {
	v, ok, err := s.store.Get(s.ctx, "emergency_contacts")
	s.Require().NoError(err)
	s.False(ok)
	s.Nil(v)
}

func (s *KVStoreSuite) TestSetThenGet() {
	s.Require().NoError(s.store.Set(s.ctx, "user_profile", []byte(`{"name":"Asha"}`)))

	v, ok, err := s.store.Get(s.ctx, "user_profile")
	s.Require().NoError(err)
	s.True(ok)
	s.JSONEq(`{"name":"Asha"}`, string(v))
}

func (s *KVStoreSuite) TestSetReplacesWholeValue() {
	s.Require().NoError(s.store.Set(s.ctx, "donors", []byte(`[{"phone":"p1"},{"phone":"p2"}]`)))
	s.Require().NoError(s.store.Set(s.ctx, "donors", []byte(`[]`)))

	v, ok, err := s.store.Get(s.ctx, "donors")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("[]", string(v))
}

func TestReadContactsSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.json")
	body := `[
		{"name": "Mom", "phone": "+15550100"},
		{"name": "Ravi", "phone": "98765 43210", "dial_code": "+91"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	contacts, err := ReadContactsSeed(path)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	require.Equal(t, "+15550100", contacts[0].Phone)
	require.Equal(t, "+919876543210", contacts[1].Phone)
}

func TestReadContactsSeedRejectsBlankName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":" ","phone":"+1"}]`), 0o600))

	_, err := ReadContactsSeed(path)
	require.ErrorContains(t, err, "index 1")
}
