package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmerch/store/internal/model"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return New(path), path
}

func TestViewOnMissingFileIsEmpty(t *testing.T) {
	s, _ := tempStore(t)
	err := s.View(func(d *Data) error {
		assert.Empty(t, d.Users)
		assert.Empty(t, d.Products)
		assert.Empty(t, d.Orders)
		return nil
	})
	require.NoError(t, err)
}

func TestCorruptFileSelfHeals(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	err := s.Update(func(d *Data) error {
		assert.Empty(t, d.Users, "unparseable document reinitializes empty")
		d.Users = append(d.Users, model.User{ID: "u1", Username: "alice"})
		return nil
	})
	require.NoError(t, err)

	err = s.View(func(d *Data) error {
		require.Len(t, d.Users, 1)
		assert.Equal(t, "alice", d.Users[0].Username)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdatePersistsAcrossInstances(t *testing.T) {
	s, path := tempStore(t)
	err := s.Update(func(d *Data) error {
		d.Products = append(d.Products, model.Product{ID: "p1", Name: "Hoodie"})
		return nil
	})
	require.NoError(t, err)

	// A second Store over the same file sees the write.
	again := New(path)
	err = again.View(func(d *Data) error {
		require.Len(t, d.Products, 1)
		assert.Equal(t, "Hoodie", d.Products[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestFailedUpdateLeavesFileUntouched(t *testing.T) {
	s, _ := tempStore(t)
	require.NoError(t, s.Update(func(d *Data) error {
		d.Users = append(d.Users, model.User{ID: "u1"})
		return nil
	}))

	boom := errors.New("boom")
	err := s.Update(func(d *Data) error {
		d.Users = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.View(func(d *Data) error {
		assert.Len(t, d.Users, 1, "rejected mutation must not reach disk")
		return nil
	})
	require.NoError(t, err)
}
