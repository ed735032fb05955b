package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type account struct {
	ID      uint `gorm:"primaryKey"`
	Balance int
}

func (account) TableName() string {
	return "accounts"
}

func upgradeSchema(version int, migrations ...Migration) Schema {
	return Schema{
		Version: version,
		Collections: []Collection{
			{Name: "accounts", Model: &account{}},
		},
		Seed: func(ctx context.Context, s *Store) error {
			record := account{Balance: 100}
			return Add(ctx, s, &record)
		},
		Migrations: migrations,
	}
}

func addToBalance(delta int) func(ctx context.Context, tx *Store) error {
	return func(ctx context.Context, tx *Store) error {
		return tx.DB().WithContext(ctx).
			Model(&account{}).
			Where("1 = 1").
			Update("balance", gorm.Expr("balance + ?", delta)).Error
	}
}

func openWithSchema(t *testing.T, name string, sc Schema, failOnError bool) (*Store, error) {
	t.Helper()

	connector := NewConnector(Config{
		Driver:      "sqlite",
		DSN:         fmt.Sprintf("file:%v?mode=memory&cache=shared", name),
		FailOnError: failOnError,
	}, sc)

	s, err := connector.Open(context.Background())
	if err == nil {
		t.Cleanup(func() {
			_ = connector.Close()
		})
	}

	return s, err
}

func storedVersion(t *testing.T, s *Store) int {
	t.Helper()

	var info schemaInfo
	require.NoError(t, s.DB().First(&info, 1).Error)

	return info.Version
}

func balance(t *testing.T, s *Store) int {
	t.Helper()

	var record account
	require.NoError(t, s.DB().First(&record).Error)

	return record.Balance
}

func TestFreshStoreSeedsThenMigrates(t *testing.T) {
	sc := upgradeSchema(2,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	s, err := openWithSchema(t, "migrate_fresh", sc, true)
	require.NoError(t, err)

	// The migrations ran on the freshly seeded row, in order.
	assert.Equal(t, 111, balance(t, s))
	assert.Equal(t, 2, storedVersion(t, s))
}

func TestReopenAtSameVersionRunsNothing(t *testing.T) {
	sc := upgradeSchema(2,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	first, err := openWithSchema(t, "migrate_reopen", sc, true)
	require.NoError(t, err)
	require.Equal(t, 111, balance(t, first))

	second, err := openWithSchema(t, "migrate_reopen", sc, true)
	require.NoError(t, err)
	assert.Equal(t, 111, balance(t, second))
	assert.Equal(t, 2, storedVersion(t, second))
}

func TestPartialUpgradeRunsOnlyPending(t *testing.T) {
	v1 := upgradeSchema(1,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
	)

	first, err := openWithSchema(t, "migrate_partial", v1, true)
	require.NoError(t, err)
	require.Equal(t, 110, balance(t, first))

	v2 := upgradeSchema(2,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	second, err := openWithSchema(t, "migrate_partial", v2, true)
	require.NoError(t, err)

	// Only version 2 ran; the seed and version 1 did not repeat.
	assert.Equal(t, 111, balance(t, second))
	assert.Equal(t, 2, storedVersion(t, second))
}

func TestStoredVersionNewerThanRequested(t *testing.T) {
	v2 := upgradeSchema(2,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	_, err := openWithSchema(t, "migrate_downgrade", v2, true)
	require.NoError(t, err)

	v1 := upgradeSchema(1,
		Migration{Version: 1, Description: "add ten", Run: addToBalance(10)},
	)

	_, err = openWithSchema(t, "migrate_downgrade", v1, true)
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestFailedMigrationAbortsWhenFailOnError(t *testing.T) {
	boom := errors.New("boom")
	sc := upgradeSchema(2,
		Migration{Version: 1, Description: "explode", Run: func(ctx context.Context, tx *Store) error {
			return boom
		}},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	_, err := openWithSchema(t, "migrate_fail_hard", sc, true)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 1, schemaErr.Version)
	assert.ErrorIs(t, err, boom)
}

func TestFailedMigrationSkippedWhenTolerant(t *testing.T) {
	sc := upgradeSchema(2,
		Migration{Version: 1, Description: "explode", Run: func(ctx context.Context, tx *Store) error {
			return errors.New("boom")
		}},
		Migration{Version: 2, Description: "add one", Run: addToBalance(1)},
	)

	s, err := openWithSchema(t, "migrate_fail_soft", sc, false)
	require.NoError(t, err)

	// Version 1 was skipped, version 2 still ran, and the store reports the
	// target version.
	assert.Equal(t, 101, balance(t, s))
	assert.Equal(t, 2, storedVersion(t, s))
}

func TestFailedMigrationRollsItsWritesBack(t *testing.T) {
	sc := upgradeSchema(1,
		Migration{Version: 1, Description: "write then explode", Run: func(ctx context.Context, tx *Store) error {
			if err := addToBalance(50)(ctx, tx); err != nil {
				return err
			}

			return errors.New("boom")
		}},
	)

	s, err := openWithSchema(t, "migrate_rollback", sc, false)
	require.NoError(t, err)

	assert.Equal(t, 100, balance(t, s))
}
