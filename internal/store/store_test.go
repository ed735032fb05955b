package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
	Kind string `gorm:"index"`
}

func (widget) TableName() string {
	return "widgets"
}

func testSchema() Schema {
	return Schema{
		Version: 1,
		Collections: []Collection{
			{
				Name:  "widgets",
				Model: &widget{},
				Indexes: []Index{
					{Field: "name", Unique: true},
					{Field: "kind"},
				},
			},
		},
	}
}

func openTestStore(t *testing.T, name string) *Store {
	t.Helper()

	connector := NewConnector(Config{
		Driver:      "sqlite",
		DSN:         fmt.Sprintf("file:%v?mode=memory&cache=shared", name),
		FailOnError: true,
	}, testSchema())

	s, err := connector.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = connector.Close()
	})

	return s
}

func TestAddAndGet(t *testing.T) {
	s := openTestStore(t, "store_add_get")
	ctx := context.Background()

	record := widget{Name: "espresso cup", Kind: "crockery"}
	require.NoError(t, Add(ctx, s, &record))
	assert.NotZero(t, record.ID)

	got, found, err := Get[widget](ctx, s, record.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "espresso cup", got.Name)
	assert.Equal(t, "crockery", got.Kind)
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t, "store_get_missing")

	_, found, err := Get[widget](context.Background(), s, 9999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddDuplicateUniqueValue(t *testing.T) {
	s := openTestStore(t, "store_duplicate")
	ctx := context.Background()

	first := widget{Name: "carafe", Kind: "glassware"}
	require.NoError(t, Add(ctx, s, &first))

	second := widget{Name: "carafe", Kind: "glassware"}
	err := Add(ctx, s, &second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t, "store_update")
	ctx := context.Background()

	record := widget{Name: "tray", Kind: "service"}
	require.NoError(t, Add(ctx, s, &record))

	record.Kind = "bar"
	require.NoError(t, Update(ctx, s, &record))

	got, found, err := Get[widget](ctx, s, record.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "bar", got.Kind)
}

func TestDeleteMissingKeyIsNoOp(t *testing.T) {
	s := openTestStore(t, "store_delete_noop")

	assert.NoError(t, Delete[widget](context.Background(), s, 4242))
}

func TestClear(t *testing.T) {
	s := openTestStore(t, "store_clear")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		record := widget{Name: fmt.Sprintf("item-%v", i), Kind: "bulk"}
		require.NoError(t, Add(ctx, s, &record))
	}

	require.NoError(t, Clear[widget](ctx, s))

	all, err := GetAll[widget](ctx, s)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByIndex(t *testing.T) {
	s := openTestStore(t, "store_get_by_index")
	ctx := context.Background()

	for _, w := range []widget{
		{Name: "red glass", Kind: "glassware"},
		{Name: "white glass", Kind: "glassware"},
		{Name: "side plate", Kind: "crockery"},
	} {
		w := w
		require.NoError(t, Add(ctx, s, &w))
	}

	glasses, err := GetByIndex[widget](ctx, s, "kind", "glassware")
	require.NoError(t, err)
	assert.Len(t, glasses, 2)
}

func TestGetByIndexUnknownField(t *testing.T) {
	s := openTestStore(t, "store_unknown_index")

	_, err := GetByIndex[widget](context.Background(), s, "color", "red")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIndex)
}

func TestTxRollsBackOnError(t *testing.T) {
	s := openTestStore(t, "store_tx_rollback")
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Tx(ctx, func(tx *Store) error {
		record := widget{Name: "doomed", Kind: "none"}
		if err := Add(ctx, tx, &record); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := GetAll[widget](ctx, s)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTxCommitsAllWrites(t *testing.T) {
	s := openTestStore(t, "store_tx_commit")
	ctx := context.Background()

	err := s.Tx(ctx, func(tx *Store) error {
		for _, name := range []string{"first", "second"} {
			record := widget{Name: name, Kind: "batch"}
			if err := Add(ctx, tx, &record); err != nil {
				return err
			}
		}

		return nil
	})
	require.NoError(t, err)

	all, err := GetAll[widget](ctx, s)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	connector := NewConnector(Config{
		Driver: "oracle",
		DSN:    "whatever",
	}, testSchema())

	_, err := connector.Open(context.Background())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestOpenIsIdempotent(t *testing.T) {
	connector := NewConnector(Config{
		Driver:      "sqlite",
		DSN:         "file:store_idempotent?mode=memory&cache=shared",
		FailOnError: true,
	}, testSchema())
	t.Cleanup(func() {
		_ = connector.Close()
	})

	first, err := connector.Open(context.Background())
	require.NoError(t, err)

	second, err := connector.Open(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
