package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/kvstore"
)

func menuItem(id, name string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: price, IsAvailable: true}
}

func TestAddItemNewAndRepeat(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(1))

	added, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	assert.False(t, added)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.ItemCount())
}

func TestLinesStayUniqueAndPositive(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(2))

	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	_, err = s.AddItem(menuItem("m2", "Caesar Salad", 9.99))
	require.NoError(t, err)
	_, err = s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	require.NoError(t, s.SetQuantity("m2", 5))

	seen := map[string]bool{}
	for _, l := range s.Lines() {
		assert.False(t, seen[l.ItemID], "duplicate line for %s", l.ItemID)
		seen[l.ItemID] = true
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
}

func TestTotal(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(3))

	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	_, err = s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	_, err = s.AddItem(menuItem("m2", "Tiramisu", 8.99))
	require.NoError(t, err)

	assert.InDelta(t, 2*14.99+8.99, s.Total(), 1e-9)
}

func TestPersistReload(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	key := Key(4)

	s := Open(kv, key)
	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	require.NoError(t, s.SetQuantity("m1", 3))

	reloaded := Open(kv, key)
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m1", lines[0].ItemID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 14.99, lines[0].UnitPrice, 1e-9)
}

func TestOpenMissingSnapshot(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(5))
	assert.Empty(t, s.Lines())
	assert.Zero(t, s.Total())
}

func TestOpenCorruptSnapshot(t *testing.T) {
	cases := map[string]string{
		"not json":           "{{{",
		"wrong shape":        `{"items": []}`,
		"empty item id":      `[{"itemId":"","name":"x","unitPrice":1,"quantity":1}]`,
		"zero quantity":      `[{"itemId":"m1","name":"x","unitPrice":1,"quantity":0}]`,
		"negative price":     `[{"itemId":"m1","name":"x","unitPrice":-1,"quantity":1}]`,
		"duplicate item ids": `[{"itemId":"m1","name":"x","unitPrice":1,"quantity":1},{"itemId":"m1","name":"x","unitPrice":1,"quantity":2}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			require.NoError(t, kv.Set(Key(6), raw))

			s := Open(kv, Key(6))
			assert.Empty(t, s.Lines(), "corrupt snapshot should reset to empty")

			// The store stays usable after recovery.
			_, err := s.AddItem(menuItem("m2", "Tiramisu", 8.99))
			require.NoError(t, err)
			assert.Equal(t, 1, s.ItemCount())
		})
	}
}

func TestSetQuantity(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(7))
	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)

	err = s.SetQuantity("m1", -2)
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, s.Lines()[0].Quantity, "rejected update must not change the line")

	require.NoError(t, s.SetQuantity("m1", 4))
	assert.Equal(t, 4, s.Lines()[0].Quantity)

	require.NoError(t, s.SetQuantity("m1", 0))
	assert.Empty(t, s.Lines(), "quantity zero removes the line")

	require.NoError(t, s.SetQuantity("ghost", 2), "absent item is a no-op")
	assert.Empty(t, s.Lines())
}

func TestRemoveItem(t *testing.T) {
	s := Open(kvstore.NewMemoryStore(), Key(8))
	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)
	_, err = s.AddItem(menuItem("m2", "Tiramisu", 8.99))
	require.NoError(t, err)

	require.NoError(t, s.RemoveItem("m1"))
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "m2", lines[0].ItemID)

	require.NoError(t, s.RemoveItem("ghost"), "absent item is a no-op")
	assert.Len(t, s.Lines(), 1)
}

func TestClear(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	s := Open(kv, Key(9))
	_, err := s.AddItem(menuItem("m1", "Margherita Pizza", 14.99))
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Lines())

	reloaded := Open(kv, Key(9))
	assert.Empty(t, reloaded.Lines(), "clear persists")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "cart:42", Key(42))
	assert.Equal(t, "cart:guest:abc123", GuestKey("abc123"))
}
