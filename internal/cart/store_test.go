package cart

import (
	"math"
	"testing"

	"dikra-store/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productID   = "dikraorb-classic"
	productName = "ذكرة أورب™ الكلاسيكي"
)

var price = decimal.NewFromInt(349)

func TestStore_Add(t *testing.T) {
	t.Run("Empty cart then first add", func(t *testing.T) {
		s := NewStore()
		assert.True(t, s.IsEmpty())

		s.Add(productID, productName, price, catalog.ColorBlack, 1, 1)

		assert.Equal(t, 1, s.TotalQuantity())
		assert.True(t, decimal.NewFromInt(349).Equal(s.TotalAmount()))
	})

	t.Run("Same product and color merges", func(t *testing.T) {
		s := NewStore()
		s.Add(productID, productName, price, catalog.ColorBlack, 1, 1)
		s.Add(productID, productName, price, catalog.ColorBlack, 1, 2)

		items := s.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.True(t, decimal.NewFromInt(1047).Equal(s.TotalAmount()))
	})

	t.Run("Merge ignores view and keeps latest view", func(t *testing.T) {
		s := NewStore()
		s.Add(productID, productName, price, catalog.ColorWhite, 1, 2)
		s.Add(productID, productName, price, catalog.ColorWhite, 3, 5)

		items := s.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].Quantity)
		assert.Equal(t, 3, items[0].View)
	})

	t.Run("Different colors keep insertion order", func(t *testing.T) {
		s := NewStore()
		s.Add(productID, productName, price, catalog.ColorWhite, 3, 1)
		s.Add(productID, productName, price, catalog.ColorBlack, 1, 1)
		s.Add(productID, productName, price, catalog.ColorWhite, 1, 1)

		items := s.Snapshot()
		require.Len(t, items, 2)
		assert.Equal(t, catalog.ColorWhite, items[0].Color)
		assert.Equal(t, catalog.ColorBlack, items[1].Color)
		assert.Equal(t, 3, s.TotalQuantity())
	})
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.Add(productID, productName, price, catalog.ColorWhite, 3, 1)
	s.Add(productID, productName, price, catalog.ColorBlack, 1, 2)

	t.Run("Absent line is a no-op", func(t *testing.T) {
		s.Remove(productID, catalog.ColorGold)
		s.Remove("other", catalog.ColorBlack)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Removes matching line", func(t *testing.T) {
		s.Remove(productID, catalog.ColorWhite)

		items := s.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, catalog.ColorBlack, items[0].Color)
		assert.Equal(t, 2, s.TotalQuantity())
	})
}

func TestStore_TotalAmount(t *testing.T) {
	s := NewStore()
	assert.True(t, decimal.Zero.Equal(s.TotalAmount()))

	s.Add(productID, productName, price, catalog.ColorBlack, 1, 2)
	s.Add(productID, productName, price, catalog.ColorWhite, 3, 1)
	s.Add("gift-box", "Gift box", decimal.RequireFromString("12.50"), catalog.ColorGold, 1, 3)

	want := decimal.Zero
	for _, it := range s.Snapshot() {
		want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, want.Equal(s.TotalAmount()))
	assert.Equal(t, "1084.5", s.TotalAmount().String())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(productID, productName, price, catalog.ColorBlack, 1, 1)

	snap := s.Snapshot()
	snap[0].Quantity = 99

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.Snapshot()[0].Quantity)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(productID, productName, price, catalog.ColorBlack, 1, 1)
	snap := s.Snapshot()

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.TotalQuantity())
	assert.Len(t, snap, 1)
}

func TestQuantityControl_Change(t *testing.T) {
	q := NewQuantityControl()
	assert.Equal(t, 1, q.Value())

	deltas := []int{-1, -5, 1, 1, -1, 3, -10, 2, 0, -2}
	for _, d := range deltas {
		got := q.Change(d)
		assert.GreaterOrEqual(t, got, MinQuantity)
		assert.Equal(t, got, q.Value())
	}

	q = NewQuantityControl()
	assert.Equal(t, 2, q.Change(1))
	assert.Equal(t, 1, q.Change(-4))
	assert.Equal(t, 4, q.Change(3))
}

func TestQuantityBounds(t *testing.T) {
	t.Run("Change saturates instead of overflowing", func(t *testing.T) {
		q := NewQuantityControl()
		assert.Equal(t, MaxQuantity, q.Change(math.MaxInt))
		assert.Equal(t, MaxQuantity, q.Change(math.MaxInt))
		assert.Equal(t, MinQuantity, q.Change(math.MinInt))
	})

	t.Run("Merged line stays within bounds", func(t *testing.T) {
		q := NewQuantityControl()
		q.Change(math.MaxInt)

		s := NewStore()
		s.Add(productID, productName, price, catalog.ColorBlack, 1, q.Value())
		s.Add(productID, productName, price, catalog.ColorBlack, 1, q.Value())

		items := s.Snapshot()
		require.Len(t, items, 1)
		assert.Equal(t, MaxQuantity, items[0].Quantity)
		assert.True(t, s.TotalAmount().IsPositive())
		assert.True(t, price.Mul(decimal.NewFromInt(MaxQuantity)).Equal(s.TotalAmount()))
	})

	t.Run("Out of range add is clamped", func(t *testing.T) {
		s := NewStore()
		s.Add(productID, productName, price, catalog.ColorWhite, 1, math.MaxInt)
		s.Add(productID, productName, price, catalog.ColorBlack, 1, -3)

		items := s.Snapshot()
		require.Len(t, items, 2)
		assert.Equal(t, MaxQuantity, items[0].Quantity)
		assert.Equal(t, MinQuantity, items[1].Quantity)
	})
}

func TestSummarize(t *testing.T) {
	c := catalog.Default()
	s := NewStore()
	s.Add(productID, productName, price, catalog.ColorWhite, 3, 2)

	sum := Summarize(c, s)

	require.Len(t, sum.Lines, 1)
	line := sum.Lines[0]
	assert.Equal(t, "أبيض", line.ColorName)
	assert.Equal(t, c.ImageFor(catalog.ColorWhite, 3), line.Image)
	assert.Equal(t, "698", line.Subtotal.String())
	assert.Equal(t, 2, sum.TotalQuantity)
	assert.Equal(t, "698", sum.TotalAmount.String())
}
