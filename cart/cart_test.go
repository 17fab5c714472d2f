package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineItem(id string, price float64) LineItem {
	return LineItem{
		ID:        id,
		Name:      "Item " + id,
		UnitPrice: price,
	}
}

func TestAdd_NewItem(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 2)

	item, ok := c.Item("a")
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, c.ItemCount())
	assert.Equal(t, 20.0, c.Total())
}

func TestAdd_DefaultQuantityIsOne(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 0)

	item, ok := c.Item("a")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
}

func TestAdd_SameIDMergesAdditively(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 1)
	c.Add(lineItem("a", 10), 2)

	item, ok := c.Item("a")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity, "second add must increment, not replace")
	assert.Len(t, c.Items(), 1)
}

func TestAdd_SnapshotNotResynced(t *testing.T) {
	c := New()
	first := lineItem("a", 10)
	first.Description = "original"
	c.Add(first, 1)

	changed := lineItem("a", 99)
	changed.Description = "changed"
	c.Add(changed, 1)

	item, _ := c.Item("a")
	assert.Equal(t, 10.0, item.UnitPrice, "add-time snapshot must not be overwritten")
	assert.Equal(t, "original", item.Description)
	assert.Equal(t, 2, item.Quantity)
}

func TestUpdateQuantity_AbsoluteSet(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 5)
	c.UpdateQuantity("a", 2)

	item, _ := c.Item("a")
	assert.Equal(t, 2, item.Quantity, "update is an absolute set, not additive")
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 3)
	c.UpdateQuantity("a", 0)

	assert.False(t, c.Contains("a"))
	assert.Equal(t, 0, c.ItemCount())
}

func TestUpdateQuantity_NegativeRemoves(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 3)
	c.UpdateQuantity("a", -1)

	assert.False(t, c.Contains("a"))
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 1)
	c.UpdateQuantity("missing", 5)

	assert.Equal(t, 1, c.ItemCount())
	assert.False(t, c.Contains("missing"))
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 1)
	c.Add(lineItem("b", 5), 1)

	c.Remove("a")
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))

	// Removing again is a no-op
	c.Remove("a")
	assert.Equal(t, 1, c.ItemCount())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 2)
	c.Add(lineItem("b", 5), 3)

	c.Clear()
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.ItemCount())
	assert.Equal(t, 0.0, c.Total())
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 1), 1)
	c.Add(lineItem("b", 2), 1)
	c.Add(lineItem("c", 3), 1)

	// Updating an earlier line must not move it
	c.Add(lineItem("a", 1), 1)
	c.UpdateQuantity("b", 7)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestTotalsMatchSums(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 2.50), 4)
	c.Add(lineItem("b", 1.25), 2)
	c.Add(lineItem("c", 9.99), 1)

	assert.Equal(t, 7, c.ItemCount())
	assert.InDelta(t, 2.50*4+1.25*2+9.99, c.Total(), 1e-9)
}

// The worked example: add A (10.00, qty 1), A again (qty 2), then B
// (5.50, qty 1), then set A to 0.
func TestWorkedExample(t *testing.T) {
	c := New()
	c.Add(lineItem("A", 10.00), 1)
	c.Add(lineItem("A", 10.00), 2)

	item, _ := c.Item("A")
	assert.Equal(t, 3, item.Quantity)
	assert.InDelta(t, 30.00, c.Total(), 1e-9)

	c.Add(lineItem("B", 5.50), 1)
	assert.Equal(t, 4, c.ItemCount())
	assert.InDelta(t, 35.50, c.Total(), 1e-9)

	c.UpdateQuantity("A", 0)
	assert.Equal(t, 1, c.ItemCount())
	assert.InDelta(t, 5.50, c.Total(), 1e-9)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(lineItem("a", 10), 1)

	items := c.Items()
	items[0].Quantity = 99

	item, _ := c.Item("a")
	assert.Equal(t, 1, item.Quantity)
}
