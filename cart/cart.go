package cart

// LineItem is one row in the cart: a distinct purchasable item and its
// quantity. Descriptive fields are snapshots taken when the item is first
// added and are not re-synced from the catalog afterwards.
type LineItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	Image           string  `json:"image,omitempty"`
	RestaurantLabel string  `json:"restaurant_label,omitempty"`
	CookTimeMinutes int     `json:"cook_time_minutes,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	ReviewCount     int     `json:"review_count,omitempty"`
}

// Cart holds an ordered collection of line items, at most one per item ID.
// Insertion order is preserved: the first add determines a line's position
// and later updates never reorder it.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add merges qty into an existing line for item.ID, or appends a new line
// at the end. A qty of 0 or less is treated as 1 (the default add).
// Callers are expected to pass pre-validated items; the cart does not
// police prices or metadata.
func (c *Cart) Add(item LineItem, qty int) {
	if qty <= 0 {
		qty = 1
	}
	if i := c.indexOf(item.ID); i >= 0 {
		c.items[i].Quantity += qty
		return
	}
	item.Quantity = qty
	c.items = append(c.items, item)
}

// UpdateQuantity sets a line's quantity to exactly qty. qty <= 0 removes
// the line. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(id string, qty int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return
	}
	c.items[i].Quantity = qty
}

// Remove deletes the line with the given id if present.
func (c *Cart) Remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total returns the sum of unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.items {
		total += c.items[i].UnitPrice * float64(c.items[i].Quantity)
	}
	return total
}

// ItemCount returns the total unit count (sum of quantities), not the
// number of lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.items {
		count += c.items[i].Quantity
	}
	return count
}

// Item returns the line for id and whether it exists.
func (c *Cart) Item(id string) (LineItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return LineItem{}, false
}

// Contains reports whether a line exists for id.
func (c *Cart) Contains(id string) bool {
	return c.indexOf(id) >= 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// replaceItems swaps in a rehydrated snapshot. Used by Store on open.
func (c *Cart) replaceItems(items []LineItem) {
	c.items = items
}
