// Package cart keeps the shopping cart entirely on the client, persisted to
// a JSON file per user so it survives restarts. The server never sees a cart
// until checkout.
package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ldelvaux/pcforge/pkg/client"
)

type Line struct {
	Configuration client.Configuration `json:"configuration"`
	Components    []client.Component   `json:"components"`
	Quantity      int                  `json:"quantity"`
}

// Key identifies a line by its component set, independent of insertion
// order, so the same build is never duplicated.
func (l Line) Key() string {
	return KeyFor(l.Components)
}

func KeyFor(components []client.Component) string {
	ids := make([]string, 0, len(components))
	for _, c := range components {
		ids = append(ids, strconv.FormatUint(uint64(c.ID), 10))
	}
	sort.Strings(ids)
	sum := sha256.Sum256([]byte(strings.Join(ids, "-")))
	return hex.EncodeToString(sum[:])
}

type Cart struct {
	dir    string
	userID uint
	lines  []Line
}

func path(dir string, userID uint) string {
	return filepath.Join(dir, fmt.Sprintf("cart_user_%d.json", userID))
}

// Load reads the user's cart file; a missing file is an empty cart.
func Load(dir string, userID uint) (*Cart, error) {
	c := &Cart{dir: dir, userID: userID}

	data, err := os.ReadFile(path(dir, userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := json.Unmarshal(data, &c.lines); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

func (c *Cart) save() error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return os.WriteFile(path(c.dir, c.userID), data, 0o600)
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Add accumulates: a build already in the cart gets its quantity bumped,
// a new build becomes its own line with quantity 1.
func (c *Cart) Add(cfg client.Configuration, components []client.Component) error {
	key := KeyFor(components)
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity++
			return c.save()
		}
	}
	c.lines = append(c.lines, Line{Configuration: cfg, Components: components, Quantity: 1})
	return c.save()
}

func (c *Cart) Remove(key string) error {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.Key() != key {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	return c.save()
}

// UpdateQuantity sets a line's quantity; anything below 1 removes the line.
func (c *Cart) UpdateQuantity(key string, qty int) error {
	if qty <= 0 {
		return c.Remove(key)
	}
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity = qty
			return c.save()
		}
	}
	return nil
}

func (c *Cart) Clear() error {
	c.lines = nil
	if err := os.Remove(path(c.dir, c.userID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// TotalPrice sums component prices per line times the line quantity. The
// figure is display-only: checkout is priced server-side.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		lineSum := decimal.Zero
		for _, comp := range l.Components {
			lineSum = lineSum.Add(comp.Price)
		}
		total = total.Add(lineSum.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.Round(2)
}

// CheckoutLines converts the cart into the server's checkout request shape.
func (c *Cart) CheckoutLines() []client.CheckoutLine {
	lines := make([]client.CheckoutLine, 0, len(c.lines))
	for _, l := range c.lines {
		lines = append(lines, client.CheckoutLine{
			ConfigurationID: l.Configuration.ID,
			Quantity:        l.Quantity,
		})
	}
	return lines
}
