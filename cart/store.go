package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// ErrSlotEmpty is returned by a Persister when no snapshot exists under
// the requested key.
var ErrSlotEmpty = errors.New("cart: slot empty")

// Persister is the durable slot a Store writes its snapshot through.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// RedisPersister keeps cart snapshots in Redis under cart:<owner> keys.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPersister wraps an existing Redis client. A zero ttl means
// snapshots never expire.
func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}
	return data, nil
}

func (p *RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	if err := p.client.Set(ctx, key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// MemoryPersister is a process-local slot, used in tests and as a
// fallback when no Redis address is configured.
type MemoryPersister struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{slots: make(map[string][]byte)}
}

func (p *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.slots[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (p *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(data))
	copy(out, data)
	p.slots[key] = out
	return nil
}

func (p *MemoryPersister) Delete(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.slots, key)
	return nil
}

// Store binds one Cart to one persistence slot. Every mutation writes the
// full ordered snapshot through to the slot; the in-memory state and the
// write are one logical step under the store's mutex. Concurrent sessions
// against the same slot are last-write-wins; no merge logic exists.
type Store struct {
	mu        sync.Mutex
	cart      *Cart
	persister Persister
	key       string
}

// Open creates a Store for owner and rehydrates it from the slot. A
// missing slot means a fresh cart. A slot that fails to decode is treated
// as no cart: the failure is logged and an empty cart is used. Open never
// fails over persisted content.
func Open(ctx context.Context, p Persister, owner string) *Store {
	s := &Store{
		cart:      New(),
		persister: p,
		key:       keyPrefix + owner,
	}

	data, err := p.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			log.Printf("cart: loading slot %s: %v (starting empty)", s.key, err)
		}
		return s
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart: corrupt snapshot in slot %s: %v (starting empty)", s.key, err)
		return s
	}
	s.cart.replaceItems(items)
	return s
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.cart.items)
	if err != nil {
		log.Printf("cart: marshal snapshot for %s: %v", s.key, err)
		return
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		log.Printf("cart: persist slot %s: %v", s.key, err)
	}
}

// AddItem merges qty into an existing line or appends a new one, then
// persists the snapshot.
func (s *Store) AddItem(ctx context.Context, item LineItem, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(item, qty)
	s.persist(ctx)
}

// UpdateQuantity sets a line's quantity absolutely; qty <= 0 removes the
// line. Persists the snapshot.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(id, qty)
	s.persist(ctx)
}

// RemoveItem deletes a line if present and persists the snapshot.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(id)
	s.persist(ctx)
}

// Clear empties the cart and persists the (empty) snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.persist(ctx)
}

// Total returns the cart total.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// ItemCount returns the total unit count.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Item returns the line for id and whether it exists.
func (s *Store) Item(id string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Item(id)
}

// Contains reports whether a line exists for id.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Contains(id)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// Close releases the store. The slot keeps the last written snapshot so
// a later Open for the same owner rehydrates it.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = New()
}
