package cart

import (
	"encoding/json"
	"strconv"
	"sync"
)

// Store is the narrow key-value contract the engine persists through. Values
// are opaque JSON blobs; schema versioning is not enforced, a value that
// fails to parse is treated as absent.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// MemoryStore is the in-process Store used for guest sessions and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// Storage keys, kept from the original storefront so migrated state keeps
// working.
const (
	cartKey    = "acai_point_cart_v1"
	profileKey = "acai_point_profile_v1"
	pointsKey  = "acai_point_points_v1"
)

// Session reads and writes one customer's cart, profile and loyalty balance
// through a Store. A prefix isolates concurrent guest sessions sharing one
// backing store.
type Session struct {
	store  Store
	prefix string
}

func NewSession(store Store) *Session {
	return &Session{store: store}
}

// NewPrefixedSession namespaces all keys under the given session id.
func NewPrefixedSession(store Store, id string) *Session {
	return &Session{store: store, prefix: id + ":"}
}

func (s *Session) key(k string) string { return s.prefix + k }

// Cart loads the persisted cart; corrupt or missing data yields an empty one.
func (s *Session) Cart() Cart {
	raw, ok := s.store.Get(s.key(cartKey))
	if !ok {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cart{}
	}
	return c
}

func (s *Session) SaveCart(c Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	s.store.Set(s.key(cartKey), raw)
}

// Profile loads the persisted delivery profile; the second return is false
// when none is stored or the data does not parse.
func (s *Session) Profile() (Profile, bool) {
	raw, ok := s.store.Get(s.key(profileKey))
	if !ok {
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false
	}
	return p, true
}

func (s *Session) SaveProfile(p Profile) {
	raw, err := json.Marshal(p.Normalized())
	if err != nil {
		return
	}
	s.store.Set(s.key(profileKey), raw)
}

// Points loads the loyalty balance; anything unparseable counts as zero.
func (s *Session) Points() int {
	raw, ok := s.store.Get(s.key(pointsKey))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SavePoints persists the balance, clamped at zero.
func (s *Session) SavePoints(n int) {
	if n < 0 {
		n = 0
	}
	s.store.Set(s.key(pointsKey), []byte(strconv.Itoa(n)))
}

// Clear drops the session's cart (and its redemption flag) but keeps the
// profile and points, matching post-checkout behavior.
func (s *Session) Clear() {
	s.store.Delete(s.key(cartKey))
}
