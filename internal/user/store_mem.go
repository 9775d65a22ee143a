package user

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byName map[string]*memUser
}

type memUser struct {
	User
	password string
}

// NewInMemoryStore backs handler tests; passwords are compared in plain
// text here, bcrypt stays in the SQL store.
func NewInMemoryStore() Store {
	return &memoryStore{byName: map[string]*memUser{}}
}

func (m *memoryStore) Create(_ context.Context, u User, password string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return User{}, ErrUsernameTaken
	}
	m.nextID++
	u.ID = m.nextID
	if u.Role == "" {
		u.Role = "user"
	}
	m.byName[u.Username] = &memUser{User: u, password: password}
	return u, nil
}

func (m *memoryStore) Authenticate(_ context.Context, username, password string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mu, ok := m.byName[username]
	if !ok {
		return User{}, ErrNotFound
	}
	if mu.password != password {
		return User{}, ErrInvalidCredentials
	}
	return mu.User, nil
}

func (m *memoryStore) List(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []User{}
	for _, mu := range m.byName {
		out = append(out, mu.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, mu := range m.byName {
		if mu.ID == id {
			delete(m.byName, name)
			return nil
		}
	}
	return ErrNotFound
}
