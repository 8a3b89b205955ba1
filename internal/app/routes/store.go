// Package routes holds the service's route modules. Each file registers
// one module under its routes-relative source path; the table assembler
// derives the URL pattern from that path at startup.
package routes

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// User is the demo resource served by the users modules.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// userStore is deliberately in-memory: the routing layer makes no
// persistence guarantees.
type userStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func newUserStore() *userStore {
	return &userStore{users: make(map[string]User)}
}

func (s *userStore) list() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *userStore) create(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{ID: uuid.NewString(), Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

func (s *userStore) get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *userStore) update(id, name, email string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	u.Name = name
	u.Email = email
	s.users[id] = u
	return u, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

var store = newUserStore()
