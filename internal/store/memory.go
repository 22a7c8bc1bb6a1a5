package store

import (
	"sync"

	"uk.co.dudmesh.ledger/internal/model"
)

type memoryStore struct {
	mu      sync.RWMutex
	users   []*model.User
	byLogin map[string]int
	byID    map[model.UserID]int
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{
		byLogin: make(map[string]int),
		byID:    make(map[model.UserID]int),
	}
}

func (s *memoryStore) Insert(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byLogin[user.Login]; ok {
		return model.ErrorLoginTaken
	}
	s.users = append(s.users, user.Clone())
	s.byLogin[user.Login] = len(s.users) - 1
	s.byID[user.ID] = len(s.users) - 1
	return nil
}

func (s *memoryStore) ByLogin(login string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byLogin[login]
	if !ok {
		return nil, model.ErrorUserNotFound
	}
	return s.users[i].Clone(), nil
}

func (s *memoryStore) ByID(id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, model.ErrorUserNotFound
	}
	return s.users[i].Clone(), nil
}

func (s *memoryStore) ByPhone(phone string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Phone != nil && *user.Phone == phone {
			return user.Clone(), nil
		}
	}
	return nil, model.ErrorUserNotFound
}

func (s *memoryStore) Update(users ...*model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make([]int, len(users))
	for n, user := range users {
		i, ok := s.byID[user.ID]
		if !ok {
			return model.ErrorUserNotFound
		}
		positions[n] = i
	}
	for n, user := range users {
		s.users[positions[n]] = user.Clone()
	}
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
