package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"afisha/internal/models"
	"afisha/internal/repository"
)

type fakeUserStore struct {
	users  map[string]models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	if _, exists := s.users[user.Username]; exists {
		return models.User{}, repository.ErrDuplicateUsername
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.Username] = user
	return user, nil
}

func (s *fakeUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, exists := s.users[username]
	if !exists {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

type fakeSessionStore struct {
	sessions map[string]models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (s *fakeSessionStore) Create(ctx context.Context, session models.Session) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	session, exists := s.sessions[id]
	if !exists {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (s *fakeSessionStore) DeleteByID(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type fakeSessionCache struct {
	sessions map[string]models.Session
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: make(map[string]models.Session)}
}

func (c *fakeSessionCache) Get(ctx context.Context, id string) (models.Session, bool) {
	session, ok := c.sessions[id]
	return session, ok
}

func (c *fakeSessionCache) Set(ctx context.Context, session models.Session) {
	c.sessions[session.ID] = session
}

func (c *fakeSessionCache) Delete(ctx context.Context, id string) {
	delete(c.sessions, id)
}

type fakeListingStore struct {
	listings map[int64]models.Listing
	order    []int64
	nextID   int64
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: make(map[int64]models.Listing)}
}

func (s *fakeListingStore) Create(ctx context.Context, listing models.Listing) (models.Listing, error) {
	s.nextID++
	listing.ID = s.nextID
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	s.listings[listing.ID] = listing
	s.order = append(s.order, listing.ID)
	return listing, nil
}

func (s *fakeListingStore) List(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	for _, id := range s.order {
		listings = append(listings, s.listings[id])
	}
	return listings, nil
}

func (s *fakeListingStore) GetByID(ctx context.Context, id int64) (models.Listing, error) {
	listing, exists := s.listings[id]
	if !exists {
		return models.Listing{}, repository.ErrListingNotFound
	}
	return listing, nil
}

func (s *fakeListingStore) Update(ctx context.Context, listing models.Listing) error {
	if _, exists := s.listings[listing.ID]; !exists {
		return repository.ErrListingNotFound
	}
	listing.UpdatedAt = time.Now()
	s.listings[listing.ID] = listing
	return nil
}

func (s *fakeListingStore) Delete(ctx context.Context, id int64) error {
	if _, exists := s.listings[id]; !exists {
		return repository.ErrListingNotFound
	}
	delete(s.listings, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakePosterStore records saved files in memory and hands back disk-style
// references.
type fakePosterStore struct {
	files map[string][]byte
}

func newFakePosterStore() *fakePosterStore {
	return &fakePosterStore{files: make(map[string][]byte)}
}

func (s *fakePosterStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.files[name] = buf.Bytes()
	return path.Join("/uploads", name), nil
}

func (s *fakePosterStore) Remove(ctx context.Context, name string) error {
	if _, exists := s.files[name]; !exists {
		return fmt.Errorf("no such file %q", name)
	}
	delete(s.files, name)
	return nil
}

func (s *fakePosterStore) List(ctx context.Context) ([]string, error) {
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	return names, nil
}
