// Package testhelpers provides an in-memory implementation of the service
// stores. It enforces the same uniqueness rules as the database schema and
// returns the repository error values.
package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/google/uuid"
)

type likeKey struct {
	ideaID uuid.UUID
	userID uuid.UUID
}

// MemStore holds every table behind one mutex.
type MemStore struct {
	mu            sync.Mutex
	clock         time.Time
	users         map[uuid.UUID]models.User
	ideas         []models.Idea
	likes         map[likeKey]models.Like
	comments      []models.Comment
	collabs       []models.CollaborationRequest
	notifications []models.Notification
}

func NewMemStore() *MemStore {
	return &MemStore{
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users: make(map[uuid.UUID]models.User),
		likes: make(map[likeKey]models.Like),
	}
}

// Stores returns the store bundle the services are built from.
func (m *MemStore) Stores() services.Stores {
	return services.Stores{
		Users:          userStore{m},
		Ideas:          ideaStore{m},
		Likes:          likeStore{m},
		Comments:       commentStore{m},
		Collaborations: collabStore{m},
		Notifications:  notificationStore{m},
	}
}

// tick returns a strictly increasing timestamp so ordering is deterministic.
func (m *MemStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// AddComment inserts a comment row directly.
func (m *MemStore) AddComment(ideaID, userID uuid.UUID, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments = append(m.comments, models.Comment{ID: uuid.New(), IdeaID: ideaID, UserID: userID, Content: content, CreatedAt: m.tick()})
}

// SetRole changes a user's role, as an administrator would.
func (m *MemStore) SetRole(userID uuid.UUID, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.Role = role
		m.users[userID] = u
	}
}

// DeleteUser removes a user row.
func (m *MemStore) DeleteUser(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// Notifications returns a copy of the notification rows.
func (m *MemStore) Notifications() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Notification(nil), m.notifications...)
}

// LikeRows returns the number of like rows for an idea and user.
func (m *MemStore) LikeRows(ideaID, userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.likes[likeKey{ideaID, userID}]; ok {
		return 1
	}
	return 0
}

// Idea returns the stored idea without the author.
func (m *MemStore) Idea(id uuid.UUID) (models.Idea, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.ideaIndex(id)
	if i < 0 {
		return models.Idea{}, false
	}
	return m.ideas[i], true
}

func (m *MemStore) ideaIndex(id uuid.UUID) int {
	for i := range m.ideas {
		if m.ideas[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *MemStore) withAuthor(idea models.Idea) models.Idea {
	idea.Author = m.users[idea.AuthorID]
	return idea
}

type userStore struct{ m *MemStore }

func (s userStore) Create(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	now := s.m.tick()
	user.CreatedAt, user.UpdatedAt = now, now
	s.m.users[user.ID] = *user
	return nil
}

func (s userStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s userStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s userStore) CountByRole(_ context.Context) (map[string]int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	counts := make(map[string]int64)
	for _, u := range s.m.users {
		counts[u.Role]++
	}
	return counts, nil
}

type ideaStore struct{ m *MemStore }

func (s ideaStore) Create(_ context.Context, idea *models.Idea) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.ideaIndex(idea.ID) >= 0 {
		return repository.ErrDuplicate
	}
	now := s.m.tick()
	idea.CreatedAt, idea.UpdatedAt = now, now
	row := *idea
	row.Author = models.User{}
	s.m.ideas = append(s.m.ideas, row)
	return nil
}

func (s ideaStore) FindByID(_ context.Context, id uuid.UUID) (*models.Idea, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	i := s.m.ideaIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	idea := s.m.withAuthor(s.m.ideas[i])
	return &idea, nil
}

func (s ideaStore) Update(_ context.Context, idea *models.Idea) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	i := s.m.ideaIndex(idea.ID)
	if i < 0 {
		return repository.ErrNotFound
	}
	row := &s.m.ideas[i]
	row.Title = idea.Title
	row.Description = idea.Description
	row.Tags = append([]string(nil), idea.Tags...)
	row.Phase = idea.Phase
	row.PhaseIndex = idea.PhaseIndex
	row.UpdatedAt = s.m.tick()
	idea.UpdatedAt = row.UpdatedAt
	return nil
}

func (s ideaStore) SetAnalysis(_ context.Context, id uuid.UUID, analysis *models.Analysis) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	i := s.m.ideaIndex(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	copied := *analysis
	s.m.ideas[i].AIAnalysis = &copied
	return nil
}

func (s ideaStore) List(_ context.Context, filter repository.IdeaFilter) ([]models.Idea, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Idea, 0, len(s.m.ideas))
	for _, idea := range s.m.ideas {
		if filter.PublicOnly && !idea.IsPublic {
			continue
		}
		out = append(out, s.m.withAuthor(idea))
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s ideaStore) CountByPhase(_ context.Context) (map[string]int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	counts := make(map[string]int64)
	for _, idea := range s.m.ideas {
		counts[idea.Phase]++
	}
	return counts, nil
}

type likeStore struct{ m *MemStore }

func (s likeStore) Create(_ context.Context, like *models.Like) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := likeKey{like.IdeaID, like.UserID}
	if _, ok := s.m.likes[key]; ok {
		return repository.ErrDuplicate
	}
	like.CreatedAt = s.m.tick()
	s.m.likes[key] = *like
	return nil
}

func (s likeStore) Delete(_ context.Context, ideaID, userID uuid.UUID) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := likeKey{ideaID, userID}
	if _, ok := s.m.likes[key]; !ok {
		return false, nil
	}
	delete(s.m.likes, key)
	return true, nil
}

func (s likeStore) CountByIdeas(_ context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	wanted := idSet(ideaIDs)
	counts := make(map[uuid.UUID]int64)
	for key := range s.m.likes {
		if wanted[key.ideaID] {
			counts[key.ideaID]++
		}
	}
	return counts, nil
}

func (s likeStore) LikedByUser(_ context.Context, userID uuid.UUID, ideaIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	liked := make(map[uuid.UUID]bool)
	for _, id := range ideaIDs {
		if _, ok := s.m.likes[likeKey{id, userID}]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}

func (s likeStore) Count(_ context.Context) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return int64(len(s.m.likes)), nil
}

type commentStore struct{ m *MemStore }

func (s commentStore) CountByIdeas(_ context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	wanted := idSet(ideaIDs)
	counts := make(map[uuid.UUID]int64)
	for _, c := range s.m.comments {
		if wanted[c.IdeaID] {
			counts[c.IdeaID]++
		}
	}
	return counts, nil
}

type collabStore struct{ m *MemStore }

func (s collabStore) Create(_ context.Context, req *models.CollaborationRequest) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.collabs {
		if r.IdeaID == req.IdeaID && r.UserID == req.UserID {
			return repository.ErrDuplicate
		}
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = models.CollabPending
	}
	now := s.m.tick()
	req.CreatedAt, req.UpdatedAt = now, now
	row := *req
	row.Idea = models.Idea{}
	s.m.collabs = append(s.m.collabs, row)
	return nil
}

func (s collabStore) FindByID(_ context.Context, id uuid.UUID) (*models.CollaborationRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.collabs {
		if r.ID == id {
			if i := s.m.ideaIndex(r.IdeaID); i >= 0 {
				r.Idea = s.m.ideas[i]
			}
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s collabStore) FindByPair(_ context.Context, ideaID, userID uuid.UUID) (*models.CollaborationRequest, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.collabs {
		if r.IdeaID == ideaID && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s collabStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.collabs {
		if s.m.collabs[i].ID == id && s.m.collabs[i].Status == from {
			s.m.collabs[i].Status = to
			s.m.collabs[i].UpdatedAt = s.m.tick()
			return true, nil
		}
	}
	return false, nil
}

func (s collabStore) AcceptedNames(_ context.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	wanted := idSet(ideaIDs)
	names := make(map[uuid.UUID][]string)
	for _, r := range s.m.collabs {
		if wanted[r.IdeaID] && r.Status == models.CollabAccepted {
			names[r.IdeaID] = append(names[r.IdeaID], s.m.users[r.UserID].Name)
		}
	}
	return names, nil
}

func (s collabStore) CountByStatus(_ context.Context, status string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var n int64
	for _, r := range s.m.collabs {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

type notificationStore struct{ m *MemStore }

func (s notificationStore) Create(_ context.Context, n *models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = s.m.tick()
	s.m.notifications = append(s.m.notifications, *n)
	return nil
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
