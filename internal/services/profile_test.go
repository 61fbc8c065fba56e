package services

import (
	"context"
	"sync"
	"testing"

	"github.com/AnshRaj112/hireon-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory UserStore for tests. It hands out copies so
// assertions see only what Update actually persisted.
type memStore struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by ObjectID hex
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]models.User)}
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *memStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *memStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, ErrUserExists
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID.Hex()] = *user
	return user, nil
}

func (s *memStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID.Hex()]; !ok {
		return ErrUserNotFound
	}
	s.users[user.ID.Hex()] = *user
	return nil
}

func seedUser(t *testing.T, store *memStore) *models.User {
	t.Helper()
	user, err := store.Create(context.Background(), &models.User{
		Fullname:    "Ana",
		Email:       "ana@x.com",
		PhoneNumber: "555",
		Password:    "$2a$10$irrelevant",
		Role:        models.RoleCandidate,
		Profile: models.Profile{
			Bio:    "old bio",
			Skills: []string{"go", "rust"},
		},
	})
	require.NoError(t, err)
	return user
}

func TestApplyProfileUpdate_EmptyUpdateChangesNothing(t *testing.T) {
	store := newMemStore()
	seeded := seedUser(t, store)

	updated, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), ProfileUpdate{})
	require.NoError(t, err)

	assert.Equal(t, seeded.Fullname, updated.Fullname)
	assert.Equal(t, seeded.Email, updated.Email)
	assert.Equal(t, seeded.PhoneNumber, updated.PhoneNumber)
	assert.Equal(t, seeded.Profile, updated.Profile)
}

func TestApplyProfileUpdate_BioOnlyLeavesSkills(t *testing.T) {
	store := newMemStore()
	seeded := seedUser(t, store)

	bio := "new bio"
	updated, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), ProfileUpdate{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "new bio", updated.Profile.Bio)
	assert.Equal(t, []string{"go", "rust"}, updated.Profile.Skills)

	stored, err := store.FindByID(context.Background(), seeded.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "new bio", stored.Profile.Bio)
	assert.Equal(t, []string{"go", "rust"}, stored.Profile.Skills)
}

func TestApplyProfileUpdate_PresentEmptySkillsClears(t *testing.T) {
	store := newMemStore()
	seeded := seedUser(t, store)

	empty := []string{}
	updated, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), ProfileUpdate{Skills: &empty})
	require.NoError(t, err)

	// Present-but-empty is a real update, unlike an absent field.
	assert.Empty(t, updated.Profile.Skills)
}

func TestApplyProfileUpdate_ResumePairIsAtomic(t *testing.T) {
	store := newMemStore()
	seeded := seedUser(t, store)

	updated, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), ProfileUpdate{
		Resume: &ResumeUpload{
			URL:          "https://res.cloudinary.com/demo/raw/upload/cv.pdf",
			OriginalName: "ana-cv.pdf",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://res.cloudinary.com/demo/raw/upload/cv.pdf", updated.Profile.Resume)
	assert.Equal(t, "ana-cv.pdf", updated.Profile.ResumeOriginalName)
}

func TestApplyProfileUpdate_Idempotent(t *testing.T) {
	store := newMemStore()
	seeded := seedUser(t, store)

	fullname := "Ana B"
	skills := []string{"go", "sql"}
	upd := ProfileUpdate{Fullname: &fullname, Skills: &skills}

	first, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), upd)
	require.NoError(t, err)
	second, err := ApplyProfileUpdate(context.Background(), store, seeded.ID.Hex(), upd)
	require.NoError(t, err)

	assert.Equal(t, first.Fullname, second.Fullname)
	assert.Equal(t, first.Profile, second.Profile)
}

func TestApplyProfileUpdate_UnknownUser(t *testing.T) {
	store := newMemStore()

	bio := "x"
	_, err := ApplyProfileUpdate(context.Background(), store, primitive.NewObjectID().Hex(), ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"go", "rust"}, ParseSkills("go,rust"))
	assert.Equal(t, []string{"go", "rust"}, ParseSkills("go, rust"))
	assert.Equal(t, []string{"go"}, ParseSkills("go"))
	assert.Equal(t, []string{}, ParseSkills(""))
}
