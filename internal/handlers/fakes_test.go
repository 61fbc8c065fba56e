package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/AnshRaj112/hireon-backend/internal/models"
	"github.com/AnshRaj112/hireon-backend/internal/services"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory services.UserStore.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by ObjectID hex
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]models.User)}
}

func (s *fakeStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return &u, nil
}

func (s *fakeStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, services.ErrUserExists
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID.Hex()] = *user
	return user, nil
}

func (s *fakeStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID.Hex()]; !ok {
		return services.ErrUserNotFound
	}
	s.users[user.ID.Hex()] = *user
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// fakeUploader records upload calls and returns a fixed URL or error.
type fakeUploader struct {
	mu    sync.Mutex
	url   string
	err   error
	calls int
}

func (u *fakeUploader) UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

// setupHandlers wires the package's service singletons to fakes for one test.
func setupHandlers(t *testing.T) (*fakeStore, *fakeUploader, *services.TokenService) {
	t.Helper()
	store := newFakeStore()
	up := &fakeUploader{url: "https://res.cloudinary.com/demo/image/upload/asset.png"}
	ts := services.NewTokenService([]byte("test-secret"), time.Hour)

	users = store
	tokens = ts
	uploader = up
	t.Cleanup(func() {
		users = nil
		tokens = nil
		uploader = nil
	})
	return store, up, ts
}

// newMultipartRequest builds a multipart POST with the given fields and an
// optional file part named "file".
func newMultipartRequest(t *testing.T, target string, fields map[string]string, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-file-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type testResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	User    *models.PublicUser `json:"user"`
	Error   string             `json:"error"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func registerFields() map[string]string {
	return map[string]string{
		"fullname":    "Ana",
		"email":       "ana@x.com",
		"phoneNumber": "555",
		"password":    "secret",
		"role":        models.RoleCandidate,
	}
}
