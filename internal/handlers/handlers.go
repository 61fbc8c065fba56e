package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/AnshRaj112/hireon-backend/internal/config"
	"github.com/AnshRaj112/hireon-backend/internal/models"
	"github.com/AnshRaj112/hireon-backend/internal/services"
	"github.com/go-playground/validator/v10"
)

// Uploader is the upload-gateway surface handlers need. CloudinaryService
// implements it; tests substitute a fake.
type Uploader interface {
	UploadFileFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}

// uploadFolder is the Cloudinary folder all user assets go to.
const uploadFolder = "hireon"

var (
	users    services.UserStore
	tokens   *services.TokenService
	uploader Uploader

	validate = validator.New()
)

// InitServices wires the user store and token service used by all handlers.
// Called once from main before the router starts serving.
func InitServices(store services.UserStore, tokenService *services.TokenService) {
	users = store
	tokens = tokenService
}

// InitCloudinaryService initializes the upload gateway. When it is not
// initialized, requests carrying a file fail with an upload error.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	uploader = service
	return nil
}

// apiResponse is the JSON envelope every endpoint answers with.
type apiResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	User    *models.PublicUser `json:"user,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, status int, message, detail string) {
	respondJSON(w, status, apiResponse{Success: false, Message: message, Error: detail})
}
