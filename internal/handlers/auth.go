package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/AnshRaj112/hireon-backend/internal/models"
	"github.com/AnshRaj112/hireon-backend/internal/services"
	"github.com/AnshRaj112/hireon-backend/pkg/utils"
	"github.com/go-playground/validator/v10"
)

// sessionCookieName is the cookie the frontend stores the session token in.
const sessionCookieName = "token"

// RegisterRequest is the multipart form sent on signup, plus an optional
// profile photo under the "file" field.
type RegisterRequest struct {
	Fullname    string `validate:"required"`
	Email       string `validate:"required"`
	PhoneNumber string `validate:"required"`
	Password    string `validate:"required"`
	Role        string `validate:"required,oneof=candidate recruiter"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Register handles user signup (multipart/form-data, optional profile photo).
func Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form.", err.Error())
		return
	}

	req := RegisterRequest{
		Fullname:    r.FormValue("fullname"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Password:    r.FormValue("password"),
		Role:        r.FormValue("role"),
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err), "")
		return
	}

	// Upload the profile photo first when one is attached. An upload failure
	// aborts the whole registration; there is no partial success without the
	// intended photo. Note the upload happens before the duplicate-email
	// check, so a rejected duplicate can waste one upload.
	var photoURL string
	if file, fileHeader, err := r.FormFile("file"); err == nil {
		file.Close() // the gateway re-opens from the header
		if uploader == nil {
			log.Printf("ERROR: upload requested but Cloudinary service not initialized")
			respondError(w, http.StatusInternalServerError, "Failed to upload profile photo to Cloudinary.", "upload service not available")
			return
		}
		photoURL, err = uploader.UploadFileFromHeader(r.Context(), fileHeader, uploadFolder)
		if err != nil {
			log.Printf("ERROR: profile photo upload failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to upload profile photo to Cloudinary.", err.Error())
			return
		}
	}

	_, err := users.FindByEmail(r.Context(), req.Email)
	if err == nil {
		respondError(w, http.StatusBadRequest, "User already exists with this email.", "")
		return
	}
	if !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("ERROR: email lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("ERROR: failed to hash password: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	user := &models.User{
		Fullname:    req.Fullname,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    hashedPassword,
		Role:        req.Role,
		Profile: models.Profile{
			ProfilePhoto: photoURL,
		},
	}
	user, err = users.Create(r.Context(), user)
	if err != nil {
		// The unique index can still reject a racing duplicate.
		if errors.Is(err, services.ErrUserExists) {
			respondError(w, http.StatusBadRequest, "User already exists with this email.", "")
			return
		}
		log.Printf("ERROR: failed to create user: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Account created successfully.",
		User:    user.Public(),
	})
}

// Login authenticates a user and sets the session cookie.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields.", "")
		return
	}

	user, err := users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// Same message as a wrong password so accounts can't be enumerated.
			respondError(w, http.StatusBadRequest, "Incorrect email or password.", "")
			return
		}
		log.Printf("ERROR: email lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		respondError(w, http.StatusBadRequest, "Incorrect email or password.", "")
		return
	}

	if req.Role != user.Role {
		respondError(w, http.StatusBadRequest, "Account doesn't exist with current role.", "")
		return
	}

	token, err := tokens.Issue(user.ID.Hex())
	if err != nil {
		log.Printf("ERROR: failed to issue session token: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: fmt.Sprintf("Welcome back, %s!", user.Fullname),
		User:    user.Public(),
	})
}

// Logout tells the client to discard its token by overwriting the session
// cookie with an already-expired one. Nothing is invalidated server-side.
func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Logged out successfully.",
	})
}

// validationMessage maps validator failures to the response message: a bad
// role gets its own message, anything else is a missing required field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "oneof" {
				return "Please provide a valid role."
			}
		}
	}
	return "Missing required fields."
}
