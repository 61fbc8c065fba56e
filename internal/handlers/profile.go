package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/AnshRaj112/hireon-backend/internal/middleware"
	"github.com/AnshRaj112/hireon-backend/internal/services"
)

// UpdateProfile applies a sparse update to the authenticated user's profile.
// Only fields present in the multipart form are touched; an attached file is
// treated as a resume and overwrites the resume URL together with its
// original filename.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated.", "")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form.", err.Error())
		return
	}

	upd := services.ProfileUpdate{
		Fullname:    formFieldValue(r, "fullname"),
		Email:       formFieldValue(r, "email"),
		PhoneNumber: formFieldValue(r, "phoneNumber"),
		Bio:         formFieldValue(r, "bio"),
	}
	if s := formFieldValue(r, "skills"); s != nil {
		skills := services.ParseSkills(*s)
		upd.Skills = &skills
	}

	if file, fileHeader, err := r.FormFile("file"); err == nil {
		file.Close() // the gateway re-opens from the header
		if uploader == nil {
			log.Printf("ERROR: upload requested but Cloudinary service not initialized")
			respondError(w, http.StatusInternalServerError, "Failed to upload file to Cloudinary.", "upload service not available")
			return
		}
		url, err := uploader.UploadFileFromHeader(r.Context(), fileHeader, uploadFolder)
		if err != nil {
			log.Printf("ERROR: resume upload failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to upload file to Cloudinary.", err.Error())
			return
		}
		upd.Resume = &services.ResumeUpload{
			URL:          url,
			OriginalName: fileHeader.Filename,
		}
	}

	user, err := services.ApplyProfileUpdate(r.Context(), users, userID, upd)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.", "")
			return
		}
		log.Printf("ERROR: profile update failed: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Profile updated successfully.",
		User:    user.Public(),
	})
}

// Me returns the authenticated user's public projection.
func Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "User not authenticated.", "")
		return
	}

	user, err := users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found.", "")
			return
		}
		log.Printf("ERROR: user lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "An internal server error occurred.", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, apiResponse{
		Success: true,
		User:    user.Public(),
	})
}

// formFieldValue returns a pointer to the field's first value when the field
// was present in the request, nil when it was absent. Presence, not
// truthiness: an empty string is still an update.
func formFieldValue(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}
