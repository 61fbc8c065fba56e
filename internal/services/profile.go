package services

import (
	"context"
	"strings"

	"github.com/AnshRaj112/hireon-backend/internal/models"
)

// UserStore is the persistence surface the profile engine and handlers need.
// MongoUserStore implements it; tests substitute an in-memory fake.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ResumeUpload is the result of a resume upload. URL and original filename
// are always written together; they never go stale against each other.
type ResumeUpload struct {
	URL          string
	OriginalName string
}

// ProfileUpdate is a sparse mutation: nil means the caller did not send the
// field and the stored value stays untouched. A non-nil pointer to an empty
// value is a real update (e.g. an explicitly empty skills list clears the
// stored list). Presence is decided by the handler from the request body,
// never from value truthiness.
type ProfileUpdate struct {
	Fullname    *string
	Email       *string
	PhoneNumber *string
	Bio         *string
	Skills      *[]string
	Resume      *ResumeUpload
}

// ParseSkills converts comma-separated skills text into an ordered list.
func ParseSkills(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		skills = append(skills, strings.TrimSpace(p))
	}
	return skills
}

// ApplyProfileUpdate loads the user, applies only the fields present in upd,
// persists the merged result and returns it. The read-then-write is not
// atomic against a concurrent update of the same user; last write wins.
func ApplyProfileUpdate(ctx context.Context, store UserStore, userID string, upd ProfileUpdate) (*models.User, error) {
	user, err := store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Fullname != nil {
		user.Fullname = *upd.Fullname
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		user.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Bio != nil {
		user.Profile.Bio = *upd.Bio
	}
	if upd.Skills != nil {
		user.Profile.Skills = *upd.Skills
	}
	if upd.Resume != nil {
		// URL and original filename move as one pair.
		user.Profile.Resume = upd.Resume.URL
		user.Profile.ResumeOriginalName = upd.Resume.OriginalName
	}

	if err := store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
