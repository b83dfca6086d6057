package application

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
)

// VerificationSender issues an email verification code to an address.
type VerificationSender interface {
	SendEmailOTP(ctx context.Context, email string) error
}

// UserService handles profile reads, updates, and account deletion.
type UserService struct {
	Users   repo.UserRepository
	Ads     repo.AdRepository
	Chats   repo.ChatRepository
	Uploads Uploader
	Mail    VerificationSender
	Logger  *logrus.Logger
}

func NewUserService(users repo.UserRepository, ads repo.AdRepository, chats repo.ChatRepository, uploads Uploader, mail VerificationSender, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:   users,
		Ads:     ads,
		Chats:   chats,
		Uploads: uploads,
		Mail:    mail,
		Logger:  logger,
	}
}

// Profile returns the caller's own user record.
func (s *UserService) Profile(ctx context.Context, uid string) (*entity.User, error) {
	return s.Users.GetByUID(ctx, uid)
}

type UpdateProfileInput struct {
	Username *string
	Email    *string
	Location []float64

	ProfileImage     io.Reader
	ProfileImageName string
	ContentType      string
}

type UpdateProfileResult struct {
	UpdatedFields    []string
	VerificationSent bool
}

// UpdateProfile applies the changed fields only. Changing the email
// resets its verified flag and sends a fresh verification code; an
// update where every submitted value matches the stored one is
// rejected.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, in UpdateProfileInput) (*UpdateProfileResult, error) {
	existing, err := s.Users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	emailUpdated := false

	if in.Username != nil {
		if n := len(*in.Username); n < 4 || n > 10 {
			return nil, apperror.Validation("username", "username must be between 4 and 10 characters")
		}
		if *in.Username != existing.Username {
			fields["username"] = *in.Username
		}
	}
	if in.Email != nil && *in.Email != existing.Email {
		emailUpdated = true
		fields["email"] = *in.Email
		fields["email_verified"] = false
	}
	if in.Location != nil {
		if len(in.Location) != 2 {
			return nil, apperror.Validation("user_location", "location must be a latitude,longitude pair")
		}
		if !sameLocation(existing.Location, in.Location) {
			fields["user_location"] = in.Location
		}
	}
	if in.ProfileImage != nil {
		url, err := s.uploadProfileImage(ctx, uid, in.ProfileImage, in.ProfileImageName, in.ContentType)
		if err != nil {
			return nil, err
		}
		if url != existing.ProfileImg {
			fields["profile_img"] = url
		}
	}

	if len(fields) == 0 {
		return nil, apperror.NoChange()
	}

	if emailUpdated {
		if err := s.Mail.SendEmailOTP(ctx, *in.Email); err != nil {
			return nil, err
		}
	}
	if err := s.Users.Set(ctx, uid, fields); err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(fields))
	for k := range fields {
		updated = append(updated, k)
	}
	return &UpdateProfileResult{UpdatedFields: updated, VerificationSent: emailUpdated}, nil
}

// DeleteAccount removes the user together with their ads, chatrooms,
// and messages.
func (s *UserService) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.Ads.DeleteByOwner(ctx, uid); err != nil {
		return err
	}
	if err := s.Chats.DeleteForUser(ctx, uid); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, uid); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("uid", uid).Info("user account deleted")
	}
	return nil
}

func (s *UserService) uploadProfileImage(ctx context.Context, uid string, r io.Reader, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", uid, uuid.NewString()+ext))
	return s.Uploads.Upload(ctx, objectPath, contentType, r)
}

// sameLocation compares coordinates at micro-degree precision, so float
// round-tripping does not fake a change.
func sameLocation(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) >= 1e-6 {
			return false
		}
	}
	return true
}
