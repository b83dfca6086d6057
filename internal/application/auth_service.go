package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/internal/domain/entity"
	repo "github.com/listinker/listinker-api/internal/domain/repository"
	"github.com/listinker/listinker-api/pkg/helpers"
)

// OTPStore issues and checks the one-time codes used for login and
// email verification.
type OTPStore interface {
	SendMobileOTP(ctx context.Context, mobile string) error
	SendEmailOTP(ctx context.Context, email string) error
	CheckMobileOTP(ctx context.Context, mobile, code string) (bool, error)
	CheckEmailOTP(ctx context.Context, email, code string) (bool, error)
}

// AuthService implements passwordless login: a one-time code goes out
// to the mobile number, verifying it creates the account on first use
// and returns a long-lived token.
type AuthService struct {
	Users   repo.UserRepository
	Follows repo.FollowRepository
	Credits *CreditService
	Mail    OTPStore
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewAuthService(users repo.UserRepository, follows repo.FollowRepository, credits *CreditService, mail OTPStore, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:   users,
		Follows: follows,
		Credits: credits,
		Mail:    mail,
		JWT:     jwt,
		Logger:  logger,
	}
}

// RequestOTP sends a login code to a mobile number.
func (s *AuthService) RequestOTP(ctx context.Context, mobile string) error {
	return s.Mail.SendMobileOTP(ctx, mobile)
}

// RequestEmailOTP sends a verification code to an email address.
func (s *AuthService) RequestEmailOTP(ctx context.Context, email string) error {
	return s.Mail.SendEmailOTP(ctx, email)
}

type LoginResult struct {
	Token   string    `json:"token"`
	UID     string    `json:"uid"`
	Expires time.Time `json:"-"`
}

// VerifyOTP checks the login code and signs the caller in. A number
// seen for the first time gets a fresh account with its follow
// aggregates, and the credit pools are synced on every login so new
// departments are picked up.
func (s *AuthService) VerifyOTP(ctx context.Context, mobile, code string, location []float64) (*LoginResult, error) {
	ok, err := s.Mail.CheckMobileOTP(ctx, mobile, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("otp", "invalid OTP")
	}

	var uid string
	existing, err := s.Users.GetByMobile(ctx, mobile)
	switch {
	case err == nil:
		uid = existing.UID
	case apperror.Is(err, apperror.ErrNotFound):
		uid, err = s.createAccount(ctx, mobile, location)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.Credits.Initialize(ctx, uid); err != nil {
		return nil, err
	}

	token, exp, err := s.JWT.Generate(uid)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UID: uid, Expires: exp}, nil
}

// VerifyToken reports whether a token is currently valid.
func (s *AuthService) VerifyToken(token string) bool {
	return s.JWT.Valid(token)
}

// VerifyEmail checks the emailed code and marks the address verified on
// the account that registered it.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	ok, err := s.Mail.CheckEmailOTP(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Validation("otp", "invalid or expired OTP")
	}
	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		return err
	}
	return s.Users.SetEmailVerifiedByEmail(ctx, email, true)
}

func (s *AuthService) createAccount(ctx context.Context, mobile string, location []float64) (string, error) {
	uid := uuid.NewString()
	followersID := uuid.NewString()
	followingID := uuid.NewString()

	if err := s.Follows.CreateAggregates(ctx, uid, followersID, followingID); err != nil {
		return "", err
	}
	user := &entity.User{
		UID:          uid,
		Username:     entity.DefaultUsername,
		MobileNumber: mobile,
		Email:        entity.DefaultEmail,
		Location:     location,
		Favorites:    []string{},
		History:      []string{},
		MyAds:        []string{},
		Chatrooms:    []string{},
		FollowersID:  followersID,
		FollowingID:  followingID,
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.WithField("uid", uid).Info("new account created")
	}
	return uid, nil
}
