package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/pkg/helpers"
	"github.com/listinker/listinker-api/pkg/mailer"
)

// Publisher abstracts the message queue used for outbound email jobs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Mailer issues one-time codes and queues the emails that carry them.
// Codes live in Redis under a TTL, delivery runs through the email
// worker so a slow SMTP hop never blocks a request.
type Mailer struct {
	Redis     *redis.Client
	Publisher Publisher
	OTPTTL    time.Duration
	Logger    *logrus.Logger

	// SendEnabled false skips queueing and logs the code instead, for
	// local development without a mail provider.
	SendEnabled bool
}

func NewMailer(rdb *redis.Client, publisher Publisher, otpTTL time.Duration, sendEnabled bool, logger *logrus.Logger) *Mailer {
	return &Mailer{Redis: rdb, Publisher: publisher, OTPTTL: otpTTL, SendEnabled: sendEnabled, Logger: logger}
}

// SendEmailOTP generates a verification code for the address, stores it
// under a TTL, and queues the verification email.
func (m *Mailer) SendEmailOTP(ctx context.Context, email string) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := m.Redis.Set(ctx, helpers.KeyEmailOTP(email), code, m.OTPTTL).Err(); err != nil {
		return err
	}
	if !m.SendEnabled || m.Publisher == nil {
		if m.Logger != nil {
			m.Logger.WithFields(logrus.Fields{"email": email, "code": code}).Info("email sending disabled, code logged")
		}
		return nil
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateVerifyEmail,
		Data:     map[string]any{"Code": code},
	}
	return m.Publisher.PublishJSON(ctx, job)
}

// SendMobileOTP generates a login code for the number and stores it
// under a TTL. There is no SMS gateway wired yet, so the code is logged.
// TODO: plug in the SMS provider once the account is provisioned.
func (m *Mailer) SendMobileOTP(ctx context.Context, mobile string) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := m.Redis.Set(ctx, helpers.KeyMobileOTP(mobile), code, m.OTPTTL).Err(); err != nil {
		return err
	}
	if m.Logger != nil {
		m.Logger.WithFields(logrus.Fields{"mobile": mobile, "code": code}).Info("mobile login code issued")
	}
	return nil
}

// CheckEmailOTP verifies and consumes the code stored for an address.
func (m *Mailer) CheckEmailOTP(ctx context.Context, email, code string) (bool, error) {
	return m.checkCode(ctx, helpers.KeyEmailOTP(email), code)
}

// CheckMobileOTP verifies and consumes the code stored for a number.
func (m *Mailer) CheckMobileOTP(ctx context.Context, mobile, code string) (bool, error) {
	return m.checkCode(ctx, helpers.KeyMobileOTP(mobile), code)
}

func (m *Mailer) checkCode(ctx context.Context, key, code string) (bool, error) {
	stored, err := m.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	// One-shot: a verified code cannot be replayed.
	if err := helpers.RedisDel(ctx, m.Redis, key); err != nil && m.Logger != nil {
		m.Logger.WithError(err).WithField("key", key).Warn("otp cleanup failed")
	}
	return true, nil
}
