package application

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/config"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/apperror"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

const (
	minPasswordLen = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLen = 72
)

var validate = validator.New()

// AuthService registers users and signs them in.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Profile  config.AuthProfile
	Notifier Notifier
	Logger   *logrus.Logger

	// dummyDigest is compared against when the username is unknown.
	dummyDigest string
}

// AuthResult is a user (digest removed) together with its bearer token.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, profile config.AuthProfile, notifier Notifier, logger *logrus.Logger) *AuthService {
	s := &AuthService{
		Users:    users,
		JWT:      jwt,
		Profile:  profile,
		Notifier: notifier,
		Logger:   logger,
	}
	if profile != config.ProfileAnonymous {
		digest, err := helpers.HashPassword("not-a-real-password")
		if err != nil {
			helpers.LogError(logger, "dummy digest", err, nil)
		}
		s.dummyDigest = digest
	}
	return s
}

// Register creates a user and issues a token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validateRegistration(in); err != nil {
		return nil, err
	}

	u := &entity.User{Username: in.Username, Email: in.Email}
	if s.Profile != config.ProfileAnonymous {
		digest, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, apperror.NewInternal("failed to hash password", err)
		}
		u.PasswordHash = digest
	}

	if err := s.Users.Create(ctx, u); err != nil {
		if !apperror.IsConflict(err) {
			helpers.LogError(s.Logger, "create user failed", err, logrus.Fields{"username": u.Username})
		}
		return nil, err
	}
	helpers.UsersRegistered.Add(1)
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil && u.Email != "" {
		if nErr := s.Notifier.Welcome(ctx, res.User); nErr != nil && s.Logger != nil {
			s.Logger.WithError(nErr).WithField("user_id", u.ID).Warn("welcome notification failed")
		}
	}
	return res, nil
}

func (s *AuthService) validateRegistration(in RegisterInput) error {
	fields := map[string]string{}
	if in.Username == "" {
		fields["username"] = "is required"
	}
	if in.Email != "" {
		if err := validate.Var(in.Email, "email"); err != nil {
			fields["email"] = "must be a valid email"
		}
	}
	if s.Profile != config.ProfileAnonymous {
		if in.Email == "" {
			fields["email"] = "is required"
		}
		switch {
		case len(in.Password) < minPasswordLen:
			fields["password"] = "must be at least 8 characters long"
		case len(in.Password) > maxPasswordLen:
			fields["password"] = "must be at most 72 characters long"
		}
	}
	if len(fields) > 0 {
		return apperror.NewValidation("invalid payload", fields)
	}
	return nil
}

// SignIn verifies a username/password pair. Every credential failure
// returns apperror.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperror.IsNotFound(err) {
			s.burnVerify(password)
			helpers.SignInsFailed.Add(1)
			return nil, apperror.ErrInvalidCredentials
		}
		helpers.LogError(s.Logger, "lookup user failed", err, nil)
		return nil, err
	}
	if !u.HasCredentials() {
		s.burnVerify(password)
		helpers.SignInsFailed.Add(1)
		return nil, apperror.ErrInvalidCredentials
	}

	ok, err := helpers.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		helpers.LogError(s.Logger, "stored password digest is malformed", err, logrus.Fields{"user_id": u.ID})
		return nil, apperror.NewInternal("failed to verify credentials", err)
	}
	if !ok {
		helpers.SignInsFailed.Add(1)
		return nil, apperror.ErrInvalidCredentials
	}

	helpers.SignInsOK.Add(1)
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Issue(helpers.SubjectFor(u.ID))
	if err != nil {
		helpers.LogError(s.Logger, "issue token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, apperror.NewInternal("failed to issue token", err)
	}
	return &AuthResult{User: u.Redacted(), Token: token, ExpiresAt: exp}, nil
}

// burnVerify spends one bcrypt comparison so unknown usernames take as long
// as wrong passwords.
func (s *AuthService) burnVerify(password string) {
	if s.dummyDigest != "" {
		_, _ = helpers.VerifyPassword(s.dummyDigest, password)
	}
}
