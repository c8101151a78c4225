package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cvmaker-backend/internal/mail"
	"cvmaker-backend/internal/shared/auth"
	"cvmaker-backend/internal/shared/telemetry"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrResetTokenInvalid  = errors.New("invalid or expired token")
	ErrInvalidInput       = errors.New("invalid input")
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
	googleEducation = "Not provided"
)

type Service struct {
	Repo         Repo
	Issuer       *auth.Issuer
	Mailer       mail.Sender
	BcryptCost   int
	ResetBaseURL string
	Now          func() time.Time
}

func NewService(repo Repo, issuer *auth.Issuer, mailer mail.Sender, bcryptCost int, resetBaseURL string) *Service {
	if mailer == nil {
		mailer = mail.LogSender{}
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		Repo:         repo,
		Issuer:       issuer,
		Mailer:       mailer,
		BcryptCost:   bcryptCost,
		ResetBaseURL: strings.TrimRight(resetBaseURL, "/"),
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a password account. Emails are unique case-insensitively.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	now := s.Now()
	user := User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Education:    strings.TrimSpace(in.Education),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login checks the password and issues a session token. Unknown emails and
// wrong passwords yield the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if user.PasswordHash == "" {
		return "", User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

// IssueToken signs a session token for user.
func (s *Service) IssueToken(user User) (string, error) {
	if s.Issuer == nil {
		return "", errors.New("token issuer not configured")
	}
	return s.Issuer.Sign(auth.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FirstName,
		IsAdmin: user.IsAdmin,
	})
}

// RequestReset stores a hashed one-hour reset token and emails the raw token link.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	var raw [resetTokenBytes]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return fmt.Errorf("reset token: %w", err)
	}
	token := hex.EncodeToString(raw[:])
	expires := s.Now().Add(resetTokenTTL)
	user.ResetTokenHash = hashToken(token)
	user.ResetExpiresAt = &expires
	user.UpdatedAt = s.Now()
	if err := s.Repo.Update(ctx, user); err != nil {
		return err
	}

	link := s.ResetBaseURL + "/reset-password/" + token
	if err := s.Mailer.Send(ctx, mail.PasswordReset(user.Email, user.FirstName, link)); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetTokenInvalid
	}
	user, err := s.Repo.GetByResetToken(ctx, hashToken(token), s.Now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetTokenHash = ""
	user.ResetExpiresAt = nil
	user.UpdatedAt = s.Now()
	return s.Repo.Update(ctx, user)
}

// LoginWithGoogle finds the account by Google ID, then by email (linking the
// Google ID), and otherwise creates one without a password.
func (s *Service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (string, User, error) {
	if strings.TrimSpace(profile.ID) == "" {
		return "", User{}, ErrInvalidInput
	}
	user, err := s.Repo.GetByGoogleID(ctx, profile.ID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		user, err = s.linkOrCreateGoogle(ctx, profile)
		if err != nil {
			return "", User{}, err
		}
	default:
		return "", User{}, err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) linkOrCreateGoogle(ctx context.Context, profile GoogleProfile) (User, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return User{}, ErrInvalidInput
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		user.GoogleID = profile.ID
		user.UpdatedAt = s.Now()
		return user, s.Repo.Update(ctx, user)
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	first, last, _ := strings.Cut(strings.TrimSpace(profile.Name), " ")
	now := s.Now()
	user = User{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  strings.TrimSpace(last),
		Education: googleEducation,
		Email:     email,
		GoogleID:  profile.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID, "via": "google"})
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.Repo.List(ctx)
}

// IsAdmin reports whether the user currently holds admin rights.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// EnsureAdmin creates the admin account or promotes and re-keys an existing one.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, firstName, lastName string) (User, bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, false, ErrInvalidInput
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return User{}, false, err
	}
	now := s.Now()

	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		user.IsAdmin = true
		user.PasswordHash = string(hash)
		user.UpdatedAt = now
		return user, false, s.Repo.Update(ctx, user)
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}
	user = User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Education:    "N/A",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return user, true, s.Repo.Create(ctx, user)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// hashPassword bcrypts password. Inputs over bcrypt's 72-byte limit are
// reported as ErrInvalidInput.
func (s *Service) hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrInvalidInput
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
