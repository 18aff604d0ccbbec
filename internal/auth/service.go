package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken: registration against an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials: unknown email or wrong password. One error
	// for both, so responses don't leak which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode: the verification code is wrong, expired or consumed.
	ErrInvalidCode = errors.New("invalid or expired verification code")
	// ErrNotVerified: login before the email was verified.
	ErrNotVerified = errors.New("email not verified")
)

// CodeTTL bounds how long a verification code stays redeemable.
const CodeTTL = 15 * time.Minute

// Service implements registration, email verification and login.
type Service struct {
	users  *Store
	codes  CodeStore
	tokens *TokenIssuer
	log    *zap.Logger
}

// NewService wires an auth Service.
func NewService(users *Store, codes CodeStore, tokens *TokenIssuer, log *zap.Logger) *Service {
	return &Service{
		users:  users,
		codes:  codes,
		tokens: tokens,
		log:    log,
	}
}

// Register creates an unverified user and issues a verification code. The
// code is handed to the mailer at the delivery boundary; here it is only
// stored hashed.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Verified:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if _, err := s.IssueVerificationCode(ctx, email); err != nil {
		// user exists; the code can be re-requested
		s.log.Warn("verification code issue failed", zap.String("email", email), zap.Error(err))
	}

	return user, nil
}

// IssueVerificationCode generates, stores (hashed, TTL-bound) and returns a
// fresh code for the email.
func (s *Service) IssueVerificationCode(ctx context.Context, email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	if err := s.codes.Put(ctx, email, HashCode(code), PurposeEmailVerify, CodeTTL); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	s.log.Info("verification code issued", zap.String("email", email))
	return code, nil
}

// VerifyEmail consumes the code and marks the user verified.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	ok, err := s.codes.Consume(ctx, email, HashCode(code), PurposeEmailVerify)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if !ok {
		return ErrInvalidCode
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return ErrInvalidCode
	}
	if err := s.users.MarkVerified(ctx, user.UserID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// Login checks credentials and mints an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, ErrNotVerified
	}

	token, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
