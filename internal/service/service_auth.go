package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oneday-app/oneday-server/internal/config"
	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/internal/utils"
	"github.com/oneday-app/oneday-server/models"
	"golang.org/x/crypto/bcrypt"
)

// authService implements [AuthService] on top of the user repository and the
// JWT helpers. Passwords are stored as bcrypt hashes and compared in
// constant time.
type authService struct {
	users  store.UserRepository
	cfg    config.App
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService].
func NewAuthService(users store.UserRepository, cfg config.App, log *logger.Logger) AuthService {
	log.Debug().Msg("creating auth service")
	return &authService{
		users:  users,
		cfg:    cfg,
		logger: log,
	}
}

// RegisterUser creates an account and issues its first session token.
func (s *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(req.Email, req.Password); err != nil {
		return models.User{}, models.Token{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("failed to hash password")
		return models.User{}, models.Token{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	token, err := s.issueToken(user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("failed to issue token")
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// LoginUser authenticates an email/password pair and issues a session token.
func (s *authService) LoginUser(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(req.Email, req.Password); err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	token, err := s.issueToken(user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*authService.LoginUser").Msg("failed to issue token")
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// GetUser fetches an account by id.
func (s *authService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

// ParseToken validates a raw JWT string.
func (s *authService) ParseToken(tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}

func (s *authService) issueToken(userID string) (models.Token, error) {
	return utils.GenerateJWTToken(s.cfg.TokenIssuer, userID, s.cfg.TokenDuration, s.cfg.TokenSignKey)
}

func validateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is required", ErrInvalidDataProvided)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidDataProvided)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
