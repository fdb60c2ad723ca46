package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pagesmith/pagesmith/internal/config"
	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/internal/store"
	"github.com/pagesmith/pagesmith/internal/utils"
	"github.com/pagesmith/pagesmith/models"
)

// rootUsername is the bootstrap account seeded by the schema migration
// with an empty password hash. Its first successful login claims it.
const rootUsername = "root"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the JWT
// session lifecycle, using a UserRepository for persistence and bcrypt
// for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is
// read-only after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account with a bcrypt-hashed password.
//
// Returns ErrInvalidDataProvided if Username or Password is empty, and
// store.ErrUsernameTaken wrapped in the repository error when the
// username already exists.
func (a *authService) Register(ctx context.Context, user models.MutUser) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Password == "" {
		log.Error().Str("username", user.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := hashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing ended with error")
		return models.User{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	registeredUser, err := a.userRepository.Create(ctx, models.User{
		Username:     user.Username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates a user and issues a fresh session token.
//
// The issued token is persisted on the account, so it supersedes any
// previously issued token for the same user.
//
// The bootstrap root account (empty password hash) is claimable exactly
// once: the first login succeeds with any password, but once a token
// has been stored further claim attempts fail with
// ErrRootAlreadyClaimed until a real password is set via UpdateUser.
//
// Returns ErrInvalidDataProvided on an empty username, store.ErrNotFound
// for an unknown account and ErrWrongPassword on a bcrypt mismatch.
func (a *authService) Login(ctx context.Context, user models.MutUser) (models.Token, bool, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" {
		log.Error().Msg("invalid user data provided")
		return models.Token{}, false, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.GetByUsername(ctx, user.Username)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user search by username failed")
		return models.Token{}, false, fmt.Errorf("user search by username failed: %w", err)
	}

	isUnclaimedRoot := foundUser.Username == rootUsername && foundUser.PasswordHash == ""
	if isUnclaimedRoot && foundUser.AuthToken != nil {
		log.Error().Str("username", user.Username).Msg("repeated claim of the root account")
		return models.Token{}, false, ErrRootAlreadyClaimed
	}

	if !isUnclaimedRoot {
		if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
			log.Error().Str("username", user.Username).Msg("wrong password")
			return models.Token{}, false, ErrWrongPassword
		}
	}

	token, err := a.issueAndStoreToken(ctx, foundUser.Username)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("token issuing ended with error")
		return models.Token{}, false, err
	}

	return token, isUnclaimedRoot, nil
}

// Logout revokes the user's session by clearing the stored token.
// Every token issued before the call stops authenticating.
func (a *authService) Logout(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	if username == "" {
		return ErrInvalidDataProvided
	}

	if _, err := a.userRepository.UpdateToken(ctx, username, nil); err != nil {
		log.Err(err).Str("username", username).Msg("token revocation ended with error")
		return fmt.Errorf("token revocation ended with error: %w", err)
	}

	return nil
}

// Authenticate validates a raw token string and resolves the account it
// was issued for.
//
// Beyond JWT validation (signature, issuer, expiry) the token string
// must equal, byte for byte, the token currently stored for the user.
// A token that no longer matches — cleared by Logout or superseded by a
// newer Login — fails with ErrNotLoggedIn.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	foundUser, err := a.userRepository.GetByUsername(ctx, token.Username)
	if err != nil {
		log.Err(err).Str("username", token.Username).Msg("token subject lookup failed")
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrTokenIsExpiredOrInvalid
		}
		return models.User{}, fmt.Errorf("token subject lookup failed: %w", err)
	}

	if foundUser.AuthToken == nil || *foundUser.AuthToken != tokenString {
		log.Error().Str("username", token.Username).Msg("token does not match the stored session")
		return models.User{}, ErrNotLoggedIn
	}

	return foundUser, nil
}

func (a *authService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return a.userRepository.GetByID(ctx, id)
}

// UpdateUser overwrites the credentials of the account with the given id.
//
// Only the account owner may update it: actor must match the current
// username of the stored account, otherwise ErrNotResourceOwner is
// returned. The password is re-hashed and a fresh token is issued and
// stored, invalidating all previous sessions — necessary anyway when
// the username changes, since tokens carry the username as subject.
func (a *authService) UpdateUser(ctx context.Context, id int64, actor string, user models.MutUser) (models.Token, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Password == "" {
		log.Error().Str("username", user.Username).Msg("invalid user data provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.GetByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user search by id failed")
		return models.Token{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if foundUser.Username != actor {
		log.Error().Int64("id", id).Str("actor", actor).Msg("attempt to update another user's account")
		return models.Token{}, ErrNotResourceOwner
	}

	passwordHash, err := hashPassword(user.Password)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("password hashing ended with error")
		return models.Token{}, fmt.Errorf("password hashing ended with error: %w", err)
	}

	if _, err := a.userRepository.Update(ctx, id, models.User{
		Username:     user.Username,
		PasswordHash: passwordHash,
	}); err != nil {
		log.Err(err).Int64("id", id).Msg("user update ended with error")
		return models.Token{}, fmt.Errorf("user update ended with error: %w", err)
	}

	// tokens carry the username as subject, so the session has to be
	// reissued under the new credentials
	token, err := a.issueAndStoreToken(ctx, user.Username)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("token issuing ended with error")
		return models.Token{}, err
	}

	return token, nil
}

func (a *authService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := a.userRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given username.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and the username as the
// "sub" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, username string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, username, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need
// to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// issueAndStoreToken creates a fresh token for the user and persists it
// as the account's only valid session token.
func (a *authService) issueAndStoreToken(ctx context.Context, username string) (models.Token, error) {
	token, err := a.CreateToken(ctx, username)
	if err != nil {
		return models.Token{}, err
	}

	if _, err := a.userRepository.UpdateToken(ctx, username, &token.SignedString); err != nil {
		return models.Token{}, fmt.Errorf("storing issued token ended with error: %w", err)
	}

	return token, nil
}

// hashPassword derives a bcrypt hash from a plain-text password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
