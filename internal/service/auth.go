package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
	"github.com/sahiljoster32/stock-monitor-backend/internal/storage"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned by Authenticate when the key matches no user.
	ErrInvalidToken = errors.New("invalid token")
)

const (
	minPasswordLength = 8
	tokenBytes        = 20

	msgNotUnique       = "This field must be unique."
	msgPasswordsDiffer = "Password fields didn't match."
	msgPasswordShort   = "This password is too short. It must contain at least 8 characters."
	msgPasswordNumeric = "This password is entirely numeric."
)

// FieldErrors is a validation failure keyed by request field name.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Registration holds the already shape-checked fields of a sign-up request.
type Registration struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token            string
	User             *models.User
	WatchListSymbols []string
}

// AuthService manages accounts and token authentication.
type AuthService interface {
	Register(ctx context.Context, in Registration) (*models.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Authenticate(ctx context.Context, token string) (int64, error)
}

type authService struct {
	users  storage.UsersRepository
	tokens storage.TokensRepository
	lists  storage.WatchListRepository
	cost   int
}

func NewAuthService(users storage.UsersRepository, tokens storage.TokensRepository, lists storage.WatchListRepository) AuthService {
	return &authService{users: users, tokens: tokens, lists: lists, cost: bcrypt.DefaultCost}
}

// Register creates the account together with its empty watch list.
// Every rule violation is returned at once as FieldErrors.
func (s *authService) Register(ctx context.Context, in Registration) (*models.User, error) {
	fields := FieldErrors{}

	usernameTaken, emailTaken, err := s.users.TakenFields(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check unique fields: %w", err)
	}
	if usernameTaken {
		fields.add("username", msgNotUnique)
	}
	if emailTaken {
		fields.add("email", msgNotUnique)
	}

	for _, msg := range passwordProblems(in) {
		fields.add("password", msg)
	}
	// The match check only runs once the password itself is acceptable.
	if len(fields["password"]) == 0 && in.Password != in.Password2 {
		fields.add("password", msgPasswordsDiffer)
	}
	if len(fields) > 0 {
		return nil, fields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateWithWatchList(ctx, &models.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
	})
	if errors.Is(err, storage.ErrDuplicate) {
		// Lost a race with a concurrent sign-up.
		return nil, FieldErrors{"username": {msgNotUnique}}
	}
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login checks the credentials and returns the user's token, creating it on first login.
func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	key, err := newTokenKey()
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return nil, fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}

	symbols, err := s.lists.GetSymbols(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load watch list for user %d: %w", user.ID, err)
	}

	return &Session{Token: token, User: user, WatchListSymbols: symbols}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := s.tokens.GetUserID(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// passwordProblems applies the account password rules.
func passwordProblems(in Registration) []string {
	var out []string
	pw := in.Password

	lower := strings.ToLower(pw)
	for _, attr := range []struct{ name, value string }{
		{"username", in.Username},
		{"first name", in.FirstName},
		{"last name", in.LastName},
		{"email address", in.Email},
	} {
		v := strings.ToLower(attr.value)
		if len(v) >= 3 && (lower == v || strings.Contains(lower, v) || strings.Contains(v, lower)) {
			out = append(out, "The password is too similar to the "+attr.name+".")
			break
		}
	}
	if len([]rune(pw)) < minPasswordLength {
		out = append(out, msgPasswordShort)
	}
	if pw != "" && strings.IndexFunc(pw, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		out = append(out, msgPasswordNumeric)
	}
	return out
}

// newTokenKey returns 40 hex characters from 20 random bytes.
func newTokenKey() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
