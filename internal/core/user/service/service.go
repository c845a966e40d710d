package userapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"plume/internal/config"
	userEntity "plume/internal/core/user"
	userPort "plume/internal/ports/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username or email already taken")
)

// UserService handles registration, login and password-reset tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// Claims is the session token payload. Subject carries the user ID.
type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// Login checks the password and issues a signed session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := s.signToken(user, expiresAt)
	if err != nil {
		config.Logger.Error("Error generating session token", zap.Error(err))
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) signToken(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID.String(),
			Issuer:    "plume",
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error) {
	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, username, email)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  string(hashed),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return toDTO(u), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(u), nil
}

// RequestPasswordReset signs a short-lived reset token for the account
// behind the given email. Delivery is out of scope, so the token is only
// logged; an unknown email is not revealed to the caller.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return "", nil
	}

	token, err := s.signToken(user, time.Now().Add(time.Hour))
	if err != nil {
		return "", err
	}

	config.Logger.Info("Password reset token issued",
		zap.String("username", user.Username),
		zap.String("token", token))
	return token, nil
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
