package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/foodshare/foodshare-api/internal/auth"
	"github.com/foodshare/foodshare-api/internal/config"
	"github.com/foodshare/foodshare-api/internal/model"
	"github.com/foodshare/foodshare-api/internal/repository"
	"github.com/foodshare/foodshare-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, params LoginParams) (string, *model.User, error)
}

// RegisterParams defines the parameters for account registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
	Address  string
	Phone    string
}

// LoginParams defines the parameters for account login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	tokenCfg config.TokenConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		tokenCfg: tokenCfg,
	}
}

// Register hashes the password and persists a new account. The plaintext
// password is never stored and the derived hash is never returned to callers.
func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = model.RoleDonor
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         role,
		Address:      params.Address,
		Phone:        params.Phone,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues a signed bearer token carrying the
// account identity and role. An unknown email is reported distinctly from a
// failed hash comparison.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, *model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrUserNotFound
		}

		return "", nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", nil, err
	} else if !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.jwtAuth.IssueToken(
		user.ID.Hex(),
		string(user.Role),
		u.tokenCfg.Secret,
		u.tokenCfg.ExpiresIn,
	)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
