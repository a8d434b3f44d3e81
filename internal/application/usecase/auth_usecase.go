package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/multimovil/pos-api/internal/application/dto"
	"github.com/multimovil/pos-api/internal/domain"
	"github.com/multimovil/pos-api/internal/domain/entity"
	"github.com/multimovil/pos-api/internal/domain/repository"
	"github.com/multimovil/pos-api/pkg/jwt"
)

// AuthUseCase login y alta de usuarios.
type AuthUseCase struct {
	repo       repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(repo repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int) *AuthUseCase {
	return &AuthUseCase{repo: repo, jwtSecret: jwtSecret, jwtIssuer: jwtIssuer, expMinutes: expMinutes}
}

// Login valida credenciales y emite el token de sesión.
// El mismo error cubre email inexistente y password incorrecto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.repo.FindByEmail(strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Register da de alta un usuario. El rol por defecto es cajero.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCajero
	}
	if role != entity.RoleAdmin && role != entity.RoleCajero && role != entity.RoleTecnico {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *AuthUseCase) GetByID(userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// ListUsers lista usuarios con paginación.
func (uc *AuthUseCase) ListUsers(limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
