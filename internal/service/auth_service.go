package service

import (
	"context"
	"errors"
	"os"
	"time"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/entity"
	"ai-recorddesk-be/internal/repository/specification"
	"ai-recorddesk-be/internal/repository/unitofwork"
	"ai-recorddesk-be/pkg/authz"
	"ai-recorddesk-be/pkg/events"
	pktNats "ai-recorddesk-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	tokenTTL       time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, tokenTTLHours int) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		tokenTTL:       time.Duration(tokenTTLHours) * time.Hour,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.ActorRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: req.EmployeeID})
	if existing != nil {
		return nil, errors.New("employee id already registered")
	}
	existing, _ = uow.ActorRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	role := req.Role
	if role == "" {
		role = authz.RoleEmployee
	}

	actor := &entity.Actor{
		Id:           uuid.New(),
		EmployeeID:   req.EmployeeID,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         role,
		Department:   req.Department,
		Status:       entity.ActorStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.ActorRepository().Create(ctx, actor); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		Id:         actor.Id,
		EmployeeID: actor.EmployeeID,
		Email:      actor.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actor, err := uow.ActorRepository().FindOne(ctx, specification.ByEmployeeID{EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if actor == nil || actor.PasswordHash == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*actor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if actor.Status != entity.ActorStatusActive {
		return nil, errors.New("account is suspended")
	}

	claims := jwt.MapClaims{
		"actor_id": actor.EmployeeID,
		"role":     actor.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: "actor.login",
			Data: map[string]interface{}{
				"actor_id": actor.EmployeeID,
				"time":     time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		_ = s.eventPublisher.Publish(ctx, event)
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		Actor: dto.ActorDTO{
			Id:         actor.Id,
			EmployeeID: actor.EmployeeID,
			Email:      actor.Email,
			FullName:   actor.FullName,
			Role:       actor.Role,
			Department: actor.Department,
		},
	}, nil
}
