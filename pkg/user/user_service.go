package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"Meal-Preorder-Backend/domain"
	"Meal-Preorder-Backend/entities"
	"Meal-Preorder-Backend/internal/utils"
	"Meal-Preorder-Backend/internal/utils/mailing"
	"Meal-Preorder-Backend/pkg/jwt"
	"Meal-Preorder-Backend/pkg/userpackage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpLifetime = 10 * time.Minute

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
		VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.AuthResponse, error)
		ResendOTP(ctx context.Context, req domain.ResendOTPRequest) (bool, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		GetUsers(ctx context.Context, req domain.ListUsersRequest) ([]*domain.UserResponse, error)
		GetUser(ctx context.Context, id string) (*domain.UserDetailResponse, error)
		BlockUser(ctx context.Context, id string) (*domain.UserResponse, error)
		UnblockUser(ctx context.Context, id string) (*domain.UserResponse, error)
		IsBlocked(ctx context.Context, userID string) (bool, error)
	}

	userService struct {
		userRepository        UserRepository
		userPackageRepository userpackage.UserPackageRepository
		jwtService            jwt.JWTService
		notifier              mailing.Notifier
		clock                 utils.Clock
	}
)

func NewUserService(
	userRepository UserRepository,
	userPackageRepository userpackage.UserPackageRepository,
	jwtService jwt.JWTService,
	notifier mailing.Notifier,
	clock utils.Clock,
) UserService {
	return &userService{
		userRepository:        userRepository,
		userPackageRepository: userPackageRepository,
		jwtService:            jwtService,
		notifier:              notifier,
		clock:                 clock,
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToUserResponse(u *entities.User) *domain.UserResponse {
	return &domain.UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		IsBlocked:  u.IsBlocked,
		CreatedAt:  u.CreatedAt,
	}
}

func (s *userService) sendOTP(u *entities.User, otp string) {
	go func() {
		if err := s.notifier.SendOTP(context.Background(), u.Email, u.Name, otp); err != nil {
			log.Errorf("failed to send OTP to %s: %v", u.Email, err)
		}
	}()
}

func (s *userService) issueOTP(ctx context.Context, u *entities.User) error {
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expiry := s.clock.Now().Add(otpLifetime)
	u.OTPCode = &otp
	u.OTPExpiry = &expiry
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return err
	}
	s.sendOTP(u, otp)
	return nil
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expiry := s.clock.Now().Add(otpLifetime)

	u := &entities.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hashed,
		Role:      domain.RoleUser,
		OTPCode:   &otp,
		OTPExpiry: &expiry,
	}
	if err := s.userRepository.CreateUser(ctx, u); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, err
	}
	s.sendOTP(u, otp)

	return &domain.RegisterResponse{
		Email:       u.Email,
		RequiresOTP: true,
	}, nil
}

func (s *userService) authResponse(ctx context.Context, u *entities.User) (*domain.AuthResponse, error) {
	profile, err := s.withActivePackage(ctx, u)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		Token: s.jwtService.GenerateTokenUser(u.ID.String(), u.Role),
		User:  profile,
	}, nil
}

func (s *userService) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.AuthResponse, error) {
	u, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if u.IsVerified {
		return s.authResponse(ctx, u)
	}

	if u.OTPCode == nil || u.OTPExpiry == nil ||
		*u.OTPCode != req.OTP || !s.clock.Now().Before(*u.OTPExpiry) {
		return nil, domain.ErrInvalidOTP
	}

	u.IsVerified = true
	u.OTPCode = nil
	u.OTPExpiry = nil
	if err := s.userRepository.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return s.authResponse(ctx, u)
}

// ResendOTP reports true when the account was already verified and nothing was sent.
func (s *userService) ResendOTP(ctx context.Context, req domain.ResendOTPRequest) (bool, error) {
	u, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}
	if u.IsVerified {
		return true, nil
	}
	return false, s.issueOTP(ctx, u)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	u, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if u.IsBlocked {
		return nil, domain.ErrUserBlocked
	}
	if !u.IsVerified {
		return nil, domain.ErrUserNotVerified
	}
	return s.authResponse(ctx, u)
}

func (s *userService) withActivePackage(ctx context.Context, u *entities.User) (*domain.UserResponse, error) {
	res := ToUserResponse(u)
	if u.ActivePackageID == nil {
		return res, nil
	}
	active, err := s.userPackageRepository.GetActiveUserPackage(ctx, u.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, nil
		}
		return nil, err
	}
	res.ActivePackage = userpackage.ToUserPackageResponse(active, s.clock.Now())
	return res, nil
}

func (s *userService) getUser(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	u, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withActivePackage(ctx, u)
}

func (s *userService) GetUsers(ctx context.Context, req domain.ListUsersRequest) ([]*domain.UserResponse, error) {
	users, err := s.userRepository.GetUsers(ctx, UserFilter{
		Role:      req.Role,
		IsBlocked: req.IsBlocked,
		Search:    strings.TrimSpace(req.Search),
	})
	if err != nil {
		return nil, err
	}

	result := make([]*domain.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserResponse(u))
	}
	return result, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.UserDetailResponse, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.withActivePackage(ctx, u)
	if err != nil {
		return nil, err
	}
	packages, err := s.userPackageRepository.GetUserPackages(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.UserDetailResponse{
		User:     profile,
		Packages: userpackage.ToUserPackageResponses(packages, s.clock.Now()),
	}, nil
}

func (s *userService) setBlocked(ctx context.Context, id string, blocked bool) (*domain.UserResponse, error) {
	u, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if blocked && u.Role == domain.RoleAdmin {
		return nil, domain.ErrCannotBlockAdmin
	}
	if err := s.userRepository.SetBlocked(ctx, id, blocked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.IsBlocked = blocked
	return ToUserResponse(u), nil
}

func (s *userService) BlockUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	return s.setBlocked(ctx, id, true)
}

func (s *userService) UnblockUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	return s.setBlocked(ctx, id, false)
}

func (s *userService) IsBlocked(ctx context.Context, userID string) (bool, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsBlocked, nil
}
