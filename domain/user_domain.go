package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessRegister    = "registered successfully, check your email for the OTP code"
	MessageSuccessVerifyOTP   = "account verified successfully"
	MessageSuccessResendOTP   = "a new OTP code has been sent, check your email"
	MessageAlreadyVerified    = "account was already verified"
	MessageSuccessLogin       = "logged in successfully"
	MessageSuccessGetMe       = "profile retrieved successfully"
	MessageSuccessGetUsers    = "users retrieved successfully"
	MessageSuccessGetUser     = "user retrieved successfully"
	MessageSuccessBlockUser   = "user blocked"
	MessageSuccessUnblockUser = "user unblocked"

	MessageFailedRegister    = "failed to register"
	MessageFailedVerifyOTP   = "failed to verify OTP"
	MessageFailedResendOTP   = "failed to resend OTP"
	MessageFailedLogin       = "failed to login"
	MessageFailedGetMe       = "failed to retrieve profile"
	MessageFailedGetUsers    = "failed to retrieve users"
	MessageFailedGetUser     = "failed to retrieve user"
	MessageFailedBlockUser   = "failed to block user"
	MessageFailedUnblockUser = "failed to unblock user"

	ErrInvalidCredentials = NewServiceError("INVALID_CREDENTIALS", "email or password is incorrect", http.StatusUnauthorized)
	ErrUserNotFound       = NewServiceError("USER_NOT_FOUND", "user not found", http.StatusNotFound)
	ErrUserBlocked        = NewServiceError("USER_BLOCKED", "account has been blocked", http.StatusForbidden)
	ErrUserNotVerified    = NewServiceError("USER_NOT_VERIFIED", "account has not been verified", http.StatusForbidden)
	ErrEmailExists        = NewServiceError("EMAIL_EXISTS", "email is already in use", http.StatusBadRequest)
	ErrInvalidOTP         = NewServiceError("INVALID_OTP", "OTP code is incorrect or expired", http.StatusBadRequest)
	ErrCannotBlockAdmin   = NewServiceError("CANNOT_BLOCK_ADMIN", "admin accounts cannot be blocked", http.StatusBadRequest)
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	RegisterResponse struct {
		Email       string `json:"email"`
		RequiresOTP bool   `json:"requires_otp"`
	}

	VerifyOTPRequest struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=6,numeric"`
	}

	ResendOTPRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string        `json:"token"`
		User  *UserResponse `json:"user"`
	}

	UserResponse struct {
		ID            string               `json:"id"`
		Name          string               `json:"name"`
		Email         string               `json:"email"`
		Role          string               `json:"role"`
		IsVerified    bool                 `json:"is_verified"`
		IsBlocked     bool                 `json:"is_blocked"`
		ActivePackage *UserPackageResponse `json:"active_package,omitempty"`
		CreatedAt     time.Time            `json:"created_at"`
	}

	UserDetailResponse struct {
		User     *UserResponse          `json:"user"`
		Packages []*UserPackageResponse `json:"packages"`
	}

	ListUsersRequest struct {
		Role      string `query:"role" validate:"omitempty,oneof=admin user"`
		IsBlocked *bool  `query:"is_blocked"`
		Search    string `query:"search"`
	}
)
