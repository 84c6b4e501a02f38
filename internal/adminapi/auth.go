package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/internal/webserver"
	"github.com/Mustagiz/Aleen/pkg/common"
)

func registerAuthRoutes() {
	webserver.ApiPOST("/auth/login", login)
	webserver.ApiPOST("/auth/register", register)
	webserver.ApiPUT("/auth/reset-password", resetPassword)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required", nil)
	}

	var operator domain.SysOpr
	err := GetDB(c).Where("email = ?", strings.ToLower(strings.TrimSpace(payload.Email))).First(&operator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operator", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}
	if operator.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}

	cfg := webserver.AppCtx().Config().Web
	lifetime := time.Duration(cfg.JwtExpire) * time.Hour
	if lifetime <= 0 {
		lifetime = 168 * time.Hour
	}
	token, err := webserver.NewToken(cfg.Secret, operator.ID, operator.Email, lifetime)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", nil)
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	return ok(c, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    strconv.FormatInt(operator.ID, 10),
			"email": operator.Email,
			"name":  operator.Realname,
		},
	})
}

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

func register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse register parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email, password and name are required", nil)
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	var count int64
	GetDB(c).Model(&domain.SysOpr{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", "An account with this email already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}

	operator := domain.SysOpr{
		ID:       common.UUIDint64(),
		Realname: strings.TrimSpace(payload.Name),
		Email:    email,
		Username: email,
		Password: string(hashed),
		Level:    "admin",
		Status:   common.ENABLED,
	}
	if err := GetDB(c).Create(&operator).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create operator", nil)
	}
	return created(c, echo.Map{"message": "User created successfully"})
}

type resetPasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func resetPassword(c echo.Context) error {
	operatorID := webserver.CurrentOperatorID(c)
	if operatorID == 0 {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}

	var payload resetPasswordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Current and new password are required", nil)
	}

	var operator domain.SysOpr
	if err := GetDB(c).First(&operator, operatorID).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Operator not found", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(payload.CurrentPassword)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", nil)
	}
	if err := GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(map[string]interface{}{
		"password":   string(hashed),
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update password", nil)
	}
	return ok(c, echo.Map{"message": "Password updated successfully"})
}
