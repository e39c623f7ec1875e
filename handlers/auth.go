package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"overtimepay/config"
	"overtimepay/database"
	"overtimepay/middleware"
	"overtimepay/models"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type sessionResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	h.startSession(w, r, &user, http.StatusOK)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearTokenCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Register creates an employee account and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	var existing models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&existing).Error; err == nil {
		writeError(w, http.StatusConflict, "username already exists", nil)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleEmployee,
	}
	if err := database.GetDB().Create(&user).Error; err != nil {
		writeDomainError(w, r, err)
		return
	}
	// gorm skips zero values for fields with a default tag on create
	database.GetDB().Model(&user).Update("must_change_password", false)
	user.MustChangePassword = false

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	h.startSession(w, r, &user, http.StatusCreated)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req ChangePasswordRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		writeError(w, http.StatusBadRequest, "current password is incorrect", nil)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserDTO(middleware.GetUserFromContext(r.Context())))
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.GetDB().Order("username asc").Find(&users).Error; err != nil {
		writeDomainError(w, r, err)
		return
	}

	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	target, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := decode(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if req.FullName != nil {
		target.FullName = *req.FullName
	}
	if req.Role != nil {
		target.Role = models.Role(*req.Role)
	}
	if req.ResetPassword != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.ResetPassword), bcrypt.DefaultCost)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		target.PasswordHash = string(hashedPassword)
		target.MustChangePassword = true
	}

	if err := database.GetDB().Save(target).Error; err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(target))
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	target, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	if current := middleware.GetUserFromContext(r.Context()); current.ID == target.ID {
		writeError(w, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", target.ID).Delete(&models.OvertimeEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", target.ID).Delete(&models.Settings{}).Error; err != nil {
			return err
		}
		return tx.Delete(target).Error
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	slog.Info("user deleted", "user_id", target.ID, "username", target.Username)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id", err)
		return nil, false
	}

	var user models.User
	err = database.GetDB().First(&user, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return nil, false
	}
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	return &user, true
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, status, sessionResponse{Token: token, User: toUserDTO(user)})
}
