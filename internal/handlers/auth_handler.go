package handlers

import (
	"net/http"

	"shop-service/internal/dto"
	"shop-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя с ролью CUSTOMER
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} dto.RegisterResponse "Успешная регистрация"
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 409 {object} dto.ConflictErrorResponse "Email или username уже заняты"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	u, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{Message: "User registered successfully", User: toUserResponse(u)})
}

// Login godoc
// @Summary Авторизация пользователя
// @Description Вход по email или username, выдаёт access токен
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:   "Login successful",
		Token:     res.AccessToken,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User),
	})
}

// ForgotPassword godoc
// @Summary Запрос на сброс пароля
// @Description Отправляет 4-значный PIN на почту пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param email body dto.ForgotPasswordRequest true "Email пользователя"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 404 {object} dto.NotFoundErrorResponse "Пользователь не найден"
// @Failure 429 {object} dto.RateLimitedErrorResponse "Слишком частые запросы"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "PIN code sent to email"})
}

// ResetPassword godoc
// @Summary Сброс пароля по PIN
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Email, PIN и новый пароль"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный или просроченный PIN"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), service.ResetPasswordInput{
		Email:           req.Email,
		Pin:             req.Pin,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}
