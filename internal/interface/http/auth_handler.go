package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/listinker/listinker-api/internal/application"
	"github.com/listinker/listinker-api/pkg/response"
	"github.com/listinker/listinker-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type otpRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,phone"`
}

type emailOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type otpVerifyRequest struct {
	MobileNumber string    `json:"mobile_number" binding:"required,phone"`
	OTP          string    `json:"otp" binding:"required,len=6"`
	UserLocation []float64 `json:"user_location" binding:"omitempty,len=2"`
}

type tokenVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type emailVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestOTP(c.Request.Context(), req.MobileNumber); err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to send OTP", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "OTP sent successfully", nil)
}

func (h *AuthHandler) RequestEmailOTP(c *gin.Context) {
	var req emailOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestEmailOTP(c.Request.Context(), req.Email); err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to send email OTP", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email OTP sent successfully", nil)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.VerifyOTP(c.Request.Context(), req.MobileNumber, req.OTP, req.UserLocation)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{"expires_at": res.Expires})
}

func (h *AuthHandler) VerifyUser(c *gin.Context) {
	var req tokenVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"valid": h.Svc.VerifyToken(req.Token)}, "token checked", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req emailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Email, req.OTP); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email verified successfully", nil)
}
