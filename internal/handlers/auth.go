package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ornamenta/storefront/internal/auth"
	"github.com/ornamenta/storefront/internal/validation"
)

func registerAuthRoutes(api *gin.RouterGroup, v *validatorv10.Validate, svc *auth.Service) {
	api.POST("/auth/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		user, err := svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration_failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"userId": user.UserID, "email": user.Email})
	})

	api.POST("/auth/verify", func(c *gin.Context) {
		var req validation.VerifyEmailRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if err := svc.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
			if errors.Is(err, auth.ErrInvalidCode) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_code"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"verified": true})
	})

	api.POST("/auth/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		token, user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			case errors.Is(err, auth.ErrNotVerified):
				c.JSON(http.StatusForbidden, gin.H{"error": "email_not_verified"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":  token,
			"userId": user.UserID,
			"email":  user.Email,
			"name":   user.Name,
		})
	})
}
