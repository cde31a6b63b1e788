package controllers

import (
	"net/http"
	"strings"
	"time"

	"hotel-booking-backend/config"
	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the admin's password and issues a signed token carrying the
// admin email as subject.
func Login(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload loginPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid payload")
			return
		}

		email := strings.TrimSpace(payload.Email)
		if email == "" || payload.Password == "" {
			utils.JSONError(c, http.StatusBadRequest, "email and password required")
			return
		}

		var admin models.Admin
		if err := config.DB.Where("email = ?", email).First(&admin).Error; err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)); err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"sub":  admin.Email,
			"name": admin.FullName,
			"iat":  now.Unix(),
			"exp":  now.Add(24 * time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to sign token")
			return
		}

		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"token": token,
			"admin": gin.H{"id": admin.ID, "email": admin.Email, "fullName": admin.FullName},
		})
	}
}
