package auth

import (
	"log/slog"
	"net/http"
	"time"

	"hiringkit-app/config"
	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/domain/orgs"
	"hiringkit-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err.Error())
		return
	}

	if !isPasswordStrong(input.Password) {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeValidationFailed,
			"Password must be at least 8 characters long and contain both letters and numbers")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to process password")
		return
	}
	hashed := string(hashedPassword)

	var user users.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		org := orgs.Organization{Name: input.Name}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		user = users.User{
			Name:         input.Name,
			Email:        input.Email,
			Password:     &hashed,
			AuthProvider: "local",
			Role:         "user",
			OrgID:        &org.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		slog.Error("register failed", "email", input.Email, "err", err)
		httperr.JSON(c, http.StatusConflict, httperr.CodeInvalidRequest, "Email may already exist")
		return
	}

	token, err := issueAppJWT(&user)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Could not create token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.ID})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, err.Error())
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Invalid credentials")
		return
	}

	if user.Password == nil || *user.Password == "" {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "This account uses Google sign-in")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueAppJWT(&user)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Could not create token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func issueAppJWT(user *users.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	if user.OrgID != nil {
		claims["org_id"] = *user.OrgID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}
