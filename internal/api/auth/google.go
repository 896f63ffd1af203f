package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"hiringkit-app/config"
	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/httperr"
	"hiringkit-app/internal/domain/orgs"
	"hiringkit-app/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleIssuer = "https://accounts.google.com"

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	if config.GOOGLE_CLIENT_ID == "" {
		httperr.JSON(c, http.StatusNotImplemented, httperr.CodeInternal, "Google sign-in not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to generate state")
		return
	}

	// state lives in an HttpOnly cookie for the round trip
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	if config.GOOGLE_CLIENT_ID == "" {
		httperr.JSON(c, http.StatusNotImplemented, httperr.CodeInternal, "Google sign-in not configured")
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Missing code/state")
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		httperr.JSON(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Invalid oauth state")
		return
	}

	ctx := c.Request.Context()

	tok, err := googleOAuthConfig().Exchange(ctx, code)
	if err != nil {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Failed to exchange code")
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Missing id_token")
		return
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		slog.Error("oidc provider discovery failed", "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Sign-in unavailable")
		return
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID}).Verify(ctx, rawIDToken)
	if err != nil {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Invalid id_token")
		return
	}

	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		httperr.JSON(c, http.StatusUnauthorized, httperr.CodeUnauthorized, "Google account has no email")
		return
	}

	user, err := findOrCreateGoogleUser(claims.Sub, claims.Email, claims.Name)
	if err != nil {
		slog.Error("google user upsert failed", "email", claims.Email, "err", err)
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Failed to create user")
		return
	}

	tokenString, err := issueAppJWT(user)
	if err != nil {
		httperr.JSON(c, http.StatusInternalServerError, httperr.CodeInternal, "Could not create token")
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

func findOrCreateGoogleUser(sub, email, name string) (*users.User, error) {
	var user users.User
	err := database.DB.Where("google_sub = ?", sub).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// An existing local account with the same email gets linked.
	err = database.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		if err := database.DB.Model(&user).Update("google_sub", sub).Error; err != nil {
			return nil, err
		}
		user.GoogleSub = &sub
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if name == "" {
		name = email
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		org := orgs.Organization{Name: name}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		user = users.User{
			Name:         name,
			Email:        email,
			AuthProvider: "google",
			GoogleSub:    &sub,
			Role:         "user",
			OrgID:        &org.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
