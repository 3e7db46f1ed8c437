package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"captionboard/internal/db"
	"captionboard/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var googleOauthConfig *oauth2.Config

// InitGoogleOAuth builds the OAuth config from the environment. Call once
// at startup, before the router starts serving.
func InitGoogleOAuth() {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}

	googleOauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  siteURL + "/auth/callback",
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Start serves GET /auth/start: stashes a state token in the session and
// sends the browser to the Google consent screen.
func (h *AuthHandler) Start(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		ServerError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set("oauth_state", state)
	session.Save()

	url := googleOauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback serves GET /auth/callback: verifies the state, exchanges the
// code, and signs the profile in, creating it on first sign-in.
func (h *AuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		BadRequest(c, "Invalid OAuth state")
		return
	}

	session.Delete("oauth_state")
	session.Save()

	code := c.Query("code")
	if code == "" {
		BadRequest(c, "Missing authorization code")
		return
	}

	token, err := googleOauthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		ServerError(c, fmt.Errorf("token exchange failed: %w", err))
		return
	}

	info, err := fetchGoogleUserInfo(token.AccessToken)
	if err != nil {
		ServerError(c, err)
		return
	}

	if !info.VerifiedEmail {
		BadRequest(c, "Google email not verified")
		return
	}

	profile, err := findOrCreateProfile(info)
	if err != nil {
		ServerError(c, err)
		return
	}

	session.Set("profile_id", profile.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// SignOut serves GET /auth/signout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

// Me serves GET /api/me.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentProfile(c))
}

// findOrCreateProfile resolves a Google identity to a local profile:
// match on google_id or email, create on first sign-in, and bind the
// Google identity to an existing email account that lacks one.
func findOrCreateProfile(info *googleUserInfo) (*models.Profile, error) {
	var profile models.Profile
	err := db.DB.Where("google_id = ?", info.ID).Or("email = ?", info.Email).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		username := info.GivenName
		if username == "" {
			username = strings.Split(info.Email, "@")[0]
		}
		profile = models.Profile{
			ID:          uuid.NewString(),
			Username:    username,
			Email:       info.Email,
			AvatarURL:   info.Picture,
			GoogleID:    info.ID,
			GoogleEmail: info.Email,
		}
		if err := db.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if profile.GoogleID == "" {
			// Existing email account signing in with Google for the
			// first time: bind it.
			profile.GoogleID = info.ID
			profile.GoogleEmail = info.Email
			if err := db.DB.Save(&profile).Error; err != nil {
				return nil, err
			}
		}
	}
	return &profile, nil
}

func fetchGoogleUserInfo(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}

	return &info, nil
}
