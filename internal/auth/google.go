package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"cvmaker-backend/internal/shared/server/respond"
	"cvmaker-backend/internal/shared/telemetry"
	"cvmaker-backend/internal/users"
)

const (
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateTTL           = 5 * time.Minute
)

// Accounts resolves a Google profile to a local account and session token.
type Accounts interface {
	LoginWithGoogle(ctx context.Context, profile users.GoogleProfile) (string, users.User, error)
}

// GoogleService handles Google OAuth flows.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	stateTTL    time.Duration
	states      StateStore
	accounts    Accounts
	userInfoURL string
}

// NewGoogleService builds a GoogleService. A nil states falls back to an
// in-process store.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, accounts Accounts, states StateStore) *GoogleService {
	if states == nil {
		states = NewMemoryStateStore()
	}
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:  uiRedirect,
		stateTTL:    stateTTL,
		states:      states,
		accounts:    accounts,
		userInfoURL: defaultUserInfoURL,
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google", s.start)
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != "" && s.accounts != nil
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	if err := s.states.Put(c.Request.Context(), state, s.stateTTL); err != nil {
		telemetry.Error("auth.google.state_store_failed", map[string]any{"err": err})
		respond.Internal(c)
		return
	}
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	ctx := c.Request.Context()
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		telemetry.Error("auth.google.state_store_failed", map[string]any{"err": err})
		respond.Internal(c)
		return
	}
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		telemetry.Warn("auth.google.userinfo_failed", map[string]any{"err": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if info.Sub == "" || info.Email == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}

	session, user, err := s.accounts.LoginWithGoogle(ctx, users.GoogleProfile{
		ID:    info.Sub,
		Email: info.Email,
		Name:  info.Name,
	})
	if err != nil {
		telemetry.Error("auth.google.login_failed", map[string]any{"err": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, session)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	telemetry.Info("auth.google.login", map[string]any{"user_id": user.ID})
	c.Redirect(http.StatusFound, redirectURL)
}

type googleUserInfo struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}
	// The v2 endpoint returns "id" rather than "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
