package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"homywork-server/internal/config"
	"homywork-server/internal/domain"
	"homywork-server/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauth_state"
	userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// AuthHandler bridges Google OAuth to local sessions. The server never sees
// a password; Google asserts the identity and the session cookie carries a
// signed token from then on.
type AuthHandler struct {
	authSvc     service.AuthService
	oauthConfig *oauth2.Config
	session     config.SessionConfig
	baseURL     string
}

func NewAuthHandler(authSvc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		session: cfg.Session,
		baseURL: cfg.Server.BaseURL,
	}
}

// HandleLogin starts the OAuth flow: sets a state cookie and redirects to
// Google's consent screen.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		respondError(w, fmt.Errorf("failed to generate oauth state: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback finishes the OAuth flow: verifies state, exchanges the
// code, reads the userinfo profile, upserts the user, and sets the session
// cookie.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondError(w, fmt.Errorf("%w: oauth state mismatch", domain.ErrUnauthenticated))
		return
	}
	// State is single-use.
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, fmt.Errorf("%w: missing authorization code", domain.ErrUnauthenticated))
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		respondError(w, fmt.Errorf("%w: code exchange failed", domain.ErrUnauthenticated))
		return
	}

	profile, err := h.fetchProfile(r, token)
	if err != nil {
		respondError(w, err)
		return
	}

	_, sessionToken, err := h.authSvc.LoginWithGoogle(r.Context(), profile)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   h.session.TTLHours * 3600,
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.baseURL, http.StatusTemporaryRedirect)
}

// fetchProfile reads the userinfo endpoint with the freshly exchanged token.
func (h *AuthHandler) fetchProfile(r *http.Request, token *oauth2.Token) (service.GoogleProfile, error) {
	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return service.GoogleProfile{}, fmt.Errorf("%w: userinfo request failed", domain.ErrUnauthenticated)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return service.GoogleProfile{}, fmt.Errorf("%w: userinfo returned status %d", domain.ErrUnauthenticated, resp.StatusCode)
	}

	var profile service.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&struct {
		Sub     *string `json:"sub"`
		Email   *string `json:"email"`
		Name    *string `json:"name"`
		Picture *string `json:"picture"`
	}{&profile.Sub, &profile.Email, &profile.Name, &profile.Picture}); err != nil {
		return service.GoogleProfile{}, fmt.Errorf("%w: invalid userinfo response", domain.ErrUnauthenticated)
	}
	return profile, nil
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, userFrom(r))
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
