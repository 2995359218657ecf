// Package google wraps the OAuth flows used for account linking: code
// exchange, profile lookup and token revocation. Calendar sync itself is
// not handled here.
package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/planwheel/planwheel-server/internal/apperr"
)

const (
	userInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
	revokeURL   = "https://oauth2.googleapis.com/revoke"
)

var endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// UserInfo is the subset of the Google profile the server keeps.
type UserInfo struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Client performs the OAuth calls for one configured application.
type Client struct {
	conf *oauth2.Config
}

func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
	}
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.conf.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, apperr.ErrGoogleServer
	}
	return token, nil
}

// FetchUserInfo loads the profile for an exchanged token.
func (c *Client) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	resp, err := c.conf.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return nil, apperr.ErrGoogleServer
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.ErrGoogleServer
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperr.ErrGoogleServer
	}
	return &info, nil
}

// Revoke invalidates a refresh token at Google's side.
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	body := url.Values{"token": {refreshToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(body))
	if err != nil {
		return apperr.ErrGoogleServer
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return apperr.ErrGoogleServer
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.ErrGoogleServer
	}
	return nil
}
