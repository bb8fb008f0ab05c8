package services

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/server/auth"
	"github.com/dmitrijs2005/promptbook/internal/server/config"
	"golang.org/x/oauth2"
)

const stateValidityDuration = 10 * time.Minute

// OAuthService builds provider authorization URLs. The state parameter is a
// signed token naming the provider and where to send the user afterwards.
type OAuthService struct {
	providers map[string]*oauth2.Config
	jwtSecret []byte
}

func NewOAuthService(providers map[string]config.OAuthProvider, secretKey string) *OAuthService {
	s := &OAuthService{
		providers: make(map[string]*oauth2.Config, len(providers)),
		jwtSecret: []byte(secretKey),
	}
	for name, p := range providers {
		s.providers[name] = &oauth2.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  p.AuthURL,
				TokenURL: p.TokenURL,
			},
			RedirectURL: p.CallbackURL,
			Scopes:      p.Scopes,
		}
	}
	return s
}

// Providers lists the enabled provider names, sorted.
func (s *OAuthService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AuthURL returns the URL that starts the provider's sign-in flow.
// Unconfigured providers yield common.ErrProviderNotEnabled.
func (s *OAuthService) AuthURL(ctx context.Context, provider, redirectTo string) (string, error) {
	cfg, ok := s.providers[provider]
	if !ok {
		return "", common.ErrProviderNotEnabled
	}

	state, err := auth.GenerateStateToken(provider, redirectTo, s.jwtSecret, stateValidityDuration)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}
