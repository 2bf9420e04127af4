package registry

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const gracePeriod = time.Second * 30

type authenticator struct {
	config *clientcredentials.Config
	mu     *sync.Mutex

	token *oauth2.Token
}

func newAuthenticator(cfg Config) *authenticator {
	return &authenticator{
		config: &clientcredentials.Config{
			ClientID:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenUrl,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		mu: &sync.Mutex{},
	}
}

func (a *authenticator) GetToken(ctx context.Context) (*oauth2.Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.tokenIsValid() {
		token, err := a.config.Token(ctx)
		if err != nil {
			return nil, err
		}

		a.token = token
	}

	return a.token, nil
}

// tokenIsValid reports whether the cached token outlives the grace period
func (a *authenticator) tokenIsValid() bool {
	if a.token == nil || a.token.AccessToken == "" {
		return false
	}
	if a.token.Expiry.IsZero() {
		return true
	}
	return a.token.Expiry.Add(-gracePeriod).After(time.Now())
}
