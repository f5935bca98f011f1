// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package auth

import (
	"fmt"
	"net/http"

	"github.com/Bl4cky99/schemer/internal/config"
)

const DefaultRealm = "schemer"

type Principal struct {
	Name string
}

type Provider interface {
	Authenticate(*http.Request) (Principal, bool, error)
}

// Challenger is implemented by providers that answer a failed attempt
// with a WWW-Authenticate header.
type Challenger interface {
	Challenge() string
}

// FromConfig builds the provider for cfg. It returns nil for type "none".
func FromConfig(cfg config.AuthConfig) (Provider, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "token":
		if cfg.Token == nil {
			return nil, fmt.Errorf("%w: token config missing", config.ErrAuthConfig)
		}
		return NewTokenAuth(cfg.Token.Header, cfg.Token.Prefix, cfg.Token.Tokens), nil
	case "basic":
		if cfg.Basic == nil {
			return nil, fmt.Errorf("%w: basic config missing", config.ErrAuthConfig)
		}
		users := make(map[string]string, len(cfg.Basic.Users))
		for _, u := range cfg.Basic.Users {
			users[u.Username] = u.Password
		}
		return NewBasicAuth(users, DefaultRealm), nil
	default:
		return nil, fmt.Errorf("%w: auth.type %q", config.ErrAuthConfig, cfg.Type)
	}
}
