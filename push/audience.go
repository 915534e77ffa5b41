package push

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/forkline/restaurant-admin-api/models"
)

// TokenPrefix is the leading marker of every valid Expo push token. Stored tokens
// without it are stale or corrupt and must never be sent to the gateway.
const TokenPrefix = "ExponentPushToken["

// Audience selects which registered devices receive a notification
type Audience string

// Supported audience selectors
const (
	AudienceAll         Audience = "all"
	AudienceAdmins      Audience = "admins"
	AudienceUsers       Audience = "users"
	AudienceSystemAdmin Audience = "system_admin"
)

// TokenStore is the read-only slice of the token registry the resolver consumes
type TokenStore interface {
	FindEnabled(ctx context.Context, roles []string) ([]models.PushToken, error)
}

// Resolution holds the validated token list for an audience. ExcludedCount reports
// how many enabled tokens were dropped for failing the prefix check, so operators
// can spot silent decay in the registry.
type Resolution struct {
	Tokens        []string
	ExcludedCount int
}

// Resolver translates an audience selector into a validated token list
type Resolver struct {
	store TokenStore
}

// NewResolver returns a resolver reading from the given token store
func NewResolver(store TokenStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns every enabled, well-formed token matching the audience. The
// returned list may be empty. A store read failure is returned as an error and the
// caller must not attempt delivery.
func (r *Resolver) Resolve(ctx context.Context, audience Audience) (Resolution, error) {
	roles, err := rolesFor(audience)
	if err != nil {
		return Resolution{}, err
	}

	tokens, err := r.store.FindEnabled(ctx, roles)
	if err != nil {
		return Resolution{}, fmt.Errorf("token store unavailable: %w", err)
	}

	res := Resolution{Tokens: []string{}}
	for _, t := range tokens {
		if !strings.HasPrefix(t.Token, TokenPrefix) {
			res.ExcludedCount++
			continue
		}
		res.Tokens = append(res.Tokens, t.Token)
	}

	if res.ExcludedCount > 0 {
		zap.S().Warnw("excluded malformed push tokens from audience",
			"audience", audience,
			"excluded", res.ExcludedCount,
		)
	}

	return res, nil
}

// rolesFor maps an audience selector to the token roles it covers. An empty slice
// means no role filter.
func rolesFor(audience Audience) ([]string, error) {
	switch audience {
	case AudienceAll:
		return nil, nil
	case AudienceAdmins:
		return []string{models.RoleAdmin, models.RoleSystemAdmin}, nil
	case AudienceUsers:
		return []string{models.RoleUser}, nil
	case AudienceSystemAdmin:
		return []string{models.RoleSystemAdmin}, nil
	default:
		return nil, fmt.Errorf("unknown target audience %q", audience)
	}
}
