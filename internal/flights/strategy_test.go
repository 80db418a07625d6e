package flights

import (
	"context"
	"net/http"
	"testing"

	"skybook/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendErr(kind backend.ErrorKind, status int) error {
	return &backend.Error{Kind: kind, StatusCode: status, Method: http.MethodGet, Path: "/api/flights"}
}

func TestFallbackPolicy_Run(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		results       map[string]error
		wantTried     []string
		wantSource    string
		wantKind      backend.ErrorKind
	}{
		{
			name:       "first strategy succeeds",
			results:    map[string]error{},
			wantTried:  []string{"customer"},
			wantSource: "customer",
		},
		{
			name:       "not found falls through to public",
			results:    map[string]error{"customer": backendErr(backend.KindNotFound, 404)},
			wantTried:  []string{"customer", "public"},
			wantSource: "public",
		},
		{
			name: "admin only tried with a token",
			results: map[string]error{
				"customer": backendErr(backend.KindServer, 500),
				"public":   backendErr(backend.KindNoResponse, 0),
			},
			authenticated: true,
			wantTried:     []string{"customer", "public", "admin"},
			wantSource:    "admin",
		},
		{
			name: "anonymous run ends after public",
			results: map[string]error{
				"customer": backendErr(backend.KindServer, 500),
				"public":   backendErr(backend.KindTimeout, 0),
			},
			wantTried: []string{"customer", "public"},
			wantKind:  backend.KindTimeout,
		},
		{
			name:       "anonymous unauthorized falls through to public",
			results:    map[string]error{"customer": backendErr(backend.KindUnauthorized, 401)},
			wantTried:  []string{"customer", "public"},
			wantSource: "public",
		},
		{
			name:       "anonymous forbidden falls through to public",
			results:    map[string]error{"customer": backendErr(backend.KindForbidden, 403)},
			wantTried:  []string{"customer", "public"},
			wantSource: "public",
		},
		{
			name: "anonymous unauthorized on the last strategy is returned",
			results: map[string]error{
				"customer": backendErr(backend.KindUnauthorized, 401),
				"public":   backendErr(backend.KindUnauthorized, 401),
			},
			wantTried: []string{"customer", "public"},
			wantKind:  backend.KindUnauthorized,
		},
		{
			name:          "forbidden with a token stops the walk",
			results:       map[string]error{"customer": backendErr(backend.KindForbidden, 403)},
			authenticated: true,
			wantTried:     []string{"customer"},
			wantKind:      backend.KindForbidden,
		},
		{
			name:          "unauthorized stops the walk",
			results:       map[string]error{"customer": backendErr(backend.KindUnauthorized, 401)},
			authenticated: true,
			wantTried:     []string{"customer"},
			wantKind:      backend.KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewFallbackPolicy(DefaultStrategies)
			var tried []string

			flights, source, err := policy.Run(context.Background(), tt.authenticated, func(ctx context.Context, s Strategy) ([]backend.Flight, error) {
				tried = append(tried, s.Name)
				if err := tt.results[s.Name]; err != nil {
					return nil, err
				}
				return []backend.Flight{{ID: s.Name}}, nil
			})

			assert.Equal(t, tt.wantTried, tried)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, backend.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, source.Name)
			assert.Equal(t, tt.wantSource, flights[0].ID)
		})
	}
}

func TestFallbackPolicy_NoEligibleStrategy(t *testing.T) {
	policy := NewFallbackPolicy([]Strategy{{Name: "admin", Path: backend.PathFlightsAdmin, RequiresAuth: true}})

	_, _, err := policy.Run(context.Background(), false, func(ctx context.Context, s Strategy) ([]backend.Flight, error) {
		t.Fatal("fetch must not be called")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrNoStrategy)
}
