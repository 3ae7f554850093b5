package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Provider authenticates a request and returns its auth state.
type Provider interface {
	Authenticate(r *http.Request) (*State, error)
}

// tokenParam is the query parameter and cookie name checked after the header
const tokenParam = "token"

// StrategyConfig holds configuration for Strategy
type StrategyConfig struct {
	Name       string
	SecretKey  string
	Algorithms []string // Allowed HMAC algorithms, e.g. HS512
	Validator  Validator
}

// Strategy authenticates requests carrying an HMAC-signed JWT.
type Strategy struct {
	name      string
	key       []byte
	methods   []string
	validator Validator
	logger    *zap.Logger
}

// NewStrategy creates a JWT strategy. Only HMAC algorithms are accepted.
func NewStrategy(cfg StrategyConfig, logger *zap.Logger) (*Strategy, error) {
	if cfg.Name == "" {
		return nil, errors.New("strategy name is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("strategy secret key is required")
	}
	if len(cfg.Algorithms) == 0 {
		return nil, errors.New("at least one algorithm is required")
	}
	for _, alg := range cfg.Algorithms {
		if _, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unsupported algorithm %q", alg)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Validator == nil {
		cfg.Validator = NewAcceptAll(logger)
	}

	return &Strategy{
		name:      cfg.Name,
		key:       []byte(cfg.SecretKey),
		methods:   append([]string(nil), cfg.Algorithms...),
		validator: cfg.Validator,
		logger:    logger,
	}, nil
}

// Name returns the strategy name routes refer to
func (s *Strategy) Name() string {
	return s.name
}

// Authenticate implements Provider
func (s *Strategy) Authenticate(r *http.Request) (*State, error) {
	tokenString := extractToken(r)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	decoded := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, decoded, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods(s.methods))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	verdict, err := s.validator.Validate(r.Context(), decoded, r)
	if err != nil {
		return nil, fmt.Errorf("validating credentials: %w", err)
	}
	if !verdict.IsValid {
		return nil, ErrInvalidCredentials
	}

	credentials := verdict.Credentials
	if credentials == nil {
		credentials = decoded
	}

	s.logger.Debug("authentication successful", zap.String("strategy", s.name))

	return &State{
		IsAuthenticated: true,
		Strategy:        s.name,
		Credentials:     credentials,
		Token:           tokenString,
	}, nil
}

// extractToken looks at the Authorization header first (raw token or
// "Bearer TOKEN"), then the token query parameter, then the token cookie.
func extractToken(r *http.Request) string {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		if len(parts) == 1 {
			return header
		}
		return ""
	}
	if token := r.URL.Query().Get(tokenParam); token != "" {
		return token
	}
	if cookie, err := r.Cookie(tokenParam); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
