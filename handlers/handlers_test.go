package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/internal/shared"
	"github.com/upb/api-scaffold/models"
	"github.com/upb/api-scaffold/reply"
	"github.com/upb/api-scaffold/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Sign(claims auth.Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func authenticatedRequest(credentials jwt.MapClaims) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test/42", nil)
	ctx := auth.WithState(req.Context(), &auth.State{
		IsAuthenticated: true,
		Strategy:        "jwt",
		Credentials:     credentials,
		Token:           "raw-token",
	})
	ctx = shared.WithRequestID(ctx, "req-42")
	return req.WithContext(ctx)
}

func TestHandleLogin(t *testing.T) {
	t.Run("returns the signed token as text", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		issuer.On("Sign", auth.Claims{ID: 1, Name: "test-user"}).Return("signed.token.value", nil)

		handler := NewAuthHandler(issuer, zap.NewNop())
		res := handler.HandleLogin(httptest.NewRequest(http.MethodGet, "/login", nil))

		resp, ok := res.Ok()
		require.True(t, ok)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "signed.token.value", string(resp.Body))
		issuer.AssertExpectations(t)
	})

	t.Run("signing failure is a 500", func(t *testing.T) {
		issuer := new(MockTokenIssuer)
		issuer.On("Sign", mock.Anything).Return("", errors.New("no key"))

		handler := NewAuthHandler(issuer, nil)
		res := handler.HandleLogin(httptest.NewRequest(http.MethodGet, "/login", nil))

		detail, isErr := res.Err()
		require.True(t, isErr)
		assert.Equal(t, http.StatusInternalServerError, detail.Status)
		assert.Equal(t, utils.InternalErrorMessage, detail.Message)
	})

	t.Run("real issuer token decodes to the test user", func(t *testing.T) {
		issuer, err := auth.NewIssuer("test-key", "HS512")
		require.NoError(t, err)

		resp, ok := NewAuthHandler(issuer, nil).HandleLogin(httptest.NewRequest(http.MethodGet, "/login", nil)).Ok()
		require.True(t, ok)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(string(resp.Body), claims, func(*jwt.Token) (interface{}, error) {
			return []byte("test-key"), nil
		}, jwt.WithValidMethods([]string{"HS512"}))
		require.NoError(t, err)
		assert.Equal(t, float64(1), claims["id"])
		assert.Equal(t, "test-user", claims["name"])
	})
}

func TestHandleRoot(t *testing.T) {
	resp, ok := HandleRoot(httptest.NewRequest(http.MethodGet, "/", nil)).Ok()

	require.True(t, ok)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "1337 test", string(resp.Body))
}

func TestBuildUserContext(t *testing.T) {
	tests := []struct {
		name        string
		credentials jwt.MapClaims
		want        models.User
		wantWarn    string
	}{
		{
			name:        "decoded token payload",
			credentials: jwt.MapClaims{"id": float64(1), "name": "test-user"},
			want:        models.User{ID: 1, Name: "test-user"},
		},
		{
			name:        "json number id",
			credentials: jwt.MapClaims{"id": json.Number("7"), "name": "seven"},
			want:        models.User{ID: 7, Name: "seven"},
		},
		{
			name:        "empty payload",
			credentials: jwt.MapClaims{},
			want:        models.User{},
		},
		{
			name:        "negative integral float",
			credentials: jwt.MapClaims{"id": float64(-3), "name": "neg"},
			want:        models.User{ID: -3, Name: "neg"},
		},
		{
			name:        "fractional id",
			credentials: jwt.MapClaims{"id": 1.5, "name": "half"},
			want:        models.User{ID: 0, Name: "half"},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "string id",
			credentials: jwt.MapClaims{"id": "1", "name": "str"},
			want:        models.User{ID: 0, Name: "str"},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "out of range float",
			credentials: jwt.MapClaims{"id": 1e300},
			want:        models.User{ID: 0},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "two to the sixty third",
			credentials: jwt.MapClaims{"id": float64(1 << 63)},
			want:        models.User{ID: 0},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "fractional json number",
			credentials: jwt.MapClaims{"id": json.Number("2.5")},
			want:        models.User{ID: 0},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "object id",
			credentials: jwt.MapClaims{"id": map[string]interface{}{"n": 1}},
			want:        models.User{ID: 0},
			wantWarn:    "credential id not convertible, using 0",
		},
		{
			name:        "numeric name",
			credentials: jwt.MapClaims{"id": float64(2), "name": 42.0},
			want:        models.User{ID: 2},
			wantWarn:    "credential name is not a string, using empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger := observability.NewContextLogger(zap.New(core))

			userCtx, err := BuildUserContext(authenticatedRequest(tt.credentials).Context(), logger)

			require.NoError(t, err)
			assert.Equal(t, tt.want, userCtx.User)
			assert.True(t, userCtx.PermissionManager.Can("delete", "anything"))
			assert.Equal(t, []string{}, userCtx.PermissionManager.Accessible("games"))

			if tt.wantWarn == "" {
				assert.Zero(t, logs.Len())
				return
			}
			require.Equal(t, 1, logs.FilterMessage(tt.wantWarn).Len())
			assert.Equal(t, zapcore.WarnLevel, logs.FilterMessage(tt.wantWarn).All()[0].Level)
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		userCtx, err := BuildUserContext(authenticatedRequest(jwt.MapClaims{"id": "x"}).Context(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, userCtx.User.ID)
	})

	t.Run("without auth state", func(t *testing.T) {
		_, err := BuildUserContext(context.Background(), nil)
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})
}

func TestHandleTest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := NewTestHandler(observability.NewContextLogger(zap.New(core)))

	res := handler.HandleTest(authenticatedRequest(jwt.MapClaims{"id": float64(1), "name": "test-user"}))

	detail, isErr := res.Err()
	require.True(t, isErr)
	assert.Equal(t, http.StatusInternalServerError, detail.Status)
	assert.Equal(t, utils.InternalErrorMessage, detail.Message)
	assert.ErrorIs(t, detail.Cause, errTestRoute)

	require.Equal(t, 1, logs.FilterMessage("context").Len())
	ctxEntry := logs.FilterMessage("context").All()[0]
	assert.Equal(t, "req-42", ctxEntry.ContextMap()["request_id"])
	assert.Contains(t, ctxEntry.ContextMap(), "user_context")

	require.Equal(t, 1, logs.FilterMessage("auth").Len())
	authFields := logs.FilterMessage("auth").All()[0].ContextMap()["auth"].(map[string]interface{})
	assert.Equal(t, true, authFields["is_authenticated"])
	assert.Equal(t, "jwt", authFields["strategy"])
	assert.NotContains(t, authFields, "token")
}

func TestHandleTest_UnconvertibleCredentials(t *testing.T) {
	payloads := []jwt.MapClaims{
		{"id": "1", "name": "test-user"},
		{"id": 1.5},
		{"id": 1e300, "name": []interface{}{"a"}},
		{},
	}

	for _, credentials := range payloads {
		core, logs := observer.New(zapcore.DebugLevel)
		handler := NewTestHandler(observability.NewContextLogger(zap.New(core)))

		detail, isErr := handler.HandleTest(authenticatedRequest(credentials)).Err()
		require.True(t, isErr)
		assert.ErrorIs(t, detail.Cause, errTestRoute, "payload %v", credentials)

		assert.Equal(t, 1, logs.FilterMessage("context").Len(), "payload %v", credentials)
		assert.Equal(t, 1, logs.FilterMessage("auth").Len(), "payload %v", credentials)
	}
}

func TestLogErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		result  reply.Result
		wantLog bool
	}{
		{"ok result", reply.Text("1337 test"), false},
		{"not found", reply.NotFound(shared.ErrNotFound), true},
		{"bad request", reply.BadRequest("Invalid request params input", map[string]interface{}{"guid": "guid must be a number"}, nil), true},
		{"internal", reply.Fail(errors.New("test error")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			hook := LogErrorResponses(observability.NewContextLogger(zap.New(core)))
			req := httptest.NewRequest(http.MethodGet, "/test/42", nil)

			got := hook(req, tt.result)

			assert.Equal(t, tt.result, got)

			before := httptest.NewRecorder()
			after := httptest.NewRecorder()
			require.NoError(t, tt.result.Write(before))
			require.NoError(t, got.Write(after))
			assert.Equal(t, before.Code, after.Code)
			assert.Equal(t, before.Body.String(), after.Body.String())

			if tt.wantLog {
				require.Equal(t, 1, logs.Len())
				entry := logs.All()[0]
				assert.Equal(t, zapcore.WarnLevel, entry.Level)
				assert.Equal(t, int64(tt.result.Status()), entry.ContextMap()["status"])
			} else {
				assert.Equal(t, 0, logs.Len())
			}
		})
	}
}
