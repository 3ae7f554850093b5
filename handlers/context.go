package handlers

import (
	"context"
	"encoding/json"
	"math"

	"github.com/upb/api-scaffold/auth"
	"github.com/upb/api-scaffold/internal/observability"
	"github.com/upb/api-scaffold/models"
	"go.uber.org/zap"
)

// BuildUserContext builds the UserContext for an authenticated request from
// its token credentials. Every user gets the AllowAll permission manager.
//
// Any payload that passed authentication yields a context: claims that do
// not convert fall back to their zero value and are logged raw on logger,
// which may be nil.
func BuildUserContext(ctx context.Context, logger observability.Logger) (*models.UserContext, error) {
	state, ok := auth.StateFromContext(ctx)
	if !ok || !state.IsAuthenticated {
		return nil, auth.ErrNotAuthenticated
	}

	rawID, hasID := state.Credentials["id"]
	id, ok := credentialID(rawID)
	if !ok && hasID && logger != nil {
		logger.Warn(ctx, "credential id not convertible, using 0", zap.Any("id", rawID))
	}

	rawName, hasName := state.Credentials["name"]
	name, ok := rawName.(string)
	if !ok && hasName && logger != nil {
		logger.Warn(ctx, "credential name is not a string, using empty", zap.Any("name", rawName))
	}

	return models.NewUserContext(models.User{ID: id, Name: name}, models.AllowAll{}), nil
}

// credentialID converts the integer forms a decoded JSON payload can carry.
// Anything else, including fractional or out of range numbers, is 0 and
// reported as not converted.
func credentialID(v interface{}) (int, bool) {
	switch id := v.(type) {
	case nil:
		return 0, true
	case float64:
		return floatID(id)
	case int:
		return id, true
	case int64:
		if id < math.MinInt || id > math.MaxInt {
			return 0, false
		}
		return int(id), true
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return credentialID(n)
		}
		f, err := id.Float64()
		if err != nil {
			return 0, false
		}
		return floatID(f)
	default:
		return 0, false
	}
}

func floatID(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt) rounds up to 2^63 on 64-bit, which is out of range.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}
