package gateway

import (
	"encoding/json"

	"github.com/spf13/cast"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

// normalizeList accepts a bare array or an object wrapping the array under
// envelope. Anything else becomes an empty list so a surprising server
// shape never breaks rendering.
func normalizeList[T any](raw json.RawMessage, envelope string, log *logger.Logger) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}

	if err := json.Unmarshal(raw, &out); err == nil {
		if out == nil {
			return []T{}
		}
		return out
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if inner, ok := wrapped[envelope]; ok {
			var list []T
			if err := json.Unmarshal(inner, &list); err == nil && list != nil {
				return list
			}
		}
	}

	log.Warnf("gateway: unexpected %s payload shape, using empty list", envelope)
	return []T{}
}

// normalizeStats fills every counter, mapping legacy field names.
func normalizeStats(raw json.RawMessage) domain.OverviewStats {
	var fields map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &fields)
	}

	pick := func(keys ...string) int {
		for _, k := range keys {
			if v, ok := fields[k]; ok && v != nil {
				return cast.ToInt(v)
			}
		}
		return 0
	}

	return domain.OverviewStats{
		TotalRequests: pick("totalRequests"),
		Submitted:     pick("submitted", "pendingRequests"),
		InProgress:    pick("inProgress"),
		Completed:     pick("completed", "completedRequests"),
	}
}

func decodeObject[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &RequestError{Status: 200, Message: MsgNetworkNotOK}
	}
	return &out, nil
}

func messageOf(raw json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	return body.Message
}
