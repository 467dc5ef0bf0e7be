// Package parameters handles generic configuration Params, a map[string]string that the
// user can set with a string like "bfs,max_nodes=100000,global".
package parameters

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/janpfeifer/snakeGo/internal/generics"
	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string.
// Empty parts (e.g. trailing commas) are ignored, and keys and values are trimmed.
// See GetParamOr and PopParamOr to parse values from this map.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Only the first '=' splits, values may contain '='.
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// ValueTypes that can be parsed from Params.
type ValueTypes interface {
	bool | int | float64 | string | time.Duration
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T ValueTypes](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns the defaultValue
// if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T ValueTypes](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		if value == "" {
			return defaultValue, nil
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		parsed = v
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		parsed = v
	case time.Duration:
		if value == "" {
			return defaultValue, nil
		}
		v, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to a duration", key, value)
		}
		parsed = v
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1": // Empty value is considered "true"
			parsed = true
		case "false", "0":
			parsed = false
		default:
			return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
		}
	}
	return parsed.(T), nil
}

// CheckAllConsumed returns an error listing the keys left in params, if any. It is meant to be called
// after all the known parameters were popped, to catch typos in the configuration.
func CheckAllConsumed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return errors.Errorf("unknown configuration parameter(s): %s",
		strings.Join(generics.SliceMap(keys, strconv.Quote), ", "))
}

// String returns the canonical configuration string of params: keys sorted, "key=value" for
// keys with values, and just "key" otherwise. Equivalent configuration strings have the same
// canonical form.
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if p[key] == "" {
			parts = append(parts, key)
		} else {
			parts = append(parts, key+"="+p[key])
		}
	}
	return strings.Join(parts, ",")
}
