package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// adapter translates placeholder syntax and coerces parameter values for one
// driver. This is the only parameterized path in the module; DDL rendering in
// migrate/sqlgen never goes through it and the two must stay separate.
type adapter struct {
	driver string
}

// rewrite converts `?` placeholders to the driver's native style. Only
// postgres needs translation ($1, $2, ...); question marks inside
// single-quoted literals are left alone.
func (a adapter) rewrite(query string) string {
	if a.driver != "postgres" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inString = !inString
			b.WriteByte(ch)
		case ch == '?' && !inString:
			n++
			fmt.Fprintf(&b, "$%d", n)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// coerce normalizes parameter values the native drivers disagree on:
// timestamps become driver-appropriate strings, and composite values (maps,
// slices other than []byte) become JSON text. lib/pq has no native object
// binding either, so postgres also receives JSON text, which json/jsonb
// columns accept.
func (a adapter) coerce(params []any) ([]any, error) {
	if len(params) == 0 {
		return params, nil
	}
	out := make([]any, len(params))
	for i, p := range params {
		v, err := a.coerceValue(p)
		if err != nil {
			return nil, fmt.Errorf("engine: parameter %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a adapter) coerceValue(p any) (any, error) {
	switch v := p.(type) {
	case nil, string, []byte, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		if b, ok := p.(bool); ok && a.driver == "sqlite" {
			if b {
				return 1, nil
			}
			return 0, nil
		}
		return v, nil

	case time.Time:
		if a.driver == "mariadb" {
			return v.UTC().Format("2006-01-02 15:04:05"), nil
		}
		return v.UTC().Format(time.RFC3339), nil

	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return a.coerceValue(*v)

	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot encode %T as JSON: %w", p, err)
		}
		return string(encoded), nil
	}
}
