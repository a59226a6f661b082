package problem

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Member names defined by RFC 7807 and the members this package adds. They
// can never be set through extension parameters.
const (
	memberType       = "type"
	memberTitle      = "title"
	memberStatus     = "status"
	memberDetail     = "detail"
	memberInstance   = "instance"
	memberMessage    = "message"
	memberStackTrace = "stackTrace"
	memberViolations = "violations"
)

var reserved = map[string]struct{}{
	memberType:       {},
	memberTitle:      {},
	memberStatus:     {},
	memberDetail:     {},
	memberInstance:   {},
	memberMessage:    {},
	memberStackTrace: {},
	memberViolations: {},
}

// IsReserved reports whether key collides with a member this package writes itself.
func IsReserved(key string) bool {
	_, ok := reserved[key]
	return ok
}

// object writes a flat JSON object member by member, keeping insertion order.
type object struct {
	buf bytes.Buffer
	n   int
	err error
}

func (o *object) add(key string, v any) {
	if o.err != nil {
		return
	}
	val, err := json.Marshal(v)
	if err != nil {
		o.err = err
		return
	}
	k, _ := json.Marshal(key)

	if o.n == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(val)
	o.n++
}

func (o *object) bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.n == 0 {
		return []byte("{}"), nil
	}
	o.buf.WriteByte('}')
	return o.buf.Bytes(), nil
}

// addProblem writes the RFC 7807 members of p followed by its extension
// parameters in key order. Absent members are skipped, never written empty.
func (o *object) addProblem(p Problem) {
	if t := p.Type(); t != "" && t != DefaultType {
		o.add(memberType, t)
	}
	if t := p.Title(); t != "" {
		o.add(memberTitle, t)
	}
	if s := p.Status(); !s.IsZero() {
		o.add(memberStatus, s)
	}
	if d := p.Detail(); d != "" {
		o.add(memberDetail, d)
	}
	if i := p.Instance(); i != "" {
		o.add(memberInstance, i)
	}

	params := p.Parameters()
	keys := make([]string, 0, len(params))
	for k := range params {
		if !IsReserved(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		o.add(k, params[k])
	}
}

func copyParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
