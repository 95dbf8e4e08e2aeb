package movebank

import (
	"net/url"
	"strings"
)

// Param is a single query parameter. Order matters: the license handshake must
// repeat the original parameters in their original order before the appended
// acceptance hash.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered parameter list.
type Params []Param

// Encode renders the list as a query string, preserving order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(param.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(param.Value))
	}
	return b.String()
}

// Get returns the first value for key, empty when absent.
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}
	return ""
}

// With returns a copy with an extra parameter appended.
func (p Params) With(key, value string) Params {
	out := make(Params, 0, len(p)+1)
	out = append(out, p...)
	return append(out, Param{Key: key, Value: value})
}
