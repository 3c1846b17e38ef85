package ovpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	apiVersion = "3.3.0"
	clientTag  = "ovp-go"
)

// Operation is one logical call inside a multirequest: a service name, an
// action name and a body parameter map. Parameter values may be plain JSON
// values or ForwardRef placeholders.
type Operation struct {
	Service string
	Action  string
	Params  map[string]any
}

func NewOperation(service, action string) *Operation {
	return &Operation{
		Service: service,
		Action:  action,
		Params:  map[string]any{},
	}
}

// Set adds a body parameter and returns the operation for chaining.
func (o *Operation) Set(key string, value any) *Operation {
	o.Params[key] = value
	return o
}

func (o *Operation) body() map[string]any {
	body := make(map[string]any, len(o.Params)+2)
	for k, v := range o.Params {
		body[k] = v
	}
	body["service"] = o.Service
	body["action"] = o.Action
	return body
}

// MultiRequest is an ordered batch of operations executed by the server in a
// single round trip. Later operations may reference earlier results via
// ForwardRef values.
type MultiRequest struct {
	baseURL string
	ops     []*Operation
}

// NewMultiRequest creates an empty batch against the given API base URL
// (typically "<server>/api_v3").
func NewMultiRequest(apiBaseURL string) *MultiRequest {
	return &MultiRequest{baseURL: apiBaseURL}
}

func (m *MultiRequest) Add(ops ...*Operation) *MultiRequest {
	m.ops = append(m.ops, ops...)
	return m
}

func (m *MultiRequest) Len() int { return len(m.ops) }

func (m *MultiRequest) Operations() []*Operation { return m.ops }

// URL returns the endpoint the batch must be posted to.
func (m *MultiRequest) URL() string {
	return m.baseURL + "/service/multirequest"
}

// Validate enforces the forward-reference invariant: the operation at batch
// position i may only reference results at positions < i.
func (m *MultiRequest) Validate() error {
	if len(m.ops) == 0 {
		return fmt.Errorf("multirequest: empty batch")
	}
	for i, op := range m.ops {
		pos := i + 1
		if err := validateRefs(op.Params, pos); err != nil {
			return fmt.Errorf("multirequest: operation %d (%s.%s): %w", pos, op.Service, op.Action, err)
		}
	}
	return nil
}

func validateRefs(value any, pos int) error {
	switch v := value.(type) {
	case ForwardRef:
		if v.Index < 1 || v.Index >= pos {
			return fmt.Errorf("forward reference %s not resolvable at position %d", v, pos)
		}
	case map[string]any:
		for _, nested := range v {
			if err := validateRefs(nested, pos); err != nil {
				return err
			}
		}
	case []any:
		for _, nested := range v {
			if err := validateRefs(nested, pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarshalJSON writes the position-keyed wire form: common parameters first,
// then each operation body under its 1-based position. Operation order is
// significant, so the object is built by hand rather than through a map.
func (m *MultiRequest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"apiVersion":` + strconv.Quote(apiVersion))
	buf.WriteString(`,"format":1`)
	buf.WriteString(`,"clientTag":` + strconv.Quote(clientTag))
	for i, op := range m.ops {
		body, err := json.Marshal(op.body())
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,` + strconv.Quote(strconv.Itoa(i+1)) + `:`)
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
