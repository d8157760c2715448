package docstore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"localstore/internal/pkg/errs"
)

// Fault makes Memory fail matching calls. Method is "GET", "PUT", "PATCH" or
// "DELETE"; an empty Method matches every verb. A Path ending in "*" matches
// by prefix. Times limits how often the fault fires; zero means always.
type Fault struct {
	Method string
	Path   string
	Err    error
	Times  int
}

func (f *Fault) matches(method, path string) bool {
	if f.Method != "" && f.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(f.Path, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return f.Path == path
}

// Call is a request Memory served or refused.
type Call struct {
	Method string
	Path   string
}

func (c Call) String() string {
	return c.Method + " " + c.Path
}

// Memory is an in-process document store with the same semantics as the
// remote one: absent values read as not found, writing null or an empty
// object removes the value, and parents left empty disappear.
type Memory struct {
	mu     sync.Mutex
	root   map[string]any
	faults []*Fault
	calls  []Call
}

func NewMemory() *Memory {
	return &Memory{root: make(map[string]any)}
}

// Load replaces the whole tree with the JSON document data.
func (m *Memory) Load(data []byte) error {
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	tree, ok := v.(map[string]any)
	if !ok && v != nil {
		return errs.NewValueIsInvalidErrorWithCause("document", fmt.Errorf("root must be an object"))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = make(map[string]any)
	for k, child := range tree {
		m.root[k] = child
	}
	prune(m.root)
	return nil
}

// Inject adds a fault.
func (m *Memory) Inject(f Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = append(m.faults, &f)
}

// ClearFaults removes every fault.
func (m *Memory) ClearFaults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = nil
}

// Calls returns every call made so far, in order.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// ResetCalls forgets the recorded calls.
func (m *Memory) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Exists reports whether a value is stored at path.
func (m *Memory) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lookup(m.root, segments(path)) != nil
}

// Snapshot returns the JSON encoding of the value at path, "null" when absent.
func (m *Memory) Snapshot(path string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, _ := json.Marshal(lookup(m.root, segments(path)))
	return data
}

func (m *Memory) Get(ctx context.Context, path string, dst any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodGet, path); err != nil {
		return err
	}
	return m.read(path, dst)
}

func (m *Memory) GetETag(ctx context.Context, path string, dst any) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodGet, path); err != nil {
		return "", false, err
	}
	tag := etagOf(lookup(m.root, segments(path)))
	err := m.read(path, dst)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return tag, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return tag, true, nil
}

func (m *Memory) Put(ctx context.Context, path string, body any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodPut, path); err != nil {
		return err
	}
	return m.write(path, body)
}

func (m *Memory) PutIfMatch(ctx context.Context, path, etag string, body any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodPut, path); err != nil {
		return err
	}
	if etagOf(lookup(m.root, segments(path))) != etag {
		return errs.NewRemoteCallError(http.MethodPut, path, http.StatusPreconditionFailed)
	}
	return m.write(path, body)
}

func (m *Memory) Patch(ctx context.Context, path string, fields any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodPatch, path); err != nil {
		return err
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return errs.NewRemoteCallErrorWithCause(http.MethodPatch, path, fmt.Errorf("patch body must be an object"))
	}

	base := segments(path)
	for k, child := range obj {
		setValue(m.root, append(append([]string(nil), base...), segments(k)...), child)
	}
	prune(m.root)
	return nil
}

func (m *Memory) Delete(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(ctx, http.MethodDelete, path); err != nil {
		return err
	}
	setValue(m.root, segments(path), nil)
	prune(m.root)
	return nil
}

// enter records the call and fires a matching fault. Callers hold m.mu.
func (m *Memory) enter(ctx context.Context, method, path string) error {
	m.calls = append(m.calls, Call{Method: method, Path: path})
	if err := ctx.Err(); err != nil {
		return errs.NewRemoteCallErrorWithCause(method, path, err)
	}
	for i, f := range m.faults {
		if !f.matches(method, path) {
			continue
		}
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				m.faults = append(m.faults[:i], m.faults[i+1:]...)
			}
		}
		if f.Err != nil {
			return f.Err
		}
		return errs.NewRemoteCallError(method, path, http.StatusServiceUnavailable)
	}
	return nil
}

func (m *Memory) read(path string, dst any) error {
	v := lookup(m.root, segments(path))
	if v == nil {
		return errs.NewObjectNotFoundError("path", path)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func (m *Memory) write(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	v, err := decodeValue(data)
	if err != nil {
		return err
	}
	setValue(m.root, segments(path), v)
	prune(m.root)
	return nil
}

func decodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func segments(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lookup(node map[string]any, segs []string) any {
	var cur any = node
	for _, s := range segs {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = obj[s]
		if !ok {
			return nil
		}
	}
	if obj, ok := cur.(map[string]any); ok && len(obj) == 0 {
		return nil
	}
	return cur
}

func setValue(root map[string]any, segs []string, v any) {
	if len(segs) == 0 {
		clear(root)
		if obj, ok := v.(map[string]any); ok {
			for k, child := range obj {
				root[k] = child
			}
		}
		return
	}
	node := root
	for _, s := range segs[:len(segs)-1] {
		next, ok := node[s].(map[string]any)
		if !ok {
			if v == nil {
				return
			}
			next = make(map[string]any)
			node[s] = next
		}
		node = next
	}
	last := segs[len(segs)-1]
	if v == nil {
		delete(node, last)
		return
	}
	node[last] = v
}

// prune drops null members and objects left without members.
func prune(node map[string]any) bool {
	for k, v := range node {
		switch child := v.(type) {
		case nil:
			delete(node, k)
		case map[string]any:
			if prune(child) {
				delete(node, k)
			}
		}
	}
	return len(node) == 0
}

func etagOf(v any) string {
	data, _ := json.Marshal(v)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
