// Package session tracks the current identity and tells subscribers when
// it changes. Server credentials are persisted to ~/.palette/session.json.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/existflow/palette/internal/model"
)

// Credentials is what a successful server login leaves behind
type Credentials struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
}

// Provider holds the current identity
type Provider struct {
	path string // empty for in-memory providers

	mu    sync.Mutex
	creds Credentials
	ident *model.Identity
	subs  map[int]func(model.Identity, bool)
	next  int
}

// DefaultPath returns ~/.palette/session.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".palette", "session.json"), nil
}

// New returns an in-memory provider with no identity
func New() *Provider {
	return &Provider{subs: map[int]func(model.Identity, bool){}}
}

// Open loads persisted credentials from path. A missing file yields a
// provider with no identity.
func Open(path string) (*Provider, error) {
	p := New()
	p.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if err := json.Unmarshal(data, &p.creds); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if p.creds.Token != "" && p.creds.UserID != "" {
		p.ident = &model.Identity{ID: p.creds.UserID, Name: p.creds.Username}
	}
	return p, nil
}

// Current returns the identity, if any
func (p *Provider) Current() (model.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ident == nil {
		return model.Identity{}, false
	}
	return *p.ident, true
}

// Credentials returns the stored server credentials
func (p *Provider) Credentials() Credentials {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creds
}

// Subscribe registers fn for identity changes and returns its cancel func
func (p *Provider) Subscribe(fn func(ident model.Identity, ok bool)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.next
	p.next++
	p.subs[key] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, key)
	}
}

// SignIn stores server credentials and makes their user the identity
func (p *Provider) SignIn(creds Credentials) error {
	if creds.Token == "" || creds.UserID == "" {
		return fmt.Errorf("sign in: token and user id are required")
	}

	p.mu.Lock()
	if creds.ServerURL == "" {
		creds.ServerURL = p.creds.ServerURL
	}
	p.creds = creds
	p.ident = &model.Identity{ID: creds.UserID, Name: creds.Username}
	err := p.saveLocked()
	p.mu.Unlock()

	p.publish()
	return err
}

// SignOut forgets the token and the identity
func (p *Provider) SignOut() error {
	p.mu.Lock()
	p.creds.Token = ""
	p.creds.UserID = ""
	p.creds.Username = ""
	p.ident = nil
	err := p.saveLocked()
	p.mu.Unlock()

	p.publish()
	return err
}

// Assume sets an identity without credentials, as used by the local backend
func (p *Provider) Assume(ident model.Identity) {
	p.mu.Lock()
	if ident.ID == "" {
		p.ident = nil
	} else {
		p.ident = &ident
	}
	p.mu.Unlock()

	p.publish()
}

// SetServer changes the server URL and persists it
func (p *Provider) SetServer(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.creds.ServerURL = url
	return p.saveLocked()
}

// publish calls subscribers in registration order, outside the lock
func (p *Provider) publish() {
	p.mu.Lock()
	var ident model.Identity
	ok := p.ident != nil
	if ok {
		ident = *p.ident
	}
	keys := make([]int, 0, len(p.subs))
	for k := range p.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	fns := make([]func(model.Identity, bool), 0, len(keys))
	for _, k := range keys {
		fns = append(fns, p.subs[k])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(ident, ok)
	}
}

func (p *Provider) saveLocked() error {
	if p.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p.creds, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(p.path, data, 0600)
}
