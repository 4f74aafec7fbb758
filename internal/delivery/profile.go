// Package delivery describes how prompts reach each AI service: either as a
// URL query parameter consumed on page load, or as a script injected into
// the loaded page that fills the composer and submits.
package delivery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/grafana/sobek"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// Profile captures the per-service delivery recipe. Profiles are versioned
// because service frontends change selectors without notice.
type Profile struct {
	ServiceID entity.ServiceID
	Version   int

	// HomeURL is the service landing page loaded at startup.
	HomeURL string
	// NewThreadURL is loaded to begin a fresh conversation. Falls back to
	// HomeURL when empty.
	NewThreadURL string

	// PromptParam is the query parameter carrying prompt text for
	// navigation-parameter delivery. Empty for DOM-injection services.
	PromptParam string

	// InputSelectors are candidate CSS selectors for the composer input,
	// tried in order.
	InputSelectors []string
	// SubmitSelectors are candidate CSS selectors for the submit button,
	// tried in order. When none match, a synthetic Enter keydown is
	// dispatched on the input instead.
	SubmitSelectors []string

	// Events to dispatch after setting the input value so framework state
	// observes the change.
	Events []string
	// SkipFocusEvents suppresses focus/blur dispatch for services whose
	// composer misbehaves when focused programmatically.
	SkipFocusEvents bool
}

// Mode returns the delivery mode implied by the profile.
func (p *Profile) Mode() entity.DeliveryMode {
	if p.PromptParam != "" {
		return entity.DeliveryNavigationParameter
	}
	return entity.DeliveryDOMInjection
}

// ThreadURL returns the URL for starting a new conversation.
func (p *Profile) ThreadURL() string {
	if p.NewThreadURL != "" {
		return p.NewThreadURL
	}
	return p.HomeURL
}

// NavigationURL builds the new-thread URL with text embedded as the
// service's prompt query parameter. Only valid for navigation-parameter
// profiles.
func (p *Profile) NavigationURL(text string) (string, error) {
	if p.PromptParam == "" {
		return "", fmt.Errorf("service %s does not accept navigation parameters", p.ServiceID)
	}
	u, err := url.Parse(p.ThreadURL())
	if err != nil {
		return "", fmt.Errorf("parse thread URL: %w", err)
	}
	q := u.Query()
	q.Set(p.PromptParam, text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// HasOneShotParam reports whether raw carries this profile's prompt query
// parameter. Such URLs are one-shot: the parameter is consumed on load and
// the URL must never be replayed.
func (p *Profile) HasOneShotParam(raw string) bool {
	if p.PromptParam == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Query().Has(p.PromptParam)
}

// Validate checks the profile for internal consistency and, for
// DOM-injection profiles, compiles the injection script to catch selector
// lists that would generate invalid JavaScript.
func (p *Profile) Validate() error {
	if p.ServiceID == "" {
		return fmt.Errorf("profile missing service id")
	}
	if p.HomeURL == "" {
		return fmt.Errorf("profile %s: missing home URL", p.ServiceID)
	}
	for _, raw := range []string{p.HomeURL, p.NewThreadURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || !strings.HasPrefix(u.Scheme, "http") {
			return fmt.Errorf("profile %s: invalid URL %q", p.ServiceID, raw)
		}
	}
	if p.Mode() == entity.DeliveryDOMInjection {
		if len(p.InputSelectors) == 0 {
			return fmt.Errorf("profile %s: injection profile needs input selectors", p.ServiceID)
		}
		script, err := InjectionScript(p, "probe")
		if err != nil {
			return fmt.Errorf("profile %s: build script: %w", p.ServiceID, err)
		}
		if _, err := sobek.Compile(string(p.ServiceID)+".js", script, true); err != nil {
			return fmt.Errorf("profile %s: injection script does not compile: %w", p.ServiceID, err)
		}
	}
	return nil
}

// Catalog maps service IDs to their delivery profiles.
type Catalog struct {
	profiles map[entity.ServiceID]*Profile
}

// NewCatalog builds a catalog from profiles, validating each.
func NewCatalog(profiles ...*Profile) (*Catalog, error) {
	c := &Catalog{profiles: make(map[entity.ServiceID]*Profile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.profiles[p.ServiceID]; dup {
			return nil, fmt.Errorf("duplicate profile for %s", p.ServiceID)
		}
		c.profiles[p.ServiceID] = p
	}
	return c, nil
}

// Lookup returns the profile for id.
func (c *Catalog) Lookup(id entity.ServiceID) (*Profile, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

// IDs returns all known service IDs in unspecified order.
func (c *Catalog) IDs() []entity.ServiceID {
	ids := make([]entity.ServiceID, 0, len(c.profiles))
	for id := range c.profiles {
		ids = append(ids, id)
	}
	return ids
}
