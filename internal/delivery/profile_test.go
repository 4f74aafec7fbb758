package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

func TestProfileMode(t *testing.T) {
	nav := &Profile{ServiceID: "chatgpt", PromptParam: "q"}
	inj := &Profile{ServiceID: "claude"}

	assert.Equal(t, entity.DeliveryNavigationParameter, nav.Mode())
	assert.Equal(t, entity.DeliveryDOMInjection, inj.Mode())
}

func TestNavigationURL(t *testing.T) {
	p := &Profile{
		ServiceID:   "chatgpt",
		HomeURL:     "https://chatgpt.com",
		PromptParam: "q",
	}

	got, err := p.NavigationURL("what is the airspeed of an unladen swallow?")
	require.NoError(t, err)
	assert.Contains(t, got, "q=what+is+the+airspeed")

	_, err = (&Profile{ServiceID: "claude", HomeURL: "https://claude.ai"}).NavigationURL("x")
	assert.Error(t, err)
}

func TestNavigationURLEscapesText(t *testing.T) {
	p := &Profile{ServiceID: "perplexity", HomeURL: "https://www.perplexity.ai", PromptParam: "q"}

	got, err := p.NavigationURL("a&b=c #frag")
	require.NoError(t, err)
	assert.NotContains(t, got, "b=c")
	assert.NotContains(t, got, "#frag")
	assert.True(t, p.HasOneShotParam(got))
}

func TestHasOneShotParam(t *testing.T) {
	p := &Profile{ServiceID: "chatgpt", HomeURL: "https://chatgpt.com", PromptParam: "q"}

	assert.True(t, p.HasOneShotParam("https://chatgpt.com/?q=hello"))
	assert.False(t, p.HasOneShotParam("https://chatgpt.com/"))
	assert.False(t, p.HasOneShotParam("https://chatgpt.com/?model=auto"))

	inj := &Profile{ServiceID: "claude", HomeURL: "https://claude.ai"}
	assert.False(t, inj.HasOneShotParam("https://claude.ai/?q=hello"))
}

func TestThreadURLFallback(t *testing.T) {
	p := &Profile{ServiceID: "gemini", HomeURL: "https://gemini.google.com/app"}
	assert.Equal(t, "https://gemini.google.com/app", p.ThreadURL())

	p.NewThreadURL = "https://gemini.google.com/app/new"
	assert.Equal(t, "https://gemini.google.com/app/new", p.ThreadURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr string
	}{
		{
			name:    "missing id",
			profile: &Profile{HomeURL: "https://example.com"},
			wantErr: "missing service id",
		},
		{
			name:    "missing home url",
			profile: &Profile{ServiceID: "x"},
			wantErr: "missing home URL",
		},
		{
			name:    "bad url scheme",
			profile: &Profile{ServiceID: "x", HomeURL: "ftp://example.com"},
			wantErr: "invalid URL",
		},
		{
			name:    "injection without selectors",
			profile: &Profile{ServiceID: "x", HomeURL: "https://example.com"},
			wantErr: "needs input selectors",
		},
		{
			name: "valid injection profile",
			profile: &Profile{
				ServiceID:      "x",
				HomeURL:        "https://example.com",
				InputSelectors: []string{"textarea"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	for _, id := range []entity.ServiceID{"chatgpt", "claude", "gemini", "perplexity"} {
		p, ok := c.Lookup(id)
		require.True(t, ok, "missing profile for %s", id)
		assert.NoError(t, p.Validate())
	}
	_, ok := c.Lookup("copilot")
	assert.False(t, ok)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	a := &Profile{ServiceID: "x", HomeURL: "https://example.com", PromptParam: "q"}
	b := &Profile{ServiceID: "x", HomeURL: "https://example.org", PromptParam: "p"}

	_, err := NewCatalog(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
