package delivery

import "github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"

// DefaultProfiles returns the built-in delivery recipes for the bundled
// services. Selector lists are ordered most-specific first; frontends churn,
// so each carries fallbacks.
func DefaultProfiles() []*Profile {
	return []*Profile{
		{
			ServiceID:    "chatgpt",
			Version:      3,
			HomeURL:      "https://chatgpt.com",
			NewThreadURL: "https://chatgpt.com",
			PromptParam:  "q",
			// Selectors are only used for reply-to-all, where embedding the
			// prompt in a URL would start a fresh conversation.
			InputSelectors: []string{
				"div#prompt-textarea[contenteditable='true']",
				"textarea[data-testid='prompt-textarea']",
			},
			SubmitSelectors: []string{
				"button[data-testid='send-button']",
				"button[aria-label='Send prompt']",
			},
			Events: []string{"input"},
		},
		{
			ServiceID:    "perplexity",
			Version:      2,
			HomeURL:      "https://www.perplexity.ai",
			NewThreadURL: "https://www.perplexity.ai",
			PromptParam:  "q",
			InputSelectors: []string{
				"textarea[placeholder*='follow']",
				"textarea",
			},
			SubmitSelectors: []string{
				"button[aria-label='Submit']",
			},
			Events: []string{"input"},
		},
		{
			ServiceID:    "claude",
			Version:      4,
			HomeURL:      "https://claude.ai",
			NewThreadURL: "https://claude.ai/new",
			InputSelectors: []string{
				"div[contenteditable='true'].ProseMirror",
				"div[contenteditable='true']",
			},
			SubmitSelectors: []string{
				"button[aria-label='Send message']",
				"button[aria-label='Send Message']",
			},
			Events: []string{"input"},
		},
		{
			ServiceID:    "gemini",
			Version:      2,
			HomeURL:      "https://gemini.google.com/app",
			NewThreadURL: "https://gemini.google.com/app",
			InputSelectors: []string{
				"rich-textarea div[contenteditable='true']",
				"div[contenteditable='true']",
			},
			SubmitSelectors: []string{
				"button[aria-label='Send message']",
				"button.send-button",
			},
			Events:          []string{"input"},
			SkipFocusEvents: true,
		},
	}
}

// DefaultCatalog returns a validated catalog of the built-in profiles.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultProfiles()...)
}

// DefaultDescriptors returns service descriptors matching the built-in
// profiles, in default display order.
func DefaultDescriptors() []entity.ServiceDescriptor {
	return []entity.ServiceDescriptor{
		{ID: "chatgpt", Name: "ChatGPT", Mode: entity.DeliveryNavigationParameter, BaseURL: "https://chatgpt.com", Enabled: true, Order: 0},
		{ID: "claude", Name: "Claude", Mode: entity.DeliveryDOMInjection, BaseURL: "https://claude.ai", Enabled: true, Order: 1},
		{ID: "gemini", Name: "Gemini", Mode: entity.DeliveryDOMInjection, BaseURL: "https://gemini.google.com/app", Enabled: true, Order: 2},
		{ID: "perplexity", Name: "Perplexity", Mode: entity.DeliveryNavigationParameter, BaseURL: "https://www.perplexity.ai", Enabled: true, Order: 3},
	}
}
