// Package entity contains the pure domain model for the orchestration
// engine: service descriptors, navigation states, prompt modes, and
// hibernation snapshots. Nothing here touches the rendering engine.
package entity

import "sort"

// ServiceID uniquely identifies an AI chat service (e.g. "chatgpt").
type ServiceID string

// WindowID is the opaque identifier of a window hosting one orchestrator
// instance. Windows carry only this id, never a pointer back into the
// controller that manages them.
type WindowID string

// DeliveryMode selects how a prompt reaches a service.
type DeliveryMode int

const (
	// DeliveryNavigationParameter submits the prompt by navigating to a URL
	// that carries it in a query parameter. The destination page handles
	// submission itself.
	DeliveryNavigationParameter DeliveryMode = iota
	// DeliveryDOMInjection submits the prompt by scripting the page's input
	// field and submit control.
	DeliveryDOMInjection
)

// String returns a human-readable representation of the delivery mode.
func (m DeliveryMode) String() string {
	switch m {
	case DeliveryNavigationParameter:
		return "navigation"
	case DeliveryDOMInjection:
		return "injection"
	default:
		return "unknown"
	}
}

// ServiceDescriptor describes one configured chat service. Descriptors are
// read-only input supplied by the settings layer.
type ServiceDescriptor struct {
	ID      ServiceID
	Name    string
	Mode    DeliveryMode
	BaseURL string
	Enabled bool
	// Order is ascending left-to-right and load-first.
	Order int
}

// Sorted returns all descriptors, enabled or not, sorted ascending by
// Order. The input slice is not modified.
func Sorted(descriptors []ServiceDescriptor) []ServiceDescriptor {
	out := make([]ServiceDescriptor, len(descriptors))
	copy(out, descriptors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// EnabledSorted returns the enabled descriptors sorted ascending by Order.
// The input slice is not modified.
func EnabledSorted(descriptors []ServiceDescriptor) []ServiceDescriptor {
	out := make([]ServiceDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Enabled {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
