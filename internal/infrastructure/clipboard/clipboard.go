// Package clipboard copies text to the system clipboard through wl-copy
// (Wayland) with an xclip (X11) fallback.
package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
)

// Clipboard shells out to the platform clipboard tools.
type Clipboard struct{}

var _ port.Clipboard = (*Clipboard)(nil)

// New returns a system clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// Copy places text on the system clipboard. Tries wl-copy first, then
// xclip.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("cannot copy empty text to clipboard")
	}

	if err := runCopyTool(ctx, text, "wl-copy"); err == nil {
		return nil
	}
	if err := runCopyTool(ctx, text, "xclip", "-selection", "clipboard"); err == nil {
		return nil
	}
	return fmt.Errorf("clipboard copy failed: neither wl-copy nor xclip available")
}

// Available reports whether a clipboard tool exists on this system.
func (c *Clipboard) Available() bool {
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return true
	}
	if _, err := exec.LookPath("xclip"); err == nil {
		return true
	}
	return false
}

func runCopyTool(ctx context.Context, text, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
