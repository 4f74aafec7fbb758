package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/infrastructure/clipboard"
)

const doctorProbeTimeout = 10 * time.Second

var doctorSkipNetwork bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check runtime requirements and diagnose issues",
	Long: `Doctor verifies what the graphical window needs:
- the WebKitGTK and GTK development libraries
- a clipboard tool (wl-copy or xclip)
- a writable prompt-history database
- reachability of every enabled service

Use --offline to skip the network probes.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorSkipNetwork, "offline", false, "Skip service reachability probes")
}

type doctorCheck struct {
	name string
	ok   bool
	note string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	theme := styles.NewTheme()

	ctx, cancel := context.WithTimeout(cmd.Context(), doctorProbeTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		checks []doctorCheck
	)
	record := func(c doctorCheck) {
		mu.Lock()
		checks = append(checks, c)
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, pkg := range []string{"webkitgtk-6.0", "gtk4"} {
			name := fmt.Sprintf("pkg-config %s", pkg)
			if err := exec.CommandContext(ctx, "pkg-config", "--exists", pkg).Run(); err != nil {
				record(doctorCheck{name: name, ok: false, note: "library not found"})
			} else {
				record(doctorCheck{name: name, ok: true})
			}
		}
		return nil
	})

	g.Go(func() error {
		clip := clipboard.New()
		if clip.Available() {
			record(doctorCheck{name: "clipboard tool", ok: true})
		} else {
			record(doctorCheck{name: "clipboard tool", ok: false, note: "install wl-clipboard or xclip"})
		}
		return nil
	})

	g.Go(func() error {
		if _, err := app.Prompts.Recent(ctx, 1); err != nil {
			record(doctorCheck{name: "history database", ok: false, note: err.Error()})
		} else {
			record(doctorCheck{name: "history database", ok: true, note: app.Config.Database.Path})
		}
		return nil
	})

	if !doctorSkipNetwork {
		for _, desc := range entity.EnabledSorted(app.Config.Descriptors()) {
			g.Go(func() error {
				name := fmt.Sprintf("reach %s", desc.ID)
				if err := probeService(ctx, desc.BaseURL); err != nil {
					record(doctorCheck{name: name, ok: false, note: err.Error()})
				} else {
					record(doctorCheck{name: name, ok: true, note: desc.BaseURL})
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(checks, func(i, j int) bool { return checks[i].name < checks[j].name })

	fmt.Println(theme.Title.Render("Doctor"))
	allOK := true
	for _, c := range checks {
		mark := theme.OK.Render("ok")
		if !c.ok {
			mark = theme.Fail.Render("fail")
			allOK = false
		}
		line := fmt.Sprintf("%-6s %s", mark, c.name)
		if c.note != "" {
			line += "  " + theme.Dim.Render(c.note)
		}
		fmt.Println(line)
	}
	if !allOK {
		return fmt.Errorf("some checks failed")
	}
	return nil
}

func probeService(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	// Bot walls answer 403; any response at all proves reachability.
	if resp.StatusCode >= 500 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
