package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/domain"
)

const (
	exitInvalid = 1
	exitBlocked = 2
)

// exitError carries a process exit code out of a command. err may be nil
// when the command already reported everything it had to say.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// appFactory builds the application for a command invocation.
type appFactory func(ctx context.Context) (*Application, error)

func newRootCmd(build appFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Screen inputs against the published guardians lists",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	root.AddCommand(newScanCmd(build), newSyncCmd(build), newWatchCmd(build))
	return root
}

func newScanCmd(build appFactory) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "scan domain|package|object|coin <value>...",
		Short: "Fetch the lists once and print a verdict per value",
		Long: `Fetch the lists once and print "<value>\t<ACTION>\t<reason>" per value.
With --explain, key=value columns follow for the matched entry, the
registrable domain and, for lookalikes, the impersonated brand domain.
Exit status is 2 when any value is blocked, 1 when any input is invalid.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseListKind(args[0])
			if err != nil {
				return &exitError{code: exitInvalid, err: err}
			}

			app, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			prepare(cmd.Context(), app)
			return scanValues(app, kind, args[1:], explain, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "append the matched entry, registrable domain and impersonated brand")
	return cmd
}

// prepare restores the persisted snapshot and refreshes once. Failures only
// degrade verdicts to "unavailable", so they are logged, not returned.
func prepare(ctx context.Context, app *Application) {
	if err := app.guard.Restore(); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Snapshot restore failed")
	}
	if err := app.guard.Refresh(ctx); err != nil {
		log.Warn(map[string]any{"error": err.Error()}, "Refresh incomplete")
	}
}

func scanValues(app *Application, kind domain.ListKind, values []string, explain bool, stdout, stderr io.Writer) error {
	var blocked, invalid bool
	for _, value := range values {
		var (
			v   domain.Verdict
			err error
		)
		switch kind {
		case domain.KindDomain:
			v, err = app.guard.CheckDomain(value)
		case domain.KindPackage:
			v = app.guard.CheckPackage(value)
		case domain.KindObject:
			v = app.guard.CheckObject(value)
		case domain.KindCoin:
			v = app.guard.CheckCoin(value)
		}
		if err != nil {
			invalid = true
			fmt.Fprintf(stderr, "%s: %v\n", value, err)
			continue
		}
		blocked = blocked || v.IsBlocked()
		line := fmt.Sprintf("%s\t%s\t%s", value, v.Action, v.Reason)
		if explain {
			line += explanation(app.brands, v)
		}
		fmt.Fprintln(stdout, line)
	}

	switch {
	case blocked:
		return &exitError{code: exitBlocked}
	case invalid:
		return &exitError{code: exitInvalid}
	default:
		return nil
	}
}

// explanation renders the non-empty verdict details as tab-separated
// key=value columns.
func explanation(brands domain.BrandMap, v domain.Verdict) string {
	var b strings.Builder
	add := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "\t%s=%s", key, value)
		}
	}
	add("matched", v.Matched)
	add("apex", v.Apex)
	if v.Reason == domain.ReasonBrandLookalike {
		if canonical, ok := brands.Lookup(v.Matched); ok {
			add("impersonates", canonical)
		}
	}
	return b.String()
}

func newSyncCmd(build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the lists once and persist them to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if app.config.StorePath == "" {
				return errors.New("sync requires GUARD_STORE_PATH")
			}
			if err := app.guard.Restore(); err != nil {
				log.Warn(map[string]any{"error": err.Error()}, "Snapshot restore failed")
			}
			if err := app.guard.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("sync incomplete: %w", err)
			}
			st := app.guard.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "synced version %d\n", st.Version)
			return nil
		},
	}
}

func newWatchCmd(build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the lists fresh until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := build(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.guard.Restore(); err != nil {
				log.Warn(map[string]any{"error": err.Error()}, "Snapshot restore failed")
			}
			log.Info(map[string]any{"interval": app.config.RefreshInterval.String()}, "Watching lists")
			if err := app.guard.Run(ctx); err != nil {
				return err
			}
			log.Info(nil, "guardians stopped gracefully")
			return nil
		},
	}
}
