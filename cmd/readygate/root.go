package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hairizuanbinnoorazman/readygate/gate"
	"github.com/hairizuanbinnoorazman/readygate/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "readygate [flags] <target-endpoint> <command> [args...]",
	Short: "Wait for an HTTP endpoint to respond, then run a command",
	Long: `readygate probes an HTTP endpoint until it answers and then runs the given
command with the same standard streams and environment. The command's exit
status becomes readygate's exit status.`,
	Example:       `  readygate http://api:8000/health uvicorn main:app --host 0.0.0.0`,
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGate,
}

func init() {
	flags := rootCmd.Flags()
	// Everything after the target belongs to the command.
	flags.SetInterspersed(false)
	flags.StringVarP(&configFile, "config", "c", "", "config file path")
	registerFlags(flags)

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// exitCodeError carries a process exit status out of a command.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}

func runGate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level, cfg.Log.Format)

	target, err := gate.ParseTarget(args[0])
	if err != nil {
		return err
	}
	expect, err := gate.ParseStatusMatcher(cfg.Probe.ExpectStatus)
	if err != nil {
		return fmt.Errorf("invalid expect-status: %w", err)
	}
	command := args[1:]

	log.Debug(ctx, "starting readygate", map[string]interface{}{
		"version":       Version,
		"target":        target,
		"command":       strings.Join(command, " "),
		"interval":      cfg.Gate.Interval.String(),
		"max_attempts":  cfg.Gate.MaxAttempts,
		"timeout":       cfg.Gate.Timeout.String(),
		"method":        cfg.Probe.Method,
		"expect_status": expect.String(),
	})

	tracker := gate.NewTracker(target)
	registry := prometheus.NewRegistry()
	metrics := gate.NewMetrics(registry)

	if cfg.Status.Addr != "" {
		srv, err := startStatusServer(ctx, cfg.Status.Addr, newStatusRouter(tracker, registry), log)
		if err != nil {
			return fmt.Errorf("failed to start status server: %w", err)
		}
		defer srv.Shutdown(ctx, cfg.Status.ShutdownTimeout)
	}

	probe := gate.NewHTTPProbe(gate.HTTPProbeOptions{
		Method:   cfg.Probe.Method,
		Timeout:  cfg.Probe.Timeout,
		Expect:   expect,
		Insecure: cfg.Probe.Insecure,
	})
	g := gate.New(target, probe, gate.Config{
		Interval:    cfg.Gate.Interval,
		MaxAttempts: cfg.Gate.MaxAttempts,
		Timeout:     cfg.Gate.Timeout,
	}, log, gate.WithTracker(tracker), gate.WithMetrics(metrics))

	code, err := g.Run(ctx, gate.NewExecRunner(), command)
	if err != nil {
		var handoffErr *gate.HandoffError
		if errors.As(err, &handoffErr) {
			log.Error(ctx, "failed to execute command", map[string]interface{}{
				"command": handoffErr.Command,
				"error":   handoffErr.Err.Error(),
			})
		}
		// Giving up has already been logged by the gate.
		return &exitCodeError{code: code, err: err}
	}
	if code != 0 {
		return &exitCodeError{code: code}
	}
	return nil
}
