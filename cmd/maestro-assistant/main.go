package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Trendyol/maestro-assistant/pkgs/flowcache"
	"github.com/Trendyol/maestro-assistant/pkgs/fsys"
	"github.com/Trendyol/maestro-assistant/pkgs/lint"
	"github.com/Trendyol/maestro-assistant/pkgs/resolver"
	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "maestro-assistant",
		Short:         "Language tooling for Maestro flow files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLintCmd(), newResolveCmd(), newSchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Debug output is gated by the
// MAESTRO_ASSISTANT_DEBUG environment variable; timestamps and level
// labels are stripped for cleaner terminal output.
func newLogger() *slog.Logger {
	logLevel := slog.LevelWarn
	if os.Getenv("MAESTRO_ASSISTANT_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func newLintCmd() *cobra.Command {
	var (
		format string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Validate flow files against the Maestro command grammar",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}

			logger := newLogger()
			cache, err := flowcache.New(flowcache.DefaultSize)
			if err != nil {
				return err
			}
			runner := lint.NewRunner(schema.Default(), cache, logger)

			run := func() (bool, error) {
				reports, err := runner.LintPaths(args)
				if err != nil {
					return false, err
				}
				if format == "json" {
					if err := lint.RenderJSON(cmd.OutOrStdout(), reports); err != nil {
						return false, err
					}
				} else {
					lint.RenderText(cmd.OutOrStdout(), reports)
				}
				for _, r := range reports {
					if r.HasErrors() {
						return true, nil
					}
				}
				return false, nil
			}

			if !watch {
				failed, err := run()
				if err != nil {
					return err
				}
				if failed {
					os.Exit(1)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := run(); err != nil {
				return err
			}
			err = lint.Watch(ctx, args, logger, func() {
				// Edits may change which files count as flows.
				cache.Clear()
				if _, err := run(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-lint when watched files change")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "resolve <flow-file> <output.path>",
		Short: "Resolve an ${output.*} reference to its script definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flowPath, expr := args[0], args[1]

			varPath := strings.Split(strings.TrimPrefix(expr, "output."), ".")
			if len(varPath) == 0 || varPath[0] == "" {
				return fmt.Errorf("empty output path %q", expr)
			}

			anchor, err := filepath.Rel(root, flowPath)
			if err != nil || strings.HasPrefix(anchor, "..") {
				return fmt.Errorf("flow file %s is outside project root %s", flowPath, root)
			}
			anchor = filepath.ToSlash(anchor)

			res := resolver.NewOutputResolver(fsys.OS(root), newLogger())
			value, ok := res.ResolveValue(anchor, varPath)
			if !ok {
				return fmt.Errorf("cannot resolve output.%s from %s", strings.Join(varPath, "."), flowPath)
			}

			loc, _ := res.LocateDefinition(anchor, varPath)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "value: %s\n", value)
			if hint, ok := resolver.FormatHint(value); ok {
				fmt.Fprintf(out, "hint:  %s\n", hint)
			}
			if loc.File != "" {
				fmt.Fprintf(out, "defined in %s at byte %d\n", filepath.Join(root, loc.File), loc.Offset)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Project root the script search is confined to")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the command grammar as a JSON Schema document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schema.Default().ExportJSONSchema()
			if err != nil {
				return err
			}
			// Refuse to emit an artifact that does not compile.
			if err := schema.CompileArtifact(data); err != nil {
				return fmt.Errorf("generated schema does not compile: %w", err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to a file instead of stdout")
	return cmd
}
