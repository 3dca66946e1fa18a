// Command clb compiles FASM configuration source into packed 1632-bit CLB
// fabric bitstreams, and back again, for the PIC16F131xx configurable
// logic block peripheral.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/clbtoolchain/clbfab/api"
	"github.com/clbtoolchain/clbfab/bitstream"
	"github.com/clbtoolchain/clbfab/config"
	"github.com/clbtoolchain/clbfab/diag"
	"github.com/clbtoolchain/clbfab/fasm"
	"github.com/clbtoolchain/clbfab/inspect"
	"github.com/clbtoolchain/clbfab/serialize"
	"github.com/clbtoolchain/clbfab/tools"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clb: loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "clb",
		Short: "Compile and inspect PIC16F131xx CLB fabric configurations",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
	}

	rootCmd.AddCommand(
		newCompileCmd(cfg),
		newDecompileCmd(cfg),
		newFmtCmd(),
		newLintCmd(cfg),
		newXRefCmd(cfg),
		newInspectCmd(cfg),
		newServeCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *diag.Logger {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	return diag.New(os.Stderr, level)
}

// readInput reads path, or stdin when path is "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path) // #nosec G304 -- user-supplied CLI path
}

// writeOutput writes data to path, or stdout when path is "" or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644) // #nosec G306 -- user-supplied CLI output path
}

func newCompileCmd(cfg *config.Config) *cobra.Command {
	var (
		output  string
		format  string
		strict  bool
		psect   string
	)

	cmd := &cobra.Command{
		Use:   "compile [input.fasm]",
		Short: "Compile FASM source into a packed bitstream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			logger := newLogger(cfg)
			rec, warnings, err := fasm.Parse(strings.NewReader(string(src)), fasm.Options{Strict: strict})
			logger.WarnAll(warnings)
			if err != nil {
				return fmt.Errorf("parsing FASM: %w", err)
			}

			bits, err := bitstream.Encode(rec)
			if err != nil {
				return fmt.Errorf("encoding bitstream: %w", err)
			}

			var buf strings.Builder
			switch format {
			case "json":
				if err := serialize.WriteJSON(&buf, bits); err != nil {
					return fmt.Errorf("writing JSON: %w", err)
				}
			case "asm":
				opts := serialize.AsmOptions{DeviceMacros: cfg.Output.DeviceMacros, Psect: psect}
				if err := serialize.WriteAsm(&buf, bits, opts); err != nil {
					return fmt.Errorf("writing assembly: %w", err)
				}
			default:
				return fmt.Errorf("unknown output format %q (want json or asm)", format)
			}

			return writeOutput(output, []byte(buf.String()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", cfg.Output.Format, "output format: json or asm")
	cmd.Flags().BoolVar(&strict, "strict", cfg.FASM.Strict, "treat malformed recognized lines as fatal")
	cmd.Flags().StringVar(&psect, "psect", cfg.Output.Psect, "psect name for asm output")

	return cmd
}

func newDecompileCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "decompile [input.json]",
		Short: "Decompile a packed bitstream JSON document into FASM source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			bits, err := serialize.ReadJSON(strings.NewReader(string(src)))
			if err != nil {
				return fmt.Errorf("reading bitstream JSON: %w", err)
			}

			rec, err := bitstream.Decode(bits)
			if err != nil {
				return fmt.Errorf("decoding bitstream: %w", err)
			}

			var buf strings.Builder
			if err := fasm.Write(&buf, rec); err != nil {
				return fmt.Errorf("writing FASM: %w", err)
			}

			return writeOutput(output, []byte(buf.String()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}

func newFmtCmd() *cobra.Command {
	var (
		output        string
		write         bool
		annotateUnset bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [input.fasm]",
		Short: "Reformat FASM source into canonical line order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			out, warnings, err := tools.Format(string(src), &tools.FormatOptions{AnnotateUnset: annotateUnset})
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "clb: fmt: %v\n", w)
			}
			if err != nil {
				return fmt.Errorf("formatting: %w", err)
			}

			dest := output
			if write && path != "" && path != "-" {
				dest = path
			}
			return writeOutput(dest, []byte(out))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result back to the input file")
	cmd.Flags().BoolVar(&annotateUnset, "annotate-unset", false, "append a comment listing unset peripheral fields")
	return cmd
}

func newLintCmd(cfg *config.Config) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [input.fasm]",
		Short: "Check FASM source for parse problems and unwired logic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			linter := tools.NewLinter(&tools.LintOptions{Strict: strict, CheckUnreachable: true})
			issues := linter.LintSource(string(src))

			hasError := false
			for _, iss := range issues {
				fmt.Fprintln(os.Stdout, iss.String())
				if iss.Level == tools.LintError {
					hasError = true
				}
			}

			if hasError {
				return fmt.Errorf("lint found errors")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", cfg.FASM.Strict, "treat malformed recognized lines as errors")
	return cmd
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP/WebSocket compilation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, portStr, err := net.SplitHostPort(addr)
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", addr, err)
			}
			var port int
			if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
				return fmt.Errorf("invalid port in %q: %w", addr, err)
			}

			srv := api.NewServer(port)

			monitor := api.NewProcessMonitor(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}, logrus.New())
			monitor.Start()
			defer monitor.Stop()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", cfg.Service.Addr, "address to listen on")
	return cmd
}

func newInspectCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.fasm]",
		Short: "Browse a configuration's logic elements and fabric in a terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			logger := newLogger(cfg)
			rec, warnings, err := fasm.Parse(strings.NewReader(string(src)), fasm.Options{Strict: cfg.FASM.Strict})
			logger.WarnAll(warnings)
			if err != nil {
				return fmt.Errorf("parsing FASM: %w", err)
			}

			return inspect.NewTUI(rec).Run()
		},
	}
	return cmd
}

func newXRefCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xref [input.fasm]",
		Short: "Print a cross-reference of signal usage across a configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			logger := newLogger(cfg)
			rec, warnings, err := fasm.Parse(strings.NewReader(string(src)), fasm.Options{Strict: cfg.FASM.Strict})
			logger.WarnAll(warnings)
			if err != nil {
				return fmt.Errorf("parsing FASM: %w", err)
			}

			fmt.Print(tools.GenerateXRef(rec))
			return nil
		},
	}
	return cmd
}
