package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zapcore"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lox"
	"lox/interpreter-go/pkg/lsp"
)

const cliVersion = "0.1.0-dev"

// Exit codes follow the sysexits convention: 64 for command line misuse,
// 65 for static errors in the script, 70 for runtime errors.
const (
	exitUsage = 64
)

type config struct {
	Debug      bool
	LSP        bool
	LSPLogFile string
	PrintAST   bool
}

type usageError struct{ error }

type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

func (c *cli) run(args []string) int {
	cmd := c.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(c.stderr, err)
	var usage usageError
	if errors.As(err, &usage) {
		return exitUsage
	}
	return lox.ExitCode(err)
}

func (c *cli) rootCommand() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:     "lox [script]",
		Short:   "Lox interpreter",
		Long:    "Runs a Lox script, starts an interactive session, or serves the Language Server Protocol on stdio.",
		Version: cliVersion,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError{fmt.Errorf("expected at most one script, got %d arguments", len(args))}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LSP {
				return c.runLSP(cfg)
			}
			if len(args) == 1 {
				if cfg.PrintAST {
					return c.printAST(args[0])
				}
				return c.runFile(cfg, args[0])
			}
			return c.runREPL(cfg)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&cfg.LSP, "lsp", false, "run as a language server on stdio")
	cmd.Flags().StringVar(&cfg.LSPLogFile, "lsp-log-file", "", "write language server logs to this file instead of stderr")
	cmd.Flags().BoolVar(&cfg.PrintAST, "print-ast", false, "parse the script and print its syntax tree instead of running it")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	return cmd
}

func (c *cli) runFile(cfg *config, path string) error {
	logger := buildLogger(cfg.Debug, os.Stderr)
	defer logger.Sync()

	runner := lox.NewRunner(
		lox.WithOutput(c.stdout),
		lox.WithErrorOutput(c.stderr),
		lox.WithLogger(logger),
	)
	return runner.RunFile(path)
}

func (c *cli) printAST(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	statements, err := lox.Parse(string(data))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, ast.Printer{}.PrintProgram(statements))
	return nil
}

//--------------------------------------------------------------------------
// Language server mode

func (c *cli) runLSP(cfg *config) error {
	logDest := os.Stderr
	if cfg.LSPLogFile != "" {
		logFile, err := os.Create(cfg.LSPLogFile)
		if err != nil {
			return fmt.Errorf("open lsp log: %w", err)
		}
		defer logFile.Close()
		logDest = logFile
	}
	logger := buildLogger(cfg.Debug, logDest)
	defer logger.Sync()

	logger.Info("starting language server")

	service := lsp.NewServer(logger)
	srv := jrpc2.NewServer(service.Methods(), &jrpc2.ServerOptions{
		AllowPush: true,
		Logger:    func(text string) { logger.Debug(text) },
	})
	service.SetRPC(srv)

	srv.Start(channel.LSP(stdrwc{}, stdrwc{}))
	err := srv.Wait()
	logger.Info("language server closed", zap.Error(err))
	return nil
}

// stdrwc adapts stdin/stdout into the single stream the LSP channel
// framing wants.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

//--------------------------------------------------------------------------
// Logging

func buildLogger(debug bool, w io.Writer) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}
