// Command multilspctl is a small diagnostic CLI around the multilsp
// client: point it at a workspace and a language, and it runs the
// initialize handshake, prints what the server advertised, and exits.
// It exists to exercise the public package end-to-end and to give
// integrators something to run by hand while wiring up a new language.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"multilsp"
	"multilsp/internal/langserver"
	_ "multilsp/internal/langserver/all"
	"multilsp/internal/logging"
	"multilsp/internal/rootdetect"
)

var (
	flagLanguage string
	flagRoot     string
	flagTrace    bool
	flagTimeout  time.Duration

	flagLine   int
	flagColumn int
)

var rootCmd = &cobra.Command{
	Use:   "multilspctl",
	Short: "multilspctl probes a language server through the multilsp client",
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Spawn the configured language server, run the handshake, and print its capabilities",
	RunE:  runProbe,
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols <file>",
	Short: "Print the document symbols for a file in the workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

var hoverCmd = &cobra.Command{
	Use:   "hover <file>",
	Short: "Print hover text at --line/--column in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHover,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "go", "language tag (an unknown tag fails with the list of registered tags)")
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "r", ".", "workspace root")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "log every LSP payload")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "handshake/query timeout")

	hoverCmd.Flags().IntVar(&flagLine, "line", 0, "zero-based line")
	hoverCmd.Flags().IntVar(&flagColumn, "column", 0, "zero-based column")

	rootCmd.AddCommand(probeCmd, symbolsCmd, hoverCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSession() (*multilsp.Session, error) {
	lang := langserver.Language(flagLanguage)
	root := flagRoot
	if root == "." || root == "" {
		if detected, err := rootdetect.Detect(".", lang); err == nil {
			root = detected
		}
	}
	cfg := multilsp.Config{
		CodeLanguage:          lang,
		WorkspaceRoot:         root,
		TraceLSPCommunication: flagTrace,
		InitializeTimeout:     flagTimeout,
	}
	logger := logging.Discard()
	if flagTrace {
		logger = logging.Default("multilspctl ")
	}
	return multilsp.NewSession(cfg, logger)
}

func runProbe(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		return err
	}
	defer sess.Stop(context.Background())

	fmt.Printf("session %s ready for %s at %s\n", sess.ID(), sess.Language(), sess.WorkspaceRoot())
	caps, err := json.MarshalIndent(sess.Capabilities(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(caps))
	return nil
}

func runSymbols(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		return err
	}
	defer sess.Stop(context.Background())

	_, tree, err := sess.DocumentSymbols(ctx, args[0])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runHover(cmd *cobra.Command, args []string) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()
	if err := sess.Start(ctx); err != nil {
		return err
	}
	defer sess.Stop(context.Background())

	text, _, err := sess.Hover(ctx, args[0], flagLine, flagColumn)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
