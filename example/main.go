// Command markup-demo is a tiny end-to-end exerciser for ParseHTML/ParseXML
// and their matching writers, grounded on the cobra root/subcommand pattern
// from the retrieval pack's arbor-encoder tokenize command: a file argument
// in, a streamed result on stdout.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	markup "github.com/dpotapov/go-markup"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var xmlMode bool
	var selfClose bool

	rootCmd := &cobra.Command{
		Use:   "markup-demo",
		Short: "Stream-parse and re-serialize an HTML or XML document",
		Long: `markup-demo reads a document, parses it with this module's streaming
parser, and writes it back out through the matching serializer, reporting
every parse error it encounters along the way.`,
	}

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a document and print its signal stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], xmlMode, logger)
		},
	}
	parseCmd.Flags().BoolVar(&xmlMode, "xml", false, "parse as XML 1.0 instead of HTML5")

	roundtripCmd := &cobra.Command{
		Use:   "roundtrip [file]",
		Short: "Parse a document and write it back out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(args[0], xmlMode, selfClose, logger)
		},
	}
	roundtripCmd.Flags().BoolVar(&xmlMode, "xml", false, "parse as XML 1.0 instead of HTML5")
	roundtripCmd.Flags().BoolVar(&selfClose, "self-close", false, "emit empty XML elements as <name/>")

	rootCmd.AddCommand(parseCmd, roundtripCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openInput(path string, logger *slog.Logger) (*os.File, markup.Config) {
	cfg := markup.Config{
		Report: func(loc markup.Location, kind markup.ErrorKind, detail string) error {
			logger.Warn("parse error", "loc", loc.String(), "kind", kind.String(), "detail", detail)
			return nil
		},
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Error("open file", "path", path, "error", err)
		os.Exit(1)
	}
	return f, cfg
}

func runParse(path string, xmlMode bool, logger *slog.Logger) error {
	f, cfg := openInput(path, logger)
	defer f.Close()

	stream, err := newStream(f, xmlMode, cfg)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for {
		sig, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		printSignal(sig)
	}
}

func runRoundtrip(path string, xmlMode, selfClose bool, logger *slog.Logger) error {
	f, cfg := openInput(path, logger)
	defer f.Close()

	stream, err := newStream(f, xmlMode, cfg)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if xmlMode {
		return markup.WriteXML(os.Stdout, stream, markup.WriteConfig{SelfClosingTags: selfClose})
	}
	return markup.WriteHTML(os.Stdout, stream)
}

func newStream(f *os.File, xmlMode bool, cfg markup.Config) (*markup.Stream, error) {
	if xmlMode {
		return markup.ParseXML(f, cfg)
	}
	return markup.ParseHTML(f, cfg)
}

func printSignal(sig markup.Signal) {
	switch sig.Kind {
	case markup.StartElement:
		fmt.Printf("%s StartElement %s %v\n", sig.Loc, sig.Name, sig.Attrs)
	case markup.EndElement:
		fmt.Printf("%s EndElement %s\n", sig.Loc, sig.Name)
	case markup.Text:
		fmt.Printf("%s Text %q\n", sig.Loc, sig.TextString())
	case markup.Comment:
		fmt.Printf("%s Comment %q\n", sig.Loc, sig.CommentData)
	case markup.DoctypeSignal:
		fmt.Printf("%s Doctype %s\n", sig.Loc, sig.Doctype.Name)
	case markup.XMLDeclSignal:
		fmt.Printf("%s XMLDecl version=%s encoding=%s\n", sig.Loc, sig.XMLDecl.Version, sig.XMLDecl.Encoding)
	case markup.PISignal:
		fmt.Printf("%s PI %s %q\n", sig.Loc, sig.PI.Target, sig.PI.Body)
	}
}
