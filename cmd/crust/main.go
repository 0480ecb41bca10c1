package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/parser"
)

var version = "0.1.0"

// Debug flags for dumping front-end output
var (
	dParse   bool
	dTokens  bool
	maxDepth int
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Normalize compiler-style single-dash flags to double-dash for pflag compatibility
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that accept single-dash style
var debugFlagNames = []string{"dparse", "dtokens"}

// normalizeFlags converts single-dash flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crust [file]",
		Short: "crust is a type-checking C11 front end",
		Long: `crust parses preprocessed C11 translation units into a parse tree
annotated with a type on every node. Type errors are reported as parse
errors in the same single pass.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			if dTokens {
				return doTokens(filename, out, errOut)
			}
			if dParse {
				return doParse(filename, out, errOut)
			}

			// Default: parse and report success or failure only
			if _, err := parseFile(filename, errOut); err != nil {
				return err
			}
			fmt.Fprintf(errOut, "crust: parsed %s\n", filename)
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dParse, "dparse", false, "Dump the typed parse tree")
	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump the token stream")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "Maximum grammar nesting depth")

	return rootCmd
}

// parseFile reads and parses a C file, returning the typed parse tree
func parseFile(filename string, errOut io.Writer) (*ast.Node, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "crust: error reading %s: %v\n", filename, err)
		return nil, err
	}

	toks := lexer.Tokenize(string(content))
	tree, err := parser.Parse(toks, filename, parser.WithMaxDepth(maxDepth))
	if err != nil {
		fmt.Fprintf(errOut, "%v\n", err)
		return nil, err
	}
	return tree, nil
}

// doTokens lexes the file and prints one token per line
func doTokens(filename string, out, errOut io.Writer) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "crust: error reading %s: %v\n", filename, err)
		return err
	}

	for _, tok := range lexer.Tokenize(string(content)) {
		fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Type, tok.Literal)
	}
	return nil
}

// doParse parses the file and writes the typed tree to a .parsed.txt file
func doParse(filename string, out, errOut io.Writer) error {
	tree, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}

	outputFilename := parsedOutputFilename(filename)
	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "crust: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := ast.NewPrinter(outFile)
	printer.PrintTree(tree)

	// Also print to stdout for convenience
	printer = ast.NewPrinter(out)
	printer.PrintTree(tree)

	return nil
}

// parsedOutputFilename returns the output filename for -dparse
// input.c -> input.parsed.txt
func parsedOutputFilename(filename string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.txt"
	}
	return filename + ".parsed.txt"
}
