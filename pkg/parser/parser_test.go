package parser

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
)

type parseCase struct {
	Name  string   `yaml:"name"`
	Input string   `yaml:"input"`
	Error string   `yaml:"error"`
	Tree  []string `yaml:"tree"`
}

type parseFile struct {
	Tests []parseCase `yaml:"tests"`
}

func TestParseYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("reading corpus: %v", err)
	}
	var f parseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("unmarshaling corpus: %v", err)
	}
	if len(f.Tests) == 0 {
		t.Fatal("corpus is empty")
	}

	for _, tc := range f.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			toks := lexer.Tokenize(tc.Input)
			tree, err := Parse(toks, "test.c")

			if tc.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, parse succeeded", tc.Error)
				}
				if !strings.Contains(err.Error(), tc.Error) {
					t.Fatalf("expected error containing %q, got %q", tc.Error, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			var buf bytes.Buffer
			ast.NewPrinter(&buf).PrintTree(tree)
			for _, want := range tc.Tree {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("printed tree is missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
