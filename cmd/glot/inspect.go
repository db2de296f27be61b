package main

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"glot/internal/syntax"
	"glot/internal/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file.ts>",
	Short: "Dump the parse tree and resolved types of a file",
	Long: `Parse a TypeScript example file and print its syntax tree. With --types,
also print every collected declaration and every variable with a resolved
type. Useful when a conversion produces an unexpected shape.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("types", false, "print collected declarations and variable types")
}

func runInspect(cmd *cobra.Command, args []string) error {
	showTypes, err := cmd.Flags().GetBool("types")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	parser := syntax.NewParser()
	tree, err := syntax.Parse(cmd.Context(), parser, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	defer tree.Close()

	printTree(os.Stdout, tree.RootNode(), content, 0)

	if showTypes {
		checker := types.Collect(tree.RootNode(), content)
		printTypes(checker)
	}
	return nil
}

const inspectLeafLimit = 60

func printTree(w *os.File, n *sitter.Node, content []byte, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.NamedChildCount() == 0 {
		text := syntax.Text(n, content)
		if len(text) > inspectLeafLimit {
			text = text[:inspectLeafLimit] + "..."
		}
		fmt.Fprintf(w, "%s%s %q [%d..%d]\n", indent, n.Type(), text, n.StartByte(), n.EndByte())
		return
	}
	fmt.Fprintf(w, "%s%s [%d..%d]\n", indent, n.Type(), n.StartByte(), n.EndByte())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		printTree(w, n.NamedChild(i), content, depth+1)
	}
}

func printTypes(checker *types.Checker) {
	decls := checker.Decls()
	if len(decls) > 0 {
		fmt.Println("\ndeclarations:")
		for _, d := range decls {
			kind := "interface"
			switch {
			case d.IsClass:
				kind = "class"
			case d.StructLike:
				kind = "interface (struct-like)"
			}
			fmt.Printf("  %s %s\n", kind, d.Name)
			for _, f := range d.Fields {
				optional := ""
				if f.Optional {
					optional = "?"
				}
				fmt.Printf("    %s%s: %s\n", f.Name, optional, f.Type)
			}
		}
	}
	vars := checker.Vars()
	if len(vars) > 0 {
		fmt.Println("\nvariables:")
		for _, v := range vars {
			fmt.Printf("  %s: %s\n", v.Name, v.Type)
		}
	}
}
