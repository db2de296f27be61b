package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"glot/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a glot project",
	Long: `Initialize a glot project by creating a glot.toml manifest. If [path] is
omitted, initializes the current directory. If a non-existing path is
provided, the directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const manifestTemplate = `[project]
target = "%s"

[output]
# dir = "generated"
prefer_struct_literal = %t

[cache]
enabled = false
# dir = ""
`

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	defaults := project.Default()
	content := fmt.Sprintf(manifestTemplate, defaults.Project.Target, defaults.PreferStruct())
	if err := os.WriteFile(manifestPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", manifestPath, err)
	}
	fmt.Println("created", manifestPath)
	return nil
}
