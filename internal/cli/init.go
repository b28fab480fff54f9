package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gradus-nz/gradus/internal/catalog"
	"github.com/gradus-nz/gradus/internal/config"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				var err error
				path, err = config.DefaultPath()
				if err != nil {
					return err
				}
			}
			return runInit(cmd.InOrStdin(), cmd.OutOrStdout(), path, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config without asking")
	return cmd
}

func runInit(in io.Reader, out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(out, "⚠️  Config already exists: %s\n", path)
		fmt.Fprint(out, "Overwrite? (y/N) ")
		scanner := bufio.NewScanner(in)
		answer := ""
		if scanner.Scan() {
			answer = strings.TrimSpace(strings.ToLower(scanner.Text()))
		}
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	cfg := config.Default()
	cfg.Tables = catalog.Extended()

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "✅ Wrote config: %s\n", path)
	return nil
}
