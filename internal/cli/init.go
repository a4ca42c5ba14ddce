package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/output"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	Mode       string
	Name       string
	Answers    string
	OutputPath string
	Definition string
	Input      string
	File       string
	Force      bool
}

var (
	initRunner = runInit
	// terminal answers questions when no answers file is given.
	terminal prompt.Asker = prompt.TerminalAsker{}
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a generation profile by answering the dialect's questions",
		Long: "Ask the questions of the selected dialect (interactively or from an answers file) " +
			"and add the resulting profile to a profile file.",
		Example: strings.TrimSpace(`  swagen init --mode ng-typescript --name web --input openapi.yaml
  swagen init --answers answers.yaml --out swagen.toml`),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg := &InitConfig{}
			for name, dst := range map[string]*string{
				"mode":       &cfg.Mode,
				"name":       &cfg.Name,
				"answers":    &cfg.Answers,
				"out":        &cfg.OutputPath,
				"definition": &cfg.Definition,
				"input":      &cfg.Input,
				"file":       &cfg.File,
			} {
				value, err := flags.GetString(name)
				if err != nil {
					return err
				}
				*dst = strings.TrimSpace(value)
			}
			force, err := flags.GetBool("force")
			if err != nil {
				return err
			}
			cfg.Force = force
			return initRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("mode", "", "Dialect of the new profile (defaults to the default mode)")
	cmd.Flags().String("name", "client", "Name of the new profile")
	cmd.Flags().String("answers", "", "Read answers from a YAML or JSON file instead of asking")
	cmd.Flags().String("out", profile.DefaultFile, "Profile file to create or extend")
	cmd.Flags().String("definition", "", "Definition file the profile reads")
	cmd.Flags().String("input", "", "OpenAPI/Swagger document the profile reads")
	cmd.Flags().String("file", "", "Output file of the profile")
	cmd.Flags().Bool("force", false, "Replace a profile with the same name")

	return cmd
}

func runInit(ctx context.Context, cfg *InitConfig, stdout io.Writer) error {
	_ = ctx

	if cfg.Definition != "" && cfg.Input != "" {
		return newUsageError("init: --definition and --input are mutually exclusive")
	}
	name := cfg.Name
	if name == "" {
		name = "client"
	}
	out := cfg.OutputPath
	if out == "" {
		out = profile.DefaultFile
	}
	absPath, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("init: resolve output path: %w", err)
	}

	set := profile.Set{}
	if st, err := os.Stat(absPath); err == nil && st.Mode().IsRegular() {
		set, err = profile.Load(absPath)
		if err != nil {
			return newUsageError(fmt.Sprintf("init: %v", err))
		}
		if _, ok := set[name]; ok && !cfg.Force {
			return newUsageError(fmt.Sprintf("init: profile %q already exists in %s (use --force to replace it)", name, absPath))
		}
	}

	reg := newRegistry()
	mode := cfg.Mode
	if mode == "" {
		mode = reg.DefaultMode()
	}
	d, err := reg.Lookup(mode)
	if err != nil {
		return friendly(err)
	}

	asker := terminal
	if cfg.Answers != "" {
		recorded, err := prompt.LoadAnswers(cfg.Answers)
		if err != nil {
			return newUsageError(fmt.Sprintf("init: %v", err))
		}
		asker = recorded
	}
	answers, err := prompt.Collect(d.Prompts(), asker)
	if err != nil {
		return friendly(err)
	}
	p, err := reg.BuildProfile(d.Name(), answers)
	if err != nil {
		return friendly(err)
	}
	p.Name = name
	p.Definition = cfg.Definition
	p.Input = cfg.Input
	p.File = cfg.File
	set[name] = p

	data, err := profile.Marshal(set, filepath.Ext(absPath))
	if err != nil {
		return fmt.Errorf("init: encode profiles: %w", err)
	}
	if err := output.WriteFileAtomic(absPath, data); err != nil {
		return newUsageError(fmt.Sprintf("init: cannot place file at %s: %v\nHint: choose a different --out or check directory permissions.", absPath, err))
	}
	fmt.Fprintf(stdout, "Wrote profile %q (%s) to %s\n", name, d.Name(), absPath)
	return nil
}
