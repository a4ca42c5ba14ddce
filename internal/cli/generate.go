package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagen/internal/definition"
	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/ingest"
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/output"
	"github.com/mark3labs/swagen/internal/profile"
)

// GenerateConfig captures all inputs that influence the generate command after
// merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	// Profiles is the profile file; profile.DefaultFile when empty.
	Profiles string
	// Names selects profiles; every profile runs when empty.
	Names       []string
	Definition  string
	Input       string
	Mode        string
	Out         string
	IncludeTags []string
	ExcludeTags []string
	ConfigPath  string
	DryRun      bool
	Verify      bool
	Verbose     bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Profiles: profile.DefaultFile}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client sources for the profiles in a profile file",
		Long: "Generate client sources for the profiles in a profile file. " +
			"Flags override the definition, mode and output of the selected profiles.",
		Example: strings.TrimSpace(`  swagen generate
  swagen generate --profiles api/swagen.yaml --profile web --input openapi.yaml
  swagen generate --verify`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("profiles", "", "Profile file (YAML, JSON or TOML); defaults to swagen.yaml")
	flags.StringSlice("profile", nil, "Only run these profiles")
	flags.String("definition", "", "Normalized definition file (JSON or YAML)")
	flags.String("input", "", "Path or URL to an OpenAPI/Swagger document")
	flags.String("mode", "", "Override the dialect of the selected profiles")
	flags.String("out", "", "Override the output file (single profile only)")
	flags.StringSlice("include-tags", nil, "Only include operations with these tags (with --input)")
	flags.StringSlice("exclude-tags", nil, "Exclude operations with these tags (with --input)")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("verify", false, "Fail when generated files differ from the files on disk")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	strs := map[string]*string{
		"profiles":   &cfg.Profiles,
		"definition": &cfg.Definition,
		"input":      &cfg.Input,
		"mode":       &cfg.Mode,
		"out":        &cfg.Out,
	}
	for name, dst := range strs {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	lists := map[string]*[]string{
		"profile":      &cfg.Names,
		"include-tags": &cfg.IncludeTags,
		"exclude-tags": &cfg.ExcludeTags,
	}
	for name, dst := range lists {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetStringSlice(name)
		if err != nil {
			return err
		}
		*dst = sanitizeList(value)
	}

	bools := map[string]*bool{
		"dry-run": &cfg.DryRun,
		"verify":  &cfg.Verify,
		"verbose": &cfg.Verbose,
	}
	for name, dst := range bools {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Profiles = strings.TrimSpace(c.Profiles)
	if c.Profiles == "" {
		c.Profiles = profile.DefaultFile
	}
	c.Definition = strings.TrimSpace(c.Definition)
	c.Input = strings.TrimSpace(c.Input)
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Out = strings.TrimSpace(c.Out)
	c.Names = sanitizeList(c.Names)
	c.IncludeTags = sanitizeList(c.IncludeTags)
	c.ExcludeTags = sanitizeList(c.ExcludeTags)
}

func (c *GenerateConfig) validate() error {
	if c.Definition != "" && c.Input != "" {
		return newUsageError("generate: --definition and --input are mutually exclusive")
	}
	if c.DryRun && c.Verify {
		return newUsageError("generate: --dry-run and --verify are mutually exclusive")
	}
	if c.Out != "" && len(c.Names) > 1 {
		return newUsageError("generate: --out needs exactly one --profile")
	}
	if (len(c.IncludeTags) > 0 || len(c.ExcludeTags) > 0) && c.Definition != "" {
		return newUsageError("generate: tag filters apply to --input documents only")
	}

	overlap := intersect(c.IncludeTags, c.ExcludeTags)
	if len(overlap) > 0 {
		return newUsageError(fmt.Sprintf("generate: include/exclude tags overlap: %s", strings.Join(overlap, ", ")))
	}

	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig, stdout io.Writer) error {
	// 1) Read the profile file and select the profiles to run
	if _, err := os.Stat(cfg.Profiles); err != nil {
		return newUsageError(fmt.Sprintf("generate: cannot read profile file %s: %v\nHint: run `swagen init` to create one or pass --profiles.", cfg.Profiles, err))
	}
	set, err := profile.Load(cfg.Profiles)
	if err != nil {
		return newUsageError(fmt.Sprintf("generate: %v", err))
	}
	selected, err := set.Select(cfg.Names...)
	if err != nil {
		return friendly(err)
	}
	if cfg.Out != "" && len(selected) != 1 {
		return newUsageError(fmt.Sprintf("generate: --out needs exactly one profile, %d selected", len(selected)))
	}

	// 2) Generate every profile concurrently into one file set
	baseDir := filepath.Dir(cfg.Profiles)
	reg := newRegistry()
	files := output.New()
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range selected {
		p := cfg.override(p)
		g.Go(func() error {
			return generateProfile(gctx, reg, files, p, baseDir, cfg)
		})
	}
	if err := g.Wait(); err != nil {
		return friendly(err)
	}

	// 3) Preview, compare or write
	switch {
	case cfg.DryRun:
		printPlan(stdout, baseDir, files.Files())
	case cfg.Verify:
		if err := files.Verify(ctx, baseDir); err != nil {
			return errors.Wrap(err, "generated files are out of date")
		}
		fmt.Fprintf(stdout, "%d files up to date\n", files.Len())
	default:
		if err := files.Write(ctx, baseDir); err != nil {
			return wrapOutputError(err, baseDir)
		}
		fmt.Fprintf(stdout, "Wrote %d files\n", files.Len())
	}
	return nil
}

// override returns a copy of p with the command line overrides applied.
func (c *GenerateConfig) override(p *profile.Profile) *profile.Profile {
	out := *p
	if c.Mode != "" {
		out.Mode = c.Mode
	}
	if c.Out != "" {
		out.File = c.Out
	}
	switch {
	case c.Definition != "":
		out.Definition, out.Input = c.Definition, ""
	case c.Input != "":
		out.Definition, out.Input = "", c.Input
	}
	return &out
}

func generateProfile(ctx context.Context, reg *generator.Registry, files *output.FS, p *profile.Profile, baseDir string, cfg *GenerateConfig) error {
	d, err := reg.Lookup(p.Mode)
	if err != nil {
		return errors.Wrapf(err, "profile %s", p.Name)
	}
	def, err := loadDefinition(ctx, p, baseDir, cfg)
	if err != nil {
		return errors.Wrapf(err, "profile %s", p.Name)
	}
	src, err := reg.Generate(def, p)
	if err != nil {
		return errors.Wrapf(err, "profile %s", p.Name)
	}
	path := generator.OutputPath(p, d)
	logging.Logger.Infow("generated", "profile", p.Name, "mode", d.Name(), "path", path, "bytes", len(src))
	return files.Add(p.Name, path, []byte(src))
}

func loadDefinition(ctx context.Context, p *profile.Profile, baseDir string, cfg *GenerateConfig) (*definition.Definition, error) {
	switch {
	case p.Definition != "":
		return definition.Load(resolvePath(baseDir, p.Definition))
	case p.Input != "":
		input := p.Input
		if !strings.Contains(input, "://") {
			input = resolvePath(baseDir, input)
		}
		doc, err := ingest.Load(ctx, input)
		if err != nil {
			return nil, err
		}
		return ingest.ToDefinition(doc,
			ingest.WithIncludeTags(cfg.IncludeTags),
			ingest.WithExcludeTags(cfg.ExcludeTags),
		)
	default:
		return nil, &profile.ConfigError{
			Field:   p.Name,
			Message: "set either definition or input (or pass --definition/--input)",
		}
	}
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func printPlan(w io.Writer, outDir string, files []output.File) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, len(files))
	for _, f := range files {
		fmt.Fprintf(w, "- %s (%s, %d bytes)\n", f.Path, f.Owner, len(f.Data))
	}
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "directory") || strings.Contains(lower, "rename") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different file in the profile or pass --out.", outDir, msg))
	}
	return err
}

func sanitizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a))
	for _, item := range a {
		set[item] = struct{}{}
	}
	var result []string
	for _, item := range b {
		if _, ok := set[item]; ok {
			result = append(result, item)
		}
	}
	return result
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		var err error
		switch normalizeKey(key) {
		case "profiles":
			cfg.Profiles, err = valueAsString(value)
		case "profile":
			var list []string
			list, err = valueAsStringSlice(value)
			cfg.Names = sanitizeList(list)
		case "definition":
			cfg.Definition, err = valueAsString(value)
		case "input":
			cfg.Input, err = valueAsString(value)
		case "mode":
			cfg.Mode, err = valueAsString(value)
		case "out":
			cfg.Out, err = valueAsString(value)
		case "includetags":
			var list []string
			list, err = valueAsStringSlice(value)
			cfg.IncludeTags = sanitizeList(list)
		case "excludetags":
			var list []string
			list, err = valueAsStringSlice(value)
			cfg.ExcludeTags = sanitizeList(list)
		case "dryrun":
			cfg.DryRun, err = valueAsBool(value)
		case "verify":
			cfg.Verify, err = valueAsBool(value)
		case "verbose":
			cfg.Verbose, err = valueAsBool(value)
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
		if err != nil {
			return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
