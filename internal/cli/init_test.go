package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/prompt"
)

func writeAnswers(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "answers.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	return path
}

func TestInit_WritesProfileFromAnswers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swagen.yaml")
	answers := writeAnswers(t, dir, "baseUrlStrategy: property\nbaseUrl_property: apiRoot\n")

	out, err := execute(t, "init", "--mode", "ng-ts", "--name", "web",
		"--answers", answers, "--input", "openapi.yaml", "--out", path)
	if err != nil {
		t.Fatalf("init execute: %v", err)
	}
	if !strings.Contains(out, `Wrote profile "web" (ng-typescript)`) {
		t.Fatalf("unexpected output: %s", out)
	}

	set, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load written profiles: %v", err)
	}
	p := set["web"]
	if p == nil {
		t.Fatalf("profile web missing: %v", set.Names())
	}
	if p.Mode != "ng-typescript" || p.Input != "openapi.yaml" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if v, _ := profile.Lookup(p.Options, "baseUrl.property"); v != "apiRoot" {
		t.Fatalf("baseUrl.property: got %v", v)
	}
}

func TestInit_UsesTerminalWithoutAnswers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swagen.toml")
	terminal = prompt.MapAsker{
		"module":          "app",
		"servicesns":      "App.Services",
		"baseUrlProvider": "config",
		"baseUrlType":     "App.Config",
	}
	t.Cleanup(func() { terminal = prompt.TerminalAsker{} })

	if _, err := execute(t, "init", "--out", path); err != nil {
		t.Fatalf("init execute: %v", err)
	}
	set, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load written profiles: %v", err)
	}
	if p := set["client"]; p == nil || p.Mode != "ng1-typescript" {
		t.Fatalf("expected default-mode profile named client, got %v", set.Names())
	}
}

func TestInit_ExistingProfileWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swagen.yaml")
	answers := writeAnswers(t, dir, "baseUrlStrategy: swagger\n")
	args := []string{"init", "--mode", "ng-ts", "--answers", answers, "--out", path}

	if _, err := execute(t, args...); err != nil {
		t.Fatalf("first init: %v", err)
	}
	_, err := execute(t, args...)
	if err == nil {
		t.Fatalf("expected error for existing profile without --force")
	}
	if _, ok := err.(usageError); !ok {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}

	if _, err := execute(t, append(args, "--force")...); err != nil {
		t.Fatalf("forced init: %v", err)
	}
	if _, err := execute(t, append(args, "--name", "admin")...); err != nil {
		t.Fatalf("second profile: %v", err)
	}
	set, err := profile.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := strings.Join(set.Names(), ","); got != "admin,client" {
		t.Fatalf("profiles: got %s", got)
	}
}

func TestInit_MissingRequiredAnswer(t *testing.T) {
	dir := t.TempDir()
	answers := writeAnswers(t, dir, "module: app\n")

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"init", "--mode", "ng1-js", "--answers", answers, "--out", filepath.Join(dir, "p.yaml")})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "baseUrlProvider") {
		t.Fatalf("expected missing answer error, got %v", err)
	}
	if errors.Is(err, ErrUsage) {
		t.Fatalf("a missing answer is not a usage error: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "p.yaml")); statErr == nil {
		t.Fatalf("no profile file should be written")
	}
}
