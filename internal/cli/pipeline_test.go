package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const petstoreDefinition = `metadata:
  title: Petstore
  baseUrl: https://petstore.example.com/v1
services:
  pet:
    getPetById:
      path: /pet/{petId}
      verb: get
      parameters:
        - name: petId
          type: path
          required: true
          dataType: {primitive: integer}
        - name: fields
          type: query
          dataType: {primitive: string}
      responses:
        "200": {dataType: {complex: Pet}}
models:
  Pet:
    name: {primitive: string, required: true}
`

const minimalSpecYAML = "" +
	"openapi: 3.0.0\n" +
	"info:\n" +
	"  title: Test API\n" +
	"  version: '1.0.0'\n" +
	"servers:\n" +
	"  - url: https://api.example.com\n" +
	"paths:\n" +
	"  /hello:\n" +
	"    get:\n" +
	"      operationId: sayHello\n" +
	"      tags: [greeting]\n" +
	"      responses:\n" +
	"        '200':\n" +
	"          description: ok\n"

const profilesYAML = `web:
  mode: ng-ts
  definition: petstore.yaml
  file: out/web.ts
  options:
    generation:
      generateImplementations: true
    baseUrl:
      strategy: Swagger
legacy:
  mode: ng1-js
  definition: petstore.yaml
  file: out/legacy.js
  options:
    module: app
    baseUrl:
      provider: config
`

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"petstore.yaml": petstoreDefinition,
		"openapi.yaml":  minimalSpecYAML,
		"swagen.yaml":   profilesYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGeneratePipeline_DryRun(t *testing.T) {
	dir := writeWorkspace(t)
	profiles := filepath.Join(dir, "swagen.yaml")

	out, err := execute(t, "generate", "--profiles", profiles, "--dry-run")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Planned writes to") || !strings.Contains(out, "(2 files)") {
		t.Fatalf("expected dry-run plan output, got: %s", out)
	}
	if !strings.Contains(out, filepath.Join("out", "legacy.js")+" (legacy,") {
		t.Fatalf("expected legacy file in plan, got: %s", out)
	}
	// Dry-run should not create the directory
	if _, err := os.Stat(filepath.Join(dir, "out")); err == nil {
		t.Fatalf("expected no writes on dry-run")
	}
}

func TestGeneratePipeline_WriteThenVerify(t *testing.T) {
	dir := writeWorkspace(t)
	profiles := filepath.Join(dir, "swagen.yaml")

	if _, err := execute(t, "generate", "--profiles", profiles); err != nil {
		t.Fatalf("generate: %v", err)
	}
	web, err := os.ReadFile(filepath.Join(dir, "out", "web.ts"))
	if err != nil {
		t.Fatalf("read web.ts: %v", err)
	}
	if !strings.Contains(string(web), "export class PetClient") {
		t.Fatalf("unexpected web.ts:\n%s", web)
	}
	legacy, err := os.ReadFile(filepath.Join(dir, "out", "legacy.js"))
	if err != nil {
		t.Fatalf("read legacy.js: %v", err)
	}
	if !strings.Contains(string(legacy), "angular.module(") {
		t.Fatalf("unexpected legacy.js:\n%s", legacy)
	}

	out, err := execute(t, "generate", "--profiles", profiles, "--verify")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "2 files up to date") {
		t.Fatalf("unexpected verify output: %s", out)
	}

	if err := os.WriteFile(filepath.Join(dir, "out", "web.ts"), []byte("stale\n"), 0o600); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, err = execute(t, "generate", "--profiles", profiles, "--verify")
	if err == nil || !strings.Contains(err.Error(), "web.ts would have changed") {
		t.Fatalf("expected verify failure, got %v", err)
	}
}

func TestGeneratePipeline_InputOverride(t *testing.T) {
	dir := writeWorkspace(t)
	profiles := filepath.Join(dir, "swagen.yaml")

	_, err := execute(t, "generate", "--profiles", profiles, "--profile", "web",
		"--input", "openapi.yaml", "--out", "hello.ts")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hello.ts"))
	if err != nil {
		t.Fatalf("read hello.ts: %v", err)
	}
	if !strings.Contains(string(data), "export class GreetingClient") {
		t.Fatalf("unexpected hello.ts:\n%s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err == nil {
		t.Fatalf("only the selected profile should run")
	}
}

func TestGeneratePipeline_Errors(t *testing.T) {
	dir := writeWorkspace(t)
	profiles := filepath.Join(dir, "swagen.yaml")

	t.Run("missing profile file", func(t *testing.T) {
		_, err := execute(t, "generate", "--profiles", filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), "swagen init") {
			t.Fatalf("expected usage error with hint, got %v", err)
		}
	})
	t.Run("unknown profile", func(t *testing.T) {
		_, err := execute(t, "generate", "--profiles", profiles, "--profile", "mobile")
		if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), `"mobile"`) {
			t.Fatalf("expected usage error, got %v", err)
		}
	})
	t.Run("unknown mode", func(t *testing.T) {
		_, err := execute(t, "generate", "--profiles", profiles, "--profile", "web", "--mode", "react")
		if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), "swagen modes") {
			t.Fatalf("expected usage error with hint, got %v", err)
		}
	})
	t.Run("invalid options", func(t *testing.T) {
		_, err := execute(t, "generate", "--profiles", profiles, "--profile", "web", "--mode", "ng1-ts")
		if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), "options.") {
			t.Fatalf("expected config error naming the option group, got %v", err)
		}
	})
	t.Run("unreadable input", func(t *testing.T) {
		_, err := execute(t, "generate", "--profiles", profiles, "--profile", "web", "--input", "missing.yaml")
		if !errors.Is(err, ErrUsage) || !strings.Contains(err.Error(), "Location:") {
			t.Fatalf("expected input usage error, got %v", err)
		}
	})
	if _, err := os.Stat(filepath.Join(dir, "out")); err == nil {
		t.Fatalf("failed runs must not write")
	}
}

func TestModes(t *testing.T) {
	out, err := execute(t, "modes")
	if err != nil {
		t.Fatalf("modes: %v", err)
	}
	for _, want := range []string{"ng-typescript", "ng1-javascript", "ng1-typescript (default)", "ng1-ts", "ng-ts"} {
		if !strings.Contains(out, want) {
			t.Errorf("modes output misses %q:\n%s", want, out)
		}
	}
}

func TestDescribe(t *testing.T) {
	dir := writeWorkspace(t)

	out, err := execute(t, "describe", "--definition", filepath.Join(dir, "petstore.yaml"))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	want := "pet\n  GET     https://petstore.example.com/v1/pet/{petId}?fields={fields}  getPetById\n"
	if out != want {
		t.Fatalf("describe output:\n got %q\nwant %q", out, want)
	}

	out, err = execute(t, "describe", "--input", filepath.Join(dir, "openapi.yaml"), "--base-url", "http://localhost/")
	if err != nil {
		t.Fatalf("describe input: %v", err)
	}
	if !strings.Contains(out, "GET     http://localhost/hello  sayHello") {
		t.Fatalf("unexpected describe output: %s", out)
	}

	_, err = execute(t, "describe")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
