//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
)

// Default target when running `stave` with no arguments.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"x": Cross,
	"c": Clean,
}

const (
	binaryName = "rigcheck"
	mainPkg    = "./cmd/rigcheck"
	binDir     = "bin"
	distDir    = "dist"
)

// crossTargets are the platforms the probe has native code for.
var crossTargets = []struct{ goos, goarch string }{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
	{"windows", "amd64"},
}

// All runs the complete build pipeline.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Build compiles rigcheck for the host platform into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating bin directory: %w", err)
	}
	return goBuild(runtime.GOOS, runtime.GOARCH, filepath.Join(binDir, exeName(runtime.GOOS)))
}

// Cross compiles rigcheck for every supported platform into dist/.
func Cross() error {
	ldflags := buildLdflags()
	for _, t := range crossTargets {
		out := filepath.Join(distDir, t.goos+"-"+t.goarch, exeName(t.goos))
		if st.Verbose() {
			fmt.Printf("Building %s\n", out)
		}
		env := map[string]string{"GOOS": t.goos, "GOARCH": t.goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags, "-o", out, mainPkg); err != nil {
			return fmt.Errorf("building %s/%s: %w", t.goos, t.goarch, err)
		}
	}
	return nil
}

func goBuild(goos, goarch, out string) error {
	env := map[string]string{"GOOS": goos, "GOARCH": goarch}
	return sh.RunWithV(env, "go", "build", "-ldflags", buildLdflags(), "-o", out, mainPkg)
}

func exeName(goos string) string {
	if goos == "windows" {
		return binaryName + ".exe"
	}
	return binaryName
}

// Test runs all tests with race detection and coverage.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Cover writes an HTML coverage report to coverage.html.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Vet runs go vet for each cross target so platform files are checked too.
func Vet() error {
	for _, t := range crossTargets {
		env := map[string]string{"GOOS": t.goos, "GOARCH": t.goarch}
		if err := sh.RunWithV(env, "go", "vet", "./..."); err != nil {
			return fmt.Errorf("vetting %s/%s: %w", t.goos, t.goarch, err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if st.Verbose() {
		fmt.Printf("Removing %s/ and %s/\n", binDir, distDir)
	}
	if err := sh.Rm(binDir + "/"); err != nil {
		return err
	}
	if err := sh.Rm(distDir + "/"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Fmt formats all Go code.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("running gofmt: %w", err)
	}
	return sh.Run("goimports", "-w", ".")
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version := "dev"
	commit := "unknown"
	date := time.Now().UTC().Format(time.RFC3339)

	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		version = strings.TrimSpace(v)
	}

	if c, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && c != "" {
		commit = strings.TrimSpace(c)
	}

	return fmt.Sprintf(
		"-s -w -X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
