//go:build mage

// Package main contains Mage build targets for draftwise developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "draftwise"
	cmdPkg     = "./cmd/draftwise"
	secretsDir = ".secrets"
	configFile = "draftwise.yaml"
)

// sampleConfig is written by Init when no config file exists.
const sampleConfig = `# draftwise configuration. Every key can also be set with a DRAFTWISE_
# environment variable or the matching command-line flag.
provider: gemini
model: gemini-2.5-flash-lite
log_mode: "off"
workspace: draftwise_project_pack.json
server:
  addr: 127.0.0.1:8080
  allow_origins:
    - http://localhost:5173
`

// Init creates the .secrets/ directory and a sample draftwise.yaml.
func Init() error {
	if err := os.MkdirAll(secretsDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", secretsDir, err)
	}
	fmt.Println("  ", secretsDir, "(put google-api-key or anthropic-api-key here)")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := os.WriteFile(configFile, []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", configFile, err)
		}
		fmt.Println("  ", configFile)
	}
	fmt.Println("Project initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check vets and tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Serve builds the binary and starts the HTTP API.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}

// Stats prints project metrics: Go production/test lines and markdown word
// count. Directories starting with "_" or "." are skipped, as the go tool
// does.
func Stats() error {
	var prod, tests, words int
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		switch {
		case strings.HasSuffix(path, "_test.go"):
			n, err := countLines(path)
			tests += n
			return err
		case strings.HasSuffix(path, ".go"):
			n, err := countLines(path)
			prod += n
			return err
		case strings.HasSuffix(path, ".md"):
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			words += len(strings.Fields(string(data)))
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	fmt.Printf("Words (documentation):          %d\n", words)
	return nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == binDir
}

// countLines counts the non-blank lines of a file.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
