package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Description string        `yaml:"description"`
	Cases       []fixtureCase `yaml:"cases"`
}

type fixtureCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Stdout []string `yaml:"stdout"`
	Error  string   `yaml:"error"`
}

// TestFixtures replays the conformance suites under testdata. Each case
// runs in a fresh session; expected stdout lines are compared exactly and
// an expected error is matched as a substring of the rendered form.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixture files found")
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		var file fixtureFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}

		suite := strings.TrimSuffix(filepath.Base(path), ".yaml")
		for _, c := range file.Cases {
			c := c
			t.Run(suite+"/"+c.Name, func(t *testing.T) {
				var out bytes.Buffer
				r := NewRunner(WithOutput(&out))
				_, runErr := r.RunSource(c.Source)

				if c.Error != "" {
					if runErr == nil {
						t.Fatalf("expected error containing %q, got none; stdout %q", c.Error, out.String())
					}
					if !strings.Contains(runErr.Error(), c.Error) {
						t.Fatalf("error %q does not contain %q", runErr.Error(), c.Error)
					}
				} else if runErr != nil {
					t.Fatalf("unexpected error: %v", runErr)
				}

				got := splitLines(out.String())
				if len(got) != len(c.Stdout) {
					t.Fatalf("stdout %q, want %q", got, c.Stdout)
				}
				for i := range c.Stdout {
					if got[i] != c.Stdout[i] {
						t.Fatalf("stdout line %d: %q, want %q", i, got[i], c.Stdout[i])
					}
				}
			})
		}
	}
}

func splitLines(s string) []string {
	trimmed := strings.TrimSuffix(s, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
