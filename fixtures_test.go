package fixtures_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildTool compiles mdannotate into a temp directory.
func buildTool(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "mdannotate")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/mdannotate")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build mdannotate: %v\n%s", err, output)
	}
	return binary
}

// run executes a mdannotate command with text on stdin.
func run(t *testing.T, binary string, text []byte, args ...string) []byte {
	t.Helper()
	args = append([]string{"--config", filepath.Join("fixtures", "mdannotate.toml")}, args...)
	cmd := exec.Command(binary, args...)
	cmd.Stdin = bytes.NewReader(text)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Fatalf("tool failed: %v\nstderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("tool failed: %v", err)
	}
	return out
}

// TestFixtures runs every fixture. Fixtures are organized as
// fixtures/<command>/<name>.txt with labels in <name>.labels.yaml.
// render fixtures compare against <name>.out.html; compact fixtures check
// that compacting twice changes nothing.
func TestFixtures(t *testing.T) {
	inputs, err := filepath.Glob("fixtures/*/*.txt")
	if err != nil {
		t.Fatalf("failed to glob fixtures: %v", err)
	}
	if len(inputs) == 0 {
		t.Fatal("no fixtures found")
	}

	binary := buildTool(t)

	for _, inputPath := range inputs {
		dir := filepath.Dir(inputPath)
		command := filepath.Base(dir)
		name := strings.TrimSuffix(filepath.Base(inputPath), ".txt")
		labelsPath := filepath.Join(dir, name+".labels.yaml")

		text, err := os.ReadFile(inputPath)
		if err != nil {
			t.Fatalf("failed to read input: %v", err)
		}

		switch command {
		case "render":
			t.Run(command+"/"+name, func(t *testing.T) {
				expected, err := os.ReadFile(filepath.Join(dir, name+".out.html"))
				if err != nil {
					t.Fatalf("failed to read expected output: %v", err)
				}
				actual := run(t, binary, text, "render", "--labels", labelsPath)
				if !bytes.Equal(actual, expected) {
					t.Errorf("output mismatch\n--- expected\n%s\n--- actual\n%s", expected, actual)
				}
			})

		case "compact":
			// T(T(labels)) should equal T(labels)
			t.Run(command+"/"+name+"/idempotent", func(t *testing.T) {
				firstPass := run(t, binary, text, "compact", "--labels", labelsPath)

				compacted := filepath.Join(t.TempDir(), "labels.yaml")
				if err := os.WriteFile(compacted, firstPass, 0644); err != nil {
					t.Fatal(err)
				}
				secondPass := run(t, binary, text, "compact", "--labels", compacted)

				if !bytes.Equal(secondPass, firstPass) {
					t.Errorf("not idempotent\n--- first pass\n%s\n--- second pass\n%s", firstPass, secondPass)
				}
			})

		default:
			t.Run(command+"/"+name, func(t *testing.T) {
				t.Skipf("no fixture runner for %s", command)
			})
		}
	}
}

// TestApplyAndRemove drives a full labeling session through the CLI.
func TestApplyAndRemove(t *testing.T) {
	binary := buildTool(t)
	text := []byte("hello world\n")
	labels := filepath.Join(t.TempDir(), "labels.yaml")

	run(t, binary, text, "apply", "--labels", labels, "--label", "A", "--start", "1", "--end", "3", "-w")
	// chunks are now "h", "el", "lo world\n"; select "llo" right to left
	run(t, binary, text, "apply", "--labels", labels, "--label", "B", "--anchor", "2:2", "--focus", "1:1", "-w")

	html := string(run(t, binary, text, "render", "--labels", labels))
	for _, want := range []string{`data-start="1" data-end="2">e`, `data-start="2" data-end="3">l`, `data-start="3" data-end="5">lo`} {
		if !strings.Contains(html, want) {
			t.Fatalf("render output missing %q:\n%s", want, html)
		}
	}

	// remove everything inside [1,3): drops A, keeps the overlapping B
	run(t, binary, text, "remove", "--labels", labels, "--start", "1", "--end", "3", "-w")
	out := string(mustRead(t, labels))
	if strings.Contains(out, "label: A") || !strings.Contains(out, "label: B") {
		t.Fatalf("unexpected labels after remove:\n%s", out)
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
