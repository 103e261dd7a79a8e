package cli

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func withoutAwardedaEnv() []string {
	out := make([]string, 0, len(os.Environ()))
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "AWARDEDA_") {
			continue
		}
		out = append(out, e)
	}
	return out
}

func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	// internal/cli -> repo root
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func goExe() string {
	if runtime.GOOS == "windows" {
		return "go.exe"
	}
	return "go"
}

func buildAwardedaBinary(t *testing.T) string {
	t.Helper()

	outPath := filepath.Join(t.TempDir(), "awardeda-test")
	if runtime.GOOS == "windows" {
		outPath += ".exe"
	}

	cmd := exec.Command(goExe(), "build", "-o", outPath, "./cmd/awardeda")
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build awardeda binary: %v; output=%s", err, string(out))
	}

	return outPath
}

func exitCode(t *testing.T, err error, out []byte) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T: %v; output=%s", err, err, string(out))
	}
	return exitErr.ProcessState.ExitCode()
}

func TestRoot_NoArgs_MissingDefaultInput_PrintsNoData(t *testing.T) {
	binary := buildAwardedaBinary(t)
	dir := t.TempDir()
	cmd := exec.Command(binary)
	cmd.Dir = dir
	cmd.Env = withoutAwardedaEnv()

	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code != 0 {
		t.Fatalf("expected exit code 0, got %d; output=%s", code, string(out))
	}
	if !strings.Contains(string(out), "No data to display.") {
		t.Fatalf("expected no-data message; output=%s", string(out))
	}
	if _, err := os.Stat(filepath.Join(dir, "output")); !os.IsNotExist(err) {
		t.Fatalf("no output directory should be created; stat err = %v", err)
	}
}

func TestRoot_ExitCode3_WhenTopInvalid(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary, "--top", "0")
	cmd.Dir = t.TempDir()
	cmd.Env = withoutAwardedaEnv()

	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code != 3 {
		t.Fatalf("expected exit code 3, got %d; output=%s", code, string(out))
	}
	if !strings.Contains(string(out), "--top must be >= 1") {
		t.Fatalf("expected validation message; output=%s", string(out))
	}
}

func TestRoot_ExitCode3_WhenOutFormatCannotBeInferred(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary, "--out", "results.unknown")
	cmd.Dir = t.TempDir()
	cmd.Env = withoutAwardedaEnv()

	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code != 3 {
		t.Fatalf("expected exit code 3, got %d; output=%s", code, string(out))
	}
	if !strings.Contains(string(out), "cannot infer output format") {
		t.Fatalf("expected output format inference error; output=%s", string(out))
	}
}

func TestRoot_EnvOverridesDefaults(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary)
	cmd.Dir = t.TempDir()
	cmd.Env = append(withoutAwardedaEnv(), "AWARDEDA_REPORT_TOP=0")

	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code != 3 {
		t.Fatalf("expected exit code 3 from AWARDEDA_REPORT_TOP=0, got %d; output=%s", code, string(out))
	}
}

func TestRoot_Help_DocumentsOutputAndExitCodes(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary, "--help")

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("expected zero exit; err=%v; output=%s", err, string(out))
	}

	s := string(out)
	required := []string{
		"Output:",
		"Exit codes:",
		"NDJSON mode emits",
		"run.started",
		"artifact.written",
		"run.finished",
		"--export-sqlite",
	}
	for _, r := range required {
		if !strings.Contains(s, r) {
			t.Fatalf("expected --help to contain %q; output=%s", r, s)
		}
	}
}

func TestStepsList_Quiet(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary, "steps", "list", "-q")
	cmd.Env = withoutAwardedaEnv()

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("expected zero exit; err=%v; output=%s", err, string(out))
	}
	got := strings.Fields(string(out))
	want := []string{"drop-missing-required", "trim-whitespace", "drop-duplicates"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("steps list -q = %v, want %v", got, want)
	}
}

func TestStepsShow_Unknown(t *testing.T) {
	binary := buildAwardedaBinary(t)
	cmd := exec.Command(binary, "steps", "show", "nope")
	cmd.Env = withoutAwardedaEnv()

	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code == 0 {
		t.Fatalf("expected non-zero exit; output=%s", string(out))
	}
	if !strings.Contains(string(out), "step not found: nope") {
		t.Fatalf("expected not-found message; output=%s", string(out))
	}
}

func TestSubcommands_IgnoreBrokenConfigFile(t *testing.T) {
	binary := buildAwardedaBinary(t)
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "awardeda.yaml")
	if err := os.WriteFile(badConfig, []byte("report: [unclosed\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	for _, args := range [][]string{{"version"}, {"steps", "list", "-q"}, {"steps", "show", "trim-whitespace"}} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			cmd := exec.Command(binary, args...)
			cmd.Dir = dir
			cmd.Env = append(withoutAwardedaEnv(), "AWARDEDA_CONFIG="+badConfig)

			out, err := cmd.CombinedOutput()
			if code := exitCode(t, err, out); code != 0 {
				t.Fatalf("expected exit code 0, got %d; output=%s", code, string(out))
			}
		})
	}

	// The pipeline itself still reads the file and rejects it.
	cmd := exec.Command(binary)
	cmd.Dir = dir
	cmd.Env = append(withoutAwardedaEnv(), "AWARDEDA_CONFIG="+badConfig)
	out, err := cmd.CombinedOutput()
	if code := exitCode(t, err, out); code != 3 {
		t.Fatalf("expected exit code 3 for a broken config file, got %d; output=%s", code, string(out))
	}
	if !strings.Contains(string(out), "failed to parse config file") {
		t.Fatalf("expected parse error; output=%s", string(out))
	}
}
