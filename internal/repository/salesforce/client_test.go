package salesforce

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"hufschlaeger.net/sfdc-account-exporter/internal/config"
	sfDomain "hufschlaeger.net/sfdc-account-exporter/internal/domain/salesforce"
)

// fakeRunner records the command lines it receives and plays back canned results.
type fakeRunner struct {
	capturedCalls [][]string
	streamedCalls [][]string

	captureOutput []byte
	captureCode   int
	captureErr    error

	streamCode int
	streamErr  error
}

func (f *fakeRunner) RunCaptured(name string, args ...string) ([]byte, int, error) {
	f.capturedCalls = append(f.capturedCalls, append([]string{name}, args...))
	return f.captureOutput, f.captureCode, f.captureErr
}

func (f *fakeRunner) RunStreamed(name string, args ...string) (int, error) {
	f.streamedCalls = append(f.streamedCalls, append([]string{name}, args...))
	return f.streamCode, f.streamErr
}

func testConfig() *config.Config {
	return &config.Config{
		SfPath:      "/usr/local/bin/sf",
		TargetOrg:   "PROD",
		Objects:     []string{"Contact"},
		ExportDir:   "./exports",
		WaitMinutes: 30,
	}
}

func TestDescribe_BuildsExpectedCommandLine(t *testing.T) {
	runner := &fakeRunner{captureOutput: []byte(`{"result":{"fields":[]}}`)}
	client := NewClientWithRunner(testConfig(), runner)

	out, err := client.Describe("Contact")
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if string(out) != `{"result":{"fields":[]}}` {
		t.Errorf("unexpected output: %s", out)
	}

	if len(runner.capturedCalls) != 1 {
		t.Fatalf("expected 1 captured call, got %d", len(runner.capturedCalls))
	}
	want := "/usr/local/bin/sf force:schema:sobject:describe --target-org PROD --sobjecttype Contact --json"
	if got := strings.Join(runner.capturedCalls[0], " "); got != want {
		t.Errorf("command mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestDescribe_ReturnsOutputDespiteNonZeroExit(t *testing.T) {
	// The CLI writes error JSON to the combined stream and exits non-zero;
	// the caller still gets the bytes and decides what to do with them.
	runner := &fakeRunner{captureOutput: []byte(`{"status":1,"message":"no such object"}`), captureCode: 1}
	client := NewClientWithRunner(testConfig(), runner)

	out, err := client.Describe("Bogus")
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if !strings.Contains(string(out), "no such object") {
		t.Errorf("expected error payload passthrough, got: %s", out)
	}
}

func TestDescribe_RunnerFailureIsWrapped(t *testing.T) {
	runner := &fakeRunner{captureErr: fmt.Errorf("exec: not found")}
	client := NewClientWithRunner(testConfig(), runner)

	_, err := client.Describe("Contact")
	if err == nil || !strings.Contains(err.Error(), "describe-Kommando fehlgeschlagen") {
		t.Fatalf("expected wrapped describe error, got: %v", err)
	}
}

func TestExportBulk_BuildsExpectedCommandLine(t *testing.T) {
	runner := &fakeRunner{streamCode: 0}
	client := NewClientWithRunner(testConfig(), runner)

	job := sfDomain.ExportJob{
		ObjectName: "Contact",
		Query:      "SELECT Id, AccountId FROM Contact",
		OutputPath: "exports/Contact_export.csv",
	}

	code, err := client.ExportBulk(job, 30)
	if err != nil {
		t.Fatalf("ExportBulk returned error: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}

	if len(runner.streamedCalls) != 1 {
		t.Fatalf("expected 1 streamed call, got %d", len(runner.streamedCalls))
	}
	want := "/usr/local/bin/sf data export bulk --target-org PROD --query SELECT Id, AccountId FROM Contact --output-file exports/Contact_export.csv --wait 30"
	if got := strings.Join(runner.streamedCalls[0], " "); got != want {
		t.Errorf("command mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestExportBulk_PassesThroughExitCode(t *testing.T) {
	runner := &fakeRunner{streamCode: 68}
	client := NewClientWithRunner(testConfig(), runner)

	code, err := client.ExportBulk(sfDomain.ExportJob{}, 30)
	if err != nil {
		t.Fatalf("ExportBulk returned error: %v", err)
	}
	if code != 68 {
		t.Errorf("expected exit code 68, got %d", code)
	}
}

// Helper process used by the execRunner tests below. It prints a marker and
// exits with the code requested via environment variable.
func TestHelperProcess_Runner(t *testing.T) {
	if os.Getenv("GO_WANT_RUNNER_HELPER") != "1" {
		return
	}

	fmt.Fprint(os.Stdout, "RUNNER_STDOUT")
	fmt.Fprint(os.Stderr, "RUNNER_STDERR")

	code := 0
	if os.Getenv("GO_RUNNER_EXIT") == "3" {
		code = 3
	}
	os.Exit(code)
}

func runnerHelperCommand() (string, []string, []string) {
	env := append(os.Environ(), "GO_WANT_RUNNER_HELPER=1")
	return os.Args[0], []string{"-test.run", "TestHelperProcess_Runner"}, env
}

func TestExecRunner_RunCaptured_CombinesOutput(t *testing.T) {
	name, args, env := runnerHelperCommand()

	cmd := exec.Command(name, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("sanity run failed: %v", err)
	}
	if !strings.Contains(string(out), "RUNNER_STDOUT") || !strings.Contains(string(out), "RUNNER_STDERR") {
		t.Fatalf("helper process does not behave as expected: %s", out)
	}

	// Now through the runner itself, with a non-zero exit code.
	t.Setenv("GO_WANT_RUNNER_HELPER", "1")
	t.Setenv("GO_RUNNER_EXIT", "3")

	output, code, err := execRunner{}.RunCaptured(name, args...)
	if err != nil {
		t.Fatalf("RunCaptured returned error: %v", err)
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
	if !strings.Contains(string(output), "RUNNER_STDOUT") || !strings.Contains(string(output), "RUNNER_STDERR") {
		t.Errorf("expected combined output, got: %s", output)
	}
}

func TestExecRunner_RunStreamed_ReportsExitCode(t *testing.T) {
	name, args, _ := runnerHelperCommand()

	t.Setenv("GO_WANT_RUNNER_HELPER", "1")
	t.Setenv("GO_RUNNER_EXIT", "3")

	code, err := execRunner{}.RunStreamed(name, args...)
	if err != nil {
		t.Fatalf("RunStreamed returned error: %v", err)
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
}

func TestExecRunner_MissingBinaryIsAnError(t *testing.T) {
	_, _, err := execRunner{}.RunCaptured("/nonexistent/sf-cli-binary")
	if err == nil {
		t.Fatalf("expected start error for missing binary")
	}

	if _, err := (execRunner{}).RunStreamed("/nonexistent/sf-cli-binary"); err == nil {
		t.Fatalf("expected start error for missing binary")
	}
}
