package salesforce

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"hufschlaeger.net/sfdc-account-exporter/internal/config"
	sfDomain "hufschlaeger.net/sfdc-account-exporter/internal/domain/salesforce"
)

// CommandRunner abstrahiert die Prozess-Ausführung, damit Tests eine
// Fake-Implementierung einsetzen können. Ein Exit-Code ungleich 0 ist
// kein Fehler - der Fehler-Rückgabewert meldet nur, dass der Prozess
// gar nicht gestartet werden konnte.
type CommandRunner interface {
	// RunCaptured führt das Kommando aus und liefert stdout und stderr
	// gemeinsam als Bytes zurück.
	RunCaptured(name string, args ...string) ([]byte, int, error)
	// RunStreamed führt das Kommando aus und reicht die Ausgabe direkt
	// ans Terminal durch.
	RunStreamed(name string, args ...string) (int, error)
}

type execRunner struct{}

func (execRunner) RunCaptured(name string, args ...string) ([]byte, int, error) {
	cmd := exec.Command(name, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return nil, -1, fmt.Errorf("kommando konnte nicht gestartet werden: %w", err)
	}

	return output, 0, nil
}

func (execRunner) RunStreamed(name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("kommando konnte nicht gestartet werden: %w", err)
	}

	return 0, nil
}

type Client struct {
	config *config.Config
	runner CommandRunner
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		runner: execRunner{},
	}
}

// NewClientWithRunner erlaubt Tests, die Prozess-Ausführung zu ersetzen.
func NewClientWithRunner(cfg *config.Config, runner CommandRunner) *Client {
	return &Client{
		config: cfg,
		runner: runner,
	}
}

// Describe holt die Feld-Metadaten eines Objekts über die sf CLI.
// stdout und stderr werden gemeinsam zurückgegeben, auch bei Exit-Code
// ungleich 0 - ob die Antwort brauchbar ist, entscheidet der Parser.
func (c *Client) Describe(object string) ([]byte, error) {
	args := []string{
		"force:schema:sobject:describe",
		"--target-org", c.config.TargetOrg,
		"--sobjecttype", object,
		"--json",
	}

	c.logCommand(args)

	output, _, err := c.runner.RunCaptured(c.config.SfPath, args...)
	if err != nil {
		return nil, fmt.Errorf("describe-Kommando fehlgeschlagen: %w", err)
	}

	return output, nil
}

// ExportBulk startet den asynchronen Bulk-Export über die sf CLI.
// Die CLI pollt den Job selbst und schreibt die CSV-Datei; ihre Ausgabe
// läuft direkt ins Terminal, damit der Fortschritt sichtbar bleibt.
func (c *Client) ExportBulk(job sfDomain.ExportJob, waitMinutes int) (int, error) {
	args := []string{
		"data", "export", "bulk",
		"--target-org", c.config.TargetOrg,
		"--query", job.Query,
		"--output-file", job.OutputPath,
		"--wait", strconv.Itoa(waitMinutes),
	}

	c.logCommand(args)

	exitCode, err := c.runner.RunStreamed(c.config.SfPath, args...)
	if err != nil {
		return -1, fmt.Errorf("export-Kommando fehlgeschlagen: %w", err)
	}

	return exitCode, nil
}

func (c *Client) logCommand(args []string) {
	if !c.config.Verbose {
		return
	}
	fmt.Printf("🔧 Kommando: %s %s\n", c.config.SfPath, strings.Join(args, " "))
}
