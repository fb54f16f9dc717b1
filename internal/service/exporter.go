package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"hufschlaeger.net/sfdc-account-exporter/internal/config"
	sfDomain "hufschlaeger.net/sfdc-account-exporter/internal/domain/salesforce"
	sfRepo "hufschlaeger.net/sfdc-account-exporter/internal/repository/salesforce"
	"hufschlaeger.net/sfdc-account-exporter/pkg/utils"
)

// ReferenceTarget ist der Objekttyp, dessen Lookup-Felder exportiert werden.
const ReferenceTarget = "Account"

// SalesforceClient beschreibt die beiden sf-CLI-Aufrufe, die der
// Exporter braucht.
type SalesforceClient interface {
	Describe(object string) ([]byte, error)
	ExportBulk(job sfDomain.ExportJob, waitMinutes int) (int, error)
}

type Exporter struct {
	config *config.Config
	client SalesforceClient
	stats  sfDomain.RunStats
}

func NewExporter(cfg *config.Config) *Exporter {
	return &Exporter{
		config: cfg,
		client: sfRepo.NewClient(cfg),
	}
}

// NewExporterWithClient erlaubt Tests, den CLI-Client zu ersetzen.
func NewExporterWithClient(cfg *config.Config, client SalesforceClient) *Exporter {
	return &Exporter{
		config: cfg,
		client: client,
	}
}

// Stats liefert die Zähler des letzten Export-Laufs.
func (e *Exporter) Stats() sfDomain.RunStats {
	return e.stats
}

// Export startet den Export-Lauf über alle konfigurierten Objekte.
// Fehler bei einzelnen Objekten brechen den Lauf nicht ab - nur eine
// ungültige Konfiguration oder ein nicht anlegbares Export-Verzeichnis
// sind fatal.
func (e *Exporter) Export() error {
	// 1. Konfiguration validieren
	if err := e.config.Validate(); err != nil {
		return fmt.Errorf("konfiguration ungültig: %w", err)
	}

	// 2. Export-Verzeichnis anlegen
	if err := utils.EnsureDir(e.config.ExportDir); err != nil {
		return fmt.Errorf("export-Verzeichnis konnte nicht angelegt werden: %w", err)
	}

	runID := uuid.NewString()
	fmt.Printf("🚀 Starte Export-Lauf %s (%d Objekte)\n", runID, len(e.config.Objects))

	// 3. Objekte nacheinander verarbeiten
	for _, object := range e.config.Objects {
		fmt.Printf("\n=== Starte Export für %s ===\n", object)
		e.processObject(object)
		fmt.Printf("=== Export für %s abgeschlossen ===\n", object)
	}

	// 4. Statistik ausgeben
	fmt.Printf("\n🎉 Export-Lauf abgeschlossen:\n")
	fmt.Printf("  ✅  Exportiert: %d\n", e.stats.Exported)
	fmt.Printf("  ⏭️  Übersprungen: %d\n", e.stats.Skipped)
	fmt.Printf("  ❌  Fehlgeschlagen: %d\n", e.stats.Failed)

	return nil
}

// processObject verarbeitet ein einzelnes Objekt:
// Describe → Filter → Query → Bulk-Export → Erfolgskontrolle.
func (e *Exporter) processObject(object string) {
	// 1. Metadaten über die sf CLI holen
	describeOutput, err := e.client.Describe(object)
	if err != nil {
		fmt.Printf("⚠️  Describe fehlgeschlagen für %s: %v\n", object, err)
		e.stats.Skipped++
		return
	}

	// 2. Rohantwort zur Fehlersuche ablegen (auch wenn sie kein JSON ist)
	describePath := e.config.DescribeFilePath(object)
	if err := os.WriteFile(describePath, describeOutput, 0644); err != nil {
		fmt.Printf("⚠️  Describe-Antwort konnte nicht gespeichert werden: %v\n", err)
	} else if e.config.Verbose {
		fmt.Printf("🔧 Describe-Antwort gespeichert: %s\n", describePath)
	}

	// 3. Account-Lookup-Felder filtern
	matched := ExtractReferenceFields(describeOutput, ReferenceTarget)

	if e.config.Verbose {
		for _, field := range matched {
			fmt.Printf("🔧   Feld: %s (Typ: %s, referenziert: %s)\n",
				field.Name, fieldTypeLabel(field), strings.Join(field.ReferenceTo, ", "))
		}
	}

	fields := SelectFieldNames(matched)
	if len(fields) == 0 {
		fmt.Printf("ℹ️  Keine passenden Felder für %s gefunden\n", object)
		e.stats.Skipped++
		return
	}

	// 4. SOQL-Query bauen und Bulk-Export starten
	job := sfDomain.ExportJob{
		ObjectName: object,
		Query:      BuildQuery(object, fields),
		OutputPath: e.config.ExportFilePath(object),
	}

	fmt.Printf("📋 Query: %s\n", job.Query)

	exitCode, err := e.client.ExportBulk(job, e.config.WaitMinutes)
	if err != nil {
		fmt.Printf("⚠️  Export-Kommando fehlgeschlagen für %s: %v\n", object, err)
		e.stats.Failed++
		return
	}

	// 5. Erfolg prüfen: Exit-Code 0 UND Datei vorhanden
	if VerifyExport(exitCode, job.OutputPath) {
		fmt.Printf("✅ %s erfolgreich exportiert: %s\n", object, job.OutputPath)
		e.stats.Exported++
	} else {
		fmt.Printf("❌ Export für %s fehlgeschlagen (Exit-Code %d)\n", object, exitCode)
		e.stats.Failed++
	}
}

// VerifyExport meldet Erfolg nur, wenn das Kommando mit Exit-Code 0
// endete UND die Zieldatei existiert. Eine Datei aus einem früheren
// Lauf zählt bei Exit-Code ungleich 0 nicht als Erfolg.
func VerifyExport(exitCode int, outputPath string) bool {
	return exitCode == 0 && utils.FileExists(outputPath)
}

func fieldTypeLabel(field sfDomain.FieldDescriptor) string {
	if field.Type == "" {
		return "unknown"
	}
	return field.Type
}
