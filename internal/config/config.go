package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultObjects sind die Salesforce-Objekte, die ohne eigene
// Konfiguration verarbeitet werden.
var DefaultObjects = []string{"Account", "Contact", "Case", "Opportunity", "Order", "Asset"}

type Config struct {
	SfPath      string
	TargetOrg   string
	Objects     []string
	ExportDir   string
	WaitMinutes int
	Verbose     bool
}

func NewConfig() (*Config, error) {
	// .env laden (ignoriere Fehler wenn Datei nicht existiert)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("⚠️  Warnung beim Laden der .env: %v\n", err)
	}

	cfg := &Config{
		SfPath:      getEnv("SF_CLI_PATH", "sf"),
		TargetOrg:   getEnv("SF_TARGET_ORG", "PROD"),
		Objects:     SplitObjects(getEnv("SF_OBJECTS", strings.Join(DefaultObjects, ","))),
		ExportDir:   getEnv("EXPORT_DIR", "./exports"),
		WaitMinutes: getIntEnv("EXPORT_WAIT_MINUTES", 30),
		Verbose:     getBoolEnv("VERBOSE", false),
	}

	if cfg.Verbose {
		cfg.printDebugInfo()
	}

	return cfg, nil
}

func (c *Config) printDebugInfo() {
	fmt.Printf("🔧 Configuration loaded:\n")
	fmt.Printf("   SF CLI Path: %s\n", c.SfPath)
	fmt.Printf("   Target Org: %s\n", c.TargetOrg)
	fmt.Printf("   Objects: %s\n", strings.Join(c.Objects, ", "))
	fmt.Printf("   Export Dir: %s\n", c.ExportDir)
	fmt.Printf("   Wait Minutes: %d\n", c.WaitMinutes)
}

// SplitObjects zerlegt eine komma-getrennte Objektliste und
// entfernt Leerzeichen sowie leere Einträge.
func SplitObjects(raw string) []string {
	var objects []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			objects = append(objects, trimmed)
		}
	}
	return objects
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SfPath == "" {
		return fmt.Errorf("sf CLI Pfad fehlt (SF_CLI_PATH)")
	}
	if c.TargetOrg == "" {
		return fmt.Errorf("ziel-Org fehlt (SF_TARGET_ORG)")
	}
	if len(c.Objects) == 0 {
		return fmt.Errorf("keine Objekte konfiguriert (SF_OBJECTS)")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export-Verzeichnis fehlt (EXPORT_DIR)")
	}
	if c.WaitMinutes <= 0 {
		return fmt.Errorf("wartezeit muss größer 0 sein (EXPORT_WAIT_MINUTES)")
	}
	return nil
}

// DescribeFilePath liefert den Ablageort der rohen Describe-Antwort.
func (c *Config) DescribeFilePath(object string) string {
	return filepath.Join(c.ExportDir, object+"_describe.json")
}

// ExportFilePath liefert den Zielpfad der CSV-Exportdatei.
func (c *Config) ExportFilePath(object string) string {
	return filepath.Join(c.ExportDir, object+"_export.csv")
}
