package cli

import (
	"flag"
	"fmt"
	"os"

	"hufschlaeger.net/sfdc-account-exporter/internal/config"
)

func ParseFlags() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	// Usage auch nach einem Reset von flag.CommandLine (Tests) setzen
	flag.Usage = printUsage
	flag.CommandLine.Usage = printUsage

	var objects string

	flag.StringVar(&cfg.SfPath, "sf-path", cfg.SfPath, "Pfad zur sf CLI")
	flag.StringVar(&cfg.TargetOrg, "target-org", cfg.TargetOrg, "Salesforce Ziel-Org")
	flag.StringVar(&objects, "objects", "", "Komma-getrennte Objektliste (z.B. 'Account,Contact')")
	flag.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "Verzeichnis für die Exportdateien")
	flag.IntVar(&cfg.WaitMinutes, "wait", cfg.WaitMinutes, "Wartezeit für den Bulk-Export in Minuten")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Debug-Ausgaben aktivieren")

	flag.Parse()

	// CLI-Flag überschreibt die Objektliste aus der Umgebung
	if objects != "" {
		cfg.Objects = config.SplitObjects(objects)
	}

	if err := cfg.Validate(); err != nil {
		flag.Usage()
		return nil, err
	}

	return cfg, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Salesforce Account-Lookup Exporter

Usage: %s [OPTIONS]

Beispiele:
  # Standard-Objektliste gegen PROD exportieren
  %s

  # Nur bestimmte Objekte gegen eine Sandbox
  %s -objects "Contact,Case" -target-org SANDBOX

  # Eigener CLI-Pfad und Export-Verzeichnis
  %s -sf-path /usr/local/bin/sf -export-dir ./exports

Optionen:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment Variables:
  SF_CLI_PATH           Pfad zur sf CLI (Standard: sf)
  SF_TARGET_ORG         Ziel-Org (Standard: PROD)
  SF_OBJECTS            Komma-getrennte Objektliste
  EXPORT_DIR            Export-Verzeichnis (Standard: ./exports)
  EXPORT_WAIT_MINUTES   Wartezeit in Minuten (Standard: 30)
`)
}
