package utils

import (
	"os"
)

// EnsureDir legt ein Verzeichnis samt Eltern-Verzeichnissen an,
// falls es noch nicht existiert.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists prüft, ob unter dem Pfad eine Datei existiert.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
