package salesforce

// FieldDescriptor beschreibt ein Feld aus der Describe-Antwort der sf CLI.
// ReferenceTo ist nur bei Lookup-Feldern gefüllt und nennt die Zielobjekte.
type FieldDescriptor struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	ReferenceTo []string `json:"referenceTo,omitempty"`
}

// ExportJob bündelt alles, was ein einzelner Bulk-Export braucht.
// Lebt nur für die Dauer einer Objekt-Iteration.
type ExportJob struct {
	ObjectName string `json:"object_name"`
	Query      string `json:"query"`
	OutputPath string `json:"output_path"`
}

// RunStats zählt die Ergebnisse eines Export-Laufs.
type RunStats struct {
	Exported int
	Skipped  int
	Failed   int
}
