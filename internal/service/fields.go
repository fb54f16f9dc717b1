package service

import (
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	sfDomain "hufschlaeger.net/sfdc-account-exporter/internal/domain/salesforce"
)

// IDField ist das Primärschlüssel-Feld, das in jedem Export an erster
// Stelle steht.
const IDField = "Id"

// ExtractReferenceFields filtert aus einer Describe-Antwort alle Felder,
// deren referenceTo den Zieltyp enthält. Die sf CLI liefert die Feldliste
// je nach Version unter result.fields oder direkt unter fields; kaputte,
// leere oder Nicht-JSON-Antworten ergeben eine leere Liste, keinen Fehler.
func ExtractReferenceFields(data []byte, target string) []sfDomain.FieldDescriptor {
	doc, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil
	}

	fields := doc.GetArray("result", "fields")
	if fields == nil {
		fields = doc.GetArray("fields")
	}

	var matched []sfDomain.FieldDescriptor
	for _, field := range fields {
		refs := referencedTypes(field)
		if !containsString(refs, target) {
			continue
		}

		name := string(field.GetStringBytes("name"))
		if name == "" {
			continue
		}

		matched = append(matched, sfDomain.FieldDescriptor{
			Name:        name,
			Type:        string(field.GetStringBytes("type")),
			ReferenceTo: refs,
		})
	}

	return matched
}

func referencedTypes(field *fastjson.Value) []string {
	var refs []string
	for _, ref := range field.GetArray("referenceTo") {
		if value, err := ref.StringBytes(); err == nil {
			refs = append(refs, string(value))
		}
	}
	return refs
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// SelectFieldNames baut die endgültige Feldliste für die Query: Id immer
// zuerst, Duplikate entfernt, Dokument-Reihenfolge bleibt erhalten.
// Eine leere Eingabe ergibt nil - das Objekt wird dann übersprungen.
func SelectFieldNames(matched []sfDomain.FieldDescriptor) []string {
	if len(matched) == 0 {
		return nil
	}

	seen := map[string]bool{IDField: true}
	names := []string{IDField}

	for _, field := range matched {
		if seen[field.Name] {
			continue
		}
		seen[field.Name] = true
		names = append(names, field.Name)
	}

	return names
}

// BuildQuery setzt die SOQL-Query zusammen. Die Feldliste darf nicht
// leer sein - das prüft der Aufrufer vorher.
func BuildQuery(object string, fields []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), object)
}
