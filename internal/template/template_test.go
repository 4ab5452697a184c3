package template

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTemplate builds a minimal OOXML container declaring the given
// paragraph styles and writes it to a temp file.
func writeTemplate(t *testing.T, styles []string, extraParts map[string]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	for _, name := range styles {
		b.WriteString(`<w:style w:type="paragraph" w:styleId="` + strings.ReplaceAll(name, " ", "") + `">`)
		b.WriteString(`<w:name w:val="` + name + `"/></w:style>`)
	}
	b.WriteString(`</w:styles>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{StylesPartName: b.String()}
	for name, data := range extraParts {
		parts[name] = data
	}
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating part %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("writing part %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "template.dotx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing template: %v", err)
	}
	return path
}

func TestValidate_AllStylesPresent(t *testing.T) {
	path := writeTemplate(t, RequiredStyles, nil)

	report, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid() {
		t.Errorf("Valid() = false, missing %v", report.Missing())
	}
	if len(report.Styles) != len(RequiredStyles) {
		t.Errorf("report has %d styles, want %d", len(report.Styles), len(RequiredStyles))
	}
}

func TestValidate_LowercaseBuiltinNames(t *testing.T) {
	// Word-authored templates store built-in style names lowercased.
	styles := []string{
		"heading 1", "heading 2", "heading 3", "Normal",
		"Quote", "Reference", "List Bullet", "List Number",
	}
	path := writeTemplate(t, styles, nil)

	report, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid() {
		t.Errorf("Valid() = false for lowercase built-in names, missing %v", report.Missing())
	}
}

func TestValidate_MissingStyles(t *testing.T) {
	path := writeTemplate(t, []string{"Heading 1", "Normal"}, nil)

	report, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Valid() {
		t.Error("Valid() = true for template missing styles")
	}

	missing := report.Missing()
	for _, want := range []string{"Quote", "Reference", "List Bullet"} {
		found := false
		for _, m := range missing {
			if m == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Missing() should contain %q, got %v", want, missing)
		}
	}
}

func TestValidate_NonParagraphStylesDoNotCount(t *testing.T) {
	// Declare "Quote" as a character style only.
	var b strings.Builder
	b.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	b.WriteString(`<w:style w:type="character" w:styleId="Quote"><w:name w:val="Quote"/></w:style>`)
	b.WriteString(`</w:styles>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create(StylesPartName)
	w.Write([]byte(b.String()))
	zw.Close()

	path := filepath.Join(t.TempDir(), "template.dotx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing template: %v", err)
	}

	report, err := Validate(path)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	for _, s := range report.Styles {
		if s.Name == "Quote" && s.Present {
			t.Error("character style should not satisfy the paragraph style requirement")
		}
	}
}

func TestValidate_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dotx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	_, err := Validate(path)
	var unreadable *UnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("Validate() error = %v, want *UnreadableError", err)
	}
}

func TestValidate_MissingStylesPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<doc/>"))
	zw.Close()

	path := filepath.Join(t.TempDir(), "nostyles.dotx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	var unreadable *UnreadableError
	if _, err := Validate(path); !errors.As(err, &unreadable) {
		t.Fatalf("Validate() error = %v, want *UnreadableError", err)
	}
}

func TestStylesPart_RoundTrip(t *testing.T) {
	path := writeTemplate(t, []string{"Normal"}, nil)

	data, err := StylesPart(path)
	if err != nil {
		t.Fatalf("StylesPart() error = %v", err)
	}
	if !strings.Contains(string(data), `w:val="Normal"`) {
		t.Errorf("StylesPart() should return the raw styles xml, got %q", data)
	}
}
