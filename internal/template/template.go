// Package template validates Word templates against the required set of
// paragraph styles.
//
// A .dotx/.docx file is an OOXML container: a zip archive whose
// word/styles.xml part declares the named styles. Only that part is read;
// the template is never modified.
package template

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// StylesPartName is the archive path of the styles part.
const StylesPartName = "word/styles.xml"

// RequiredStyles is the closed, hardcoded set of paragraph styles a template
// must define. It is independent of any input or configuration.
var RequiredStyles = []string{
	"Heading 1",
	"Heading 2",
	"Heading 3",
	"Normal",
	"Quote",
	"Reference",
	"List Bullet",
	"List Number",
}

// UnreadableError means the file could not be parsed as a Word template.
type UnreadableError struct {
	Path string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("template %s is unreadable: %v", e.Path, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// StyleCheck records presence of one required style.
type StyleCheck struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// Report is the per-style presence report for one template. It is computed
// fresh on every call, never cached across uploads.
type Report struct {
	Styles []StyleCheck `json:"styles"`
}

// Valid reports whether every required style is present.
func (r *Report) Valid() bool {
	for _, s := range r.Styles {
		if !s.Present {
			return false
		}
	}
	return true
}

// Missing returns the names of absent required styles.
func (r *Report) Missing() []string {
	var out []string
	for _, s := range r.Styles {
		if !s.Present {
			out = append(out, s.Name)
		}
	}
	return out
}

// Validate checks the template at path against RequiredStyles.
// It fails with *UnreadableError when the file is not a readable template.
func Validate(path string) (*Report, error) {
	names, err := paragraphStyleNames(path)
	if err != nil {
		return nil, &UnreadableError{Path: path, Err: err}
	}

	// Word stores built-in style names lowercased ("heading 1"), so
	// matching is case-insensitive.
	defined := make(map[string]bool, len(names))
	for _, n := range names {
		defined[strings.ToLower(n)] = true
	}

	report := &Report{}
	for _, want := range RequiredStyles {
		report.Styles = append(report.Styles, StyleCheck{Name: want, Present: defined[strings.ToLower(want)]})
	}
	return report, nil
}

// StylesPart returns the raw word/styles.xml bytes so an exporter can carry
// the template's styles into a generated document.
func StylesPart(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &UnreadableError{Path: path, Err: err}
	}
	defer zr.Close()

	f, err := findPart(&zr.Reader, StylesPartName)
	if err != nil {
		return nil, &UnreadableError{Path: path, Err: err}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &UnreadableError{Path: path, Err: err}
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// paragraphStyleNames extracts the declared paragraph style names.
func paragraphStyleNames(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening container: %w", err)
	}
	defer zr.Close()

	f, err := findPart(&zr.Reader, StylesPartName)
	if err != nil {
		return nil, err
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", StylesPartName, err)
	}
	defer rc.Close()

	return parseStyleNames(rc)
}

func findPart(zr *zip.Reader, name string) (*zip.File, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("missing %s part", name)
}

// stylesXML mirrors the subset of the styles part we care about. Element and
// attribute tags match local names, so the w: namespace prefix is irrelevant.
type stylesXML struct {
	Styles []struct {
		Type string `xml:"type,attr"`
		Name struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func parseStyleNames(r io.Reader) ([]string, error) {
	var doc stylesXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", StylesPartName, err)
	}

	var names []string
	for _, s := range doc.Styles {
		// Character/table/numbering styles do not satisfy paragraph
		// style requirements.
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		if s.Name.Val != "" {
			names = append(names, s.Name.Val)
		}
	}
	return names, nil
}
