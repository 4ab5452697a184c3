// Package docx serializes drafts into Word documents.
//
// A .docx file is a zip container of XML parts. The exporter writes the
// minimal part set directly: content types, package relationships, the
// document body, and a styles part (either the built-in default or one
// carried over from a validated template).
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

// Document is everything the exporter needs for one output file.
type Document struct {
	// Heading is the top-level title paragraph (the subject).
	Heading string

	// Body is the draft text; blank lines separate paragraphs.
	Body string

	// Citations are pre-formatted reference strings, one paragraph each,
	// rendered after a page break under a "References" heading.
	Citations []string

	// Styles optionally replaces the built-in styles part with a
	// template's raw word/styles.xml bytes.
	Styles []byte
}

// ExportError means document serialization failed. The caller's draft and
// citation state are unaffected and the export can be retried.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting document: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export serializes the document into a .docx byte buffer.
func Export(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	styles := doc.Styles
	if len(styles) == 0 {
		styles = []byte(defaultStylesXML)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", styles},
		{"word/document.xml", buildDocumentXML(doc, resolveStyleIDs(doc.Styles))},
	}

	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, &ExportError{Err: fmt.Errorf("creating %s: %w", p.name, err)}
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, &ExportError{Err: fmt.Errorf("writing %s: %w", p.name, err)}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &ExportError{Err: fmt.Errorf("closing container: %w", err)}
	}
	return buf.Bytes(), nil
}

// styleIDs holds the paragraph styleIds the document body references.
type styleIDs struct {
	heading   string
	normal    string
	reference string
}

// builtinStyleIDs are the ids defaultStylesXML declares.
var builtinStyleIDs = styleIDs{heading: "Heading1", normal: "Normal", reference: "Reference"}

// carriedStyles mirrors the subset of a styles part needed to map style
// names back to the ids the part declares.
type carriedStyles struct {
	Styles []struct {
		Type string `xml:"type,attr"`
		ID   string `xml:"styleId,attr"`
		Name struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

// resolveStyleIDs maps the body's style names onto the ids a carried styles
// part declares. StyleIds are locale-dependent in real templates; the style
// name is the stable handle. Names the part does not declare keep the
// built-in ids.
func resolveStyleIDs(styles []byte) styleIDs {
	ids := builtinStyleIDs
	if len(styles) == 0 {
		return ids
	}

	var part carriedStyles
	if err := xml.Unmarshal(styles, &part); err != nil {
		return ids
	}
	for _, s := range part.Styles {
		if s.ID == "" || s.Type != "" && s.Type != "paragraph" {
			continue
		}
		switch {
		case strings.EqualFold(s.Name.Val, "Heading 1"):
			ids.heading = s.ID
		case strings.EqualFold(s.Name.Val, "Normal"):
			ids.normal = s.ID
		case strings.EqualFold(s.Name.Val, "Reference"):
			ids.reference = s.ID
		}
	}
	return ids
}

// buildDocumentXML renders word/document.xml: heading, body paragraphs, a
// page break, the "References" heading, and one paragraph per citation.
func buildDocumentXML(doc Document, ids styleIDs) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	if strings.TrimSpace(doc.Heading) != "" {
		writeParagraph(&b, ids.heading, doc.Heading)
	}
	for _, para := range SplitParagraphs(doc.Body) {
		writeParagraph(&b, ids.normal, para)
	}
	if len(doc.Citations) > 0 {
		// Page break, then the reference list.
		b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		writeParagraph(&b, ids.heading, "References")
		for _, c := range doc.Citations {
			writeParagraph(&b, ids.reference, c)
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return []byte(b.String())
}

func writeParagraph(b *strings.Builder, styleID, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="`)
	b.WriteString(escapeXML(styleID))
	b.WriteString(`"/></w:pPr><w:r><w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits draft text on blank lines. Single newlines inside a
// paragraph collapse to spaces.
func SplitParagraphs(text string) []string {
	var out []string
	for _, block := range paragraphBreak.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(block), " "))
	}
	return out
}

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SafeFileName derives a filesystem-safe name from a subject string:
// runs of non-alphanumeric characters become single underscores.
func SafeFileName(subject string) string {
	name := nonAlnum.ReplaceAllString(strings.TrimSpace(subject), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "draft"
	}
	return name
}
