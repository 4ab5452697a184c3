package docx

// Static OOXML parts for the minimal package the exporter writes.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

// defaultStylesXML declares the same closed style set the template validator
// requires, so documents exported without a template still carry it.
var defaultStylesXML = xmlHeader + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	styleDecl("Normal", "Normal", "") +
	styleDecl("Heading1", "Heading 1", "Normal") +
	styleDecl("Heading2", "Heading 2", "Normal") +
	styleDecl("Heading3", "Heading 3", "Normal") +
	styleDecl("Quote", "Quote", "Normal") +
	styleDecl("Reference", "Reference", "Normal") +
	styleDecl("ListBullet", "List Bullet", "Normal") +
	styleDecl("ListNumber", "List Number", "Normal") +
	`</w:styles>`

// styleDecl builds one paragraph style declaration.
func styleDecl(id, name, basedOn string) string {
	decl := `<w:style w:type="paragraph" w:styleId="` + id + `"><w:name w:val="` + name + `"/>`
	if basedOn != "" {
		decl += `<w:basedOn w:val="` + basedOn + `"/>`
	}
	return decl + `</w:style>`
}
