package manifest

import (
	"bytes"
	"strings"
)

const (
	documentHeaderConstant = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	indentUnitConstant     = "  "
)

var attributeValueEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\t", "&#x9;",
	"\n", "&#xA;",
	"\r", "&#xD;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#xD;",
)

// Encode renders the manifest as an XML document with a declaration header,
// two-space indentation, self-closing empty elements, attributes in their
// stored order, and a trailing newline. The output depends only on the tree.
func Encode(manifest *Manifest) []byte {
	var buffer bytes.Buffer
	buffer.WriteString(documentHeaderConstant)
	writeNode(&buffer, &manifest.root, 0)
	return buffer.Bytes()
}

func writeNode(buffer *bytes.Buffer, node *Node, depth int) {
	indentation := strings.Repeat(indentUnitConstant, depth)

	buffer.WriteString(indentation)
	buffer.WriteByte('<')
	buffer.WriteString(node.Name())
	for _, attribute := range node.Attributes {
		buffer.WriteByte(' ')
		buffer.WriteString(qualifiedName(attribute.Name))
		buffer.WriteString(`="`)
		buffer.WriteString(attributeValueEscaper.Replace(attribute.Value))
		buffer.WriteByte('"')
	}

	switch {
	case len(node.Children) == 0 && len(node.Text) == 0:
		buffer.WriteString("/>\n")
	case len(node.Children) == 0:
		buffer.WriteByte('>')
		buffer.WriteString(textEscaper.Replace(node.Text))
		writeEndTag(buffer, node)
	default:
		buffer.WriteString(">\n")
		if len(node.Text) > 0 {
			buffer.WriteString(indentation + indentUnitConstant)
			buffer.WriteString(textEscaper.Replace(node.Text))
			buffer.WriteByte('\n')
		}
		for childIndex := range node.Children {
			writeNode(buffer, &node.Children[childIndex], depth+1)
		}
		buffer.WriteString(indentation)
		writeEndTag(buffer, node)
	}
}

func writeEndTag(buffer *bytes.Buffer, node *Node) {
	buffer.WriteString("</")
	buffer.WriteString(node.Name())
	buffer.WriteString(">\n")
}
