package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ooxmlText collects the text runs (<w:t>, <a:t>) of an Office Open XML part,
// one paragraph per <w:p> or <a:p>.
func ooxmlText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var paragraphs []string
	var cur strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br":
				cur.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs = append(paragraphs, cur.String())
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	paragraphs = append(paragraphs, cur.String())
	return joinParagraphs(paragraphs), nil
}
