package pdf

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor turns a raw PDF document into plain text. The extraction
// pipeline treats it as an external capability: implementations must degrade
// to an empty string rather than propagate a fault.
type TextExtractor interface {
	ExtractText(data []byte) string
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(data []byte) string {
	defer func() {
		// the pdf package panics on some malformed inputs
		recover()
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}
