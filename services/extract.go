package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText convertit les octets d'un fichier en texte brut selon son type
// MIME. PDF via ledongthuc/pdf (ordre des pages conservé, pas de mise en page),
// text/* et application/json décodés tels quels. Tout autre type échoue avec
// ErrUnsupportedMediaType. Aucune limite de taille ici : c'est l'appelant qui
// borne le fichier.
func ExtractText(data []byte, mediaType string) (string, error) {
	switch {
	case mediaType == "application/pdf":
		return extractTextFromPDF(data)
	case strings.HasPrefix(mediaType, "text/") || mediaType == "application/json":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return textBuilder.String(), nil
}
