package catalog

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeInput normaliza el archivo subido a UTF-8 sin BOM.
// Hojas de cálculo exportadas en Windows suelen llegar en Windows-1252: si los bytes no son
// UTF-8 válido se decodifican con ese charset.
func decodeInput(data []byte) io.Reader {
	if utf8.Valid(data) {
		return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
	return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
}

// detectDelimiter elige ';' si la primera línea tiene más ';' que ',' (Excel con locale es/pt-BR).
func detectDelimiter(r *bufio.Reader) rune {
	line, _ := r.Peek(4096)
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
