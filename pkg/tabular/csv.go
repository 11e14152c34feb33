package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/lifetable/pkg/errors"
)

// Encoding identifies one entry in the decode fallback chain.
type Encoding string

// Supported text encodings, in the order sources are known to ship them.
const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF8BOM Encoding = "utf-8-sig"
	EncodingLatin1  Encoding = "latin-1"
)

// DefaultEncodings is the standard fallback chain for source files.
var DefaultEncodings = []Encoding{EncodingUTF8, EncodingUTF8BOM, EncodingLatin1}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV decodes a CSV file into a Table, attempting each encoding in order
// until one succeeds. Exhausting the list is a DecodeError; a missing or
// unreadable file wraps ErrSourceUnavailable. The file handle is closed on
// every path.
func ReadCSV(path string, encodings ...Encoding) (*Table, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapResource(errors.ErrSourceUnavailable, "file", path)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WrapResource(errors.ErrSourceUnavailable, "file", path)
	}

	for _, enc := range encodings {
		text, ok := decode(raw, enc)
		if !ok {
			continue
		}
		return parseCSV(text)
	}

	names := make([]string, len(encodings))
	for i, enc := range encodings {
		names[i] = string(enc)
	}
	return nil, errors.NewDecodeError(path, names)
}

// decode attempts a single encoding. UTF-8 variants reject invalid byte
// sequences the way a strict decoder would; Latin-1 accepts any byte stream.
func decode(raw []byte, enc Encoding) ([]byte, bool) {
	switch enc {
	case EncodingUTF8:
		// A BOM-prefixed file belongs to the utf-8-sig tier; accepting it
		// here would leave U+FEFF glued to the first header.
		if bytes.HasPrefix(raw, utf8BOM) || !utf8.Valid(raw) {
			return nil, false
		}
		return raw, true
	case EncodingUTF8BOM:
		trimmed := bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(trimmed) {
			return nil, false
		}
		return trimmed, true
	case EncodingLatin1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, false
		}
		return decoded, true
	default:
		return nil, false
	}
}

func parseCSV(text []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1 // tolerate ragged rows
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, err
	}

	table := New(header)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Append(record)
	}
	return table, nil
}
