package dataset

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeAll reads r to the end and returns UTF-8 text. A leading byte order
// mark is stripped. Input that is not valid UTF-8 is treated as CP949, the
// legacy encoding some of the upstream exports arrive in. Every table passes
// through this one decoder.
func decodeAll(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding cp949: %w", err)
	}

	return decoded, nil
}
