// Package ingest turns FAA release files and ad-hoc data drops into
// normalized records and writes them to the reference store.
//
// The pipeline is parse → normalize → upsert. Parsers yield rows lazily and
// absorb per-row damage (bad encoding, short rows, junk values) into
// counters instead of failing the file; only file-level problems (missing
// file, undecodable bytes) abort a single file, and even those never abort
// a directory run.
package ingest

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/skyfly/aircraftdb/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw file bytes into UTF-8 text by trying a fixed
// cascade of encodings and accepting the first one that decodes the whole
// file cleanly:
//
//	UTF-8 with BOM → UTF-8 → Windows-1252 → ISO-8859-1
//
// Windows-1252 comes before ISO-8859-1 because the FAA release uses its
// printable 0x80–0x9F range (smart quotes in owner names); ISO-8859-1
// would accept those bytes as control characters and shadow the better
// decode. If no encoding fits, the whole file fails with an ingestion
// error naming it.
func DecodeText(data []byte, filename string) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
		if utf8.Valid(data) {
			return string(data), nil
		}
		// BOM on a non-UTF-8 body: keep going down the cascade.
	} else if utf8.Valid(data) {
		return string(data), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		if text, ok := decodeCharmap(data, cm); ok {
			return text, nil
		}
	}

	return "", errors.Ingestionf("no supported encoding decodes %s", filename)
}

// decodeCharmap decodes strictly: a byte the charmap leaves undefined comes
// back as U+FFFD, and one replacement rune fails the whole attempt.
func decodeCharmap(data []byte, cm *charmap.Charmap) (string, bool) {
	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	text := string(decoded)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}
