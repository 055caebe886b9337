// Package archive assembles generated documents, binary assets and the
// machine-readable manifest into one compressed container with a
// deterministic internal layout.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"

	"snag/audius/types"
	"snag/config"
)

// ManifestFileName is the fixed name of the first file in every archive.
const ManifestFileName = "metadata.json"

// EmptyArchiveError reports a zero-byte compressed result. A successfully
// hydrated graph should never produce one.
type EmptyArchiveError struct{}

func (e *EmptyArchiveError) Error() string {
	return "generated archive is empty"
}

// Manifest is written once and never mutated. Content and Artist are the
// verbatim response bytes of the embedded entities.
type Manifest struct {
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	Artist    json.RawMessage `json:"artist"`
	Timestamp string          `json:"timestamp"`
}

// Entry is a single file in the archive. Entries are written in the order
// given, after the manifest.
type Entry struct {
	Path string
	Body []byte
}

type Builder struct {
	level int
}

func NewBuilder(conf config.Archive) *Builder {
	return &Builder{level: conf.CompressionLevel}
}

// Build writes the manifest under its fixed name first, then every entry in
// order, and compresses the whole tree at one fixed level.
func (b *Builder) Build(logger zerolog.Logger, manifest Manifest, entries []Entry) ([]byte, error) {
	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if nil != err {
		return nil, fmt.Errorf("failed to marshal manifest: %v", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, b.level)
	})

	files := make([]Entry, 0, len(entries)+1)
	files = append(files, Entry{Path: ManifestFileName, Body: manifestBytes})
	files = append(files, entries...)

	for _, f := range files {
		w, err := zw.Create(f.Path)
		if nil != err {
			return nil, fmt.Errorf("failed to create archive entry %q: %v", f.Path, err)
		}

		if _, err := w.Write(f.Body); nil != err {
			return nil, fmt.Errorf("failed to write archive entry %q: %v", f.Path, err)
		}

		logger.Debug().Str("path", f.Path).Int("size", len(f.Body)).Msg("Added archive entry")
	}

	if err := zw.Close(); nil != err {
		return nil, fmt.Errorf("failed to finalize archive: %v", err)
	}

	if buf.Len() == 0 {
		return nil, &EmptyArchiveError{}
	}

	return buf.Bytes(), nil
}

// unsafeNameChars covers filesystem-separator and wildcard runes, plus the
// period, which collides with extension-splitting logic downstream.
var unsafeNameChars = regexp.MustCompile(`[\\/:*?"<>|.]`)

func SanitizeName(s string) string {
	return strings.TrimSpace(unsafeNameChars.ReplaceAllString(s, "_"))
}

// SuggestedFilename formats the download name offered to the caller.
func SuggestedFilename(name string, kind types.ContentKind) string {
	return fmt.Sprintf("%s - %s assets [snagged].zip", SanitizeName(name), kind.ArchiveLabel())
}
