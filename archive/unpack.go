// Package archive implements dartdoc.Unpacker for the zip archives served
// by OpenDART.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/dartdoc"
	"golang.org/x/text/encoding/korean"
)

// MaxEntrySize bounds the decompressed size of the document entry.
const MaxEntrySize = 256 << 20

// Ensure Unpacker implements dartdoc.Unpacker at compile time.
var _ dartdoc.Unpacker = (*Unpacker)(nil)

// Unpacker reads the first entry of a zip archive and decodes it. UTF-8
// content is used as is; anything else is decoded as CP949 with
// undecodable bytes dropped.
type Unpacker struct{}

// NewUnpacker creates an Unpacker.
func NewUnpacker() *Unpacker {
	return &Unpacker{}
}

// Unpack returns the decoded text of the first archive entry.
func (u *Unpacker) Unpack(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", dartdoc.Errorf(dartdoc.EINVALID, "invalid archive: %v", err)
	}
	if len(zr.File) == 0 {
		return "", dartdoc.Errorf(dartdoc.EINVALID, "archive is empty")
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		return "", dartdoc.Errorf(dartdoc.EINVALID, "open %s: %v", zr.File[0].Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return "", dartdoc.Errorf(dartdoc.EINVALID, "read %s: %v", zr.File[0].Name, err)
	}
	if len(content) > MaxEntrySize {
		return "", dartdoc.Errorf(dartdoc.EINVALID, "%s exceeds %d bytes", zr.File[0].Name, MaxEntrySize)
	}
	return Decode(content), nil
}

// Decode converts document bytes to a string. A UTF-8 byte order mark is
// removed.
func Decode(content []byte) string {
	if utf8.Valid(content) {
		return strings.TrimPrefix(string(content), "\ufeff")
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(content)
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(string(decoded), string(utf8.RuneError), "")
}
