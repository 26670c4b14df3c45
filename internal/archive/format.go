package archive

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Format selects the archive writer and the file extension.
type Format string

const (
	// TarGz is a gzip-compressed tarball.
	TarGz Format = "tar.gz"
	// Zip is a zip file with deflate-compressed entries.
	Zip Format = "zip"
)

// ErrUnsupportedFormat is returned for extensions other than tar.gz and zip.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Formats lists the supported formats in help-text order.
func Formats() []Format {
	return []Format{TarGz, Zip}
}

// FormatChoices joins Formats for help and error messages, e.g. "tar.gz, zip".
func FormatChoices() string {
	formats := Formats()
	names := make([]string, 0, len(formats))

	for _, f := range formats {
		names = append(names, f.Ext())
	}

	return strings.Join(names, ", ")
}

// ParseFormat validates an archive extension such as "tar.gz" or "zip".
func ParseFormat(ext string) (Format, error) {
	f := Format(strings.TrimSpace(ext))
	if slices.Contains(Formats(), f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q (choose from %s)", ErrUnsupportedFormat, ext, FormatChoices())
}

// Ext is the file extension without the leading dot.
func (f Format) Ext() string {
	return string(f)
}

func (f Format) String() string {
	return string(f)
}
