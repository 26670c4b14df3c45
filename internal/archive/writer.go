package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

var errNotDirectory = errors.New("not a directory")

// Create writes srcDir into archivePath using format. Entries are named
// "{base(srcDir)}/{relative path}". A file already present at archivePath is
// removed first, so a failed run never leaves a stale archive behind.
func Create(format Format, archivePath, srcDir string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("stat staging directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", srcDir, errNotDirectory)
	}

	if err = os.Remove(archivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove previous archive: %w", err)
	}

	file, err := os.Create(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	switch format {
	case TarGz:
		err = writeTarGz(file, srcDir)
	case Zip:
		err = writeZip(file, srcDir)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(archivePath)
		return fmt.Errorf("write %s archive: %w", format, err)
	}

	return nil
}

// walkFunc receives each path under the root together with its archive entry name.
type walkFunc func(path, name string, d fs.DirEntry) error

// walk visits srcDir and everything below it in lexical order.
// The root itself is reported with its base name.
func walk(srcDir string, fn walkFunc) error {
	root := filepath.Base(filepath.Clean(srcDir))

	return filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}

		name := root
		if rel != "." {
			name = path.Join(root, filepath.ToSlash(rel))
		}

		return fn(p, name, d)
	})
}

// writeTarGz adds srcDir recursively, directories included, as a single tree.
func writeTarGz(w io.Writer, srcDir string) error {
	gzw := gzip.NewWriter(w)
	tw := tar.NewWriter(gzw)

	err := walk(srcDir, func(p, name string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return err
		}

		var link string

		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(p); err != nil {
				return err
			}
		}

		header, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}

		header.Name = name
		if info.IsDir() {
			header.Name += "/"
		}

		if err = tw.WriteHeader(header); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return copyFileTo(tw, p)
	})
	if err != nil {
		return err
	}

	if err = tw.Close(); err != nil {
		return err
	}

	return gzw.Close()
}

// writeZip adds one deflate-compressed entry per regular file.
func writeZip(w io.Writer, srcDir string) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	err := walk(srcDir, func(p, name string, d fs.DirEntry) error {
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}

		header.Name = name
		header.Method = zip.Deflate

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		return copyFileTo(entry, p)
	})
	if err != nil {
		return err
	}

	return zw.Close()
}

func copyFileTo(w io.Writer, p string) error {
	src, err := os.Open(filepath.Clean(p))
	if err != nil {
		return err
	}

	defer func() {
		_ = src.Close()
	}()

	_, err = io.Copy(w, src)

	return err
}
