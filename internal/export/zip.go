package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipOptions controls archive layout.
type ZipOptions struct {
	Brand     string // prefix added to every member file name
	Root      string // folder name members are placed under inside the archive
	Watermark string // when set, a WATERMARK.txt entry with this content is appended
}

// CreateZip packages the given files into a zip archive at dest, in input
// order. The archive is considered complete only once the output file is
// flushed and closed; a write failure leaves the partial file on disk and
// propagates the error.
func CreateZip(files []string, dest string, opts *ZipOptions) error {
	if opts == nil {
		opts = &ZipOptions{}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", dest, err)
	}
	zw := zip.NewWriter(out)

	root := strings.TrimRight(opts.Root, "/")
	if root != "" {
		root += "/"
	}

	abort := func(err error) error {
		zw.Close()
		out.Close()
		return err
	}

	for _, file := range files {
		name := filepath.Base(file)
		if opts.Brand != "" {
			name = opts.Brand + "-" + name
		}
		if err := addFile(zw, file, root+name); err != nil {
			return abort(err)
		}
	}

	if opts.Watermark != "" {
		w, err := zw.Create(root + "WATERMARK.txt")
		if err != nil {
			return abort(fmt.Errorf("failed to add watermark entry: %w", err))
		}
		if _, err := io.WriteString(w, opts.Watermark); err != nil {
			return abort(fmt.Errorf("failed to write watermark entry: %w", err))
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("failed to flush archive: %w", err)
	}
	return out.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive member %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive member %s: %w", path, err)
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", path, err)
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add archive member %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write archive member %s: %w", name, err)
	}
	return nil
}
