package export

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMember(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readArchive(t *testing.T, path string) *zip.ReadCloser {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { zr.Close() })
	return zr
}

func TestCreateZipPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeMember(t, dir, "resume-b.pdf", "second"),
		writeMember(t, dir, "resume-a.pdf", "first"),
		writeMember(t, dir, "resume-c.pdf", "third"),
	}
	dest := filepath.Join(dir, "out.zip")

	require.NoError(t, CreateZip(files, dest, nil))

	zr := readArchive(t, dest)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "resume-b.pdf", zr.File[0].Name)
	assert.Equal(t, "resume-a.pdf", zr.File[1].Name)
	assert.Equal(t, "resume-c.pdf", zr.File[2].Name)
}

func TestCreateZipRoundTripsContent(t *testing.T) {
	dir := t.TempDir()
	src := writeMember(t, dir, "resume-a.pdf", "%PDF-1.7 body")
	dest := filepath.Join(dir, "out.zip")

	require.NoError(t, CreateZip([]string{src}, dest, nil))

	zr := readArchive(t, dest)
	require.Len(t, zr.File, 1)
	rc, e := zr.File[0].Open()
	require.NoError(t, e)
	defer rc.Close()
	content, e := io.ReadAll(rc)
	require.NoError(t, e)
	assert.Equal(t, "%PDF-1.7 body", string(content))
}

func TestCreateZipAppliesBrandAndRoot(t *testing.T) {
	dir := t.TempDir()
	src := writeMember(t, dir, "resume-a.pdf", "x")
	dest := filepath.Join(dir, "out.zip")

	require.NoError(t, CreateZip([]string{src}, dest, &ZipOptions{
		Brand: "acme",
		Root:  "exports",
	}))

	zr := readArchive(t, dest)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "exports/acme-resume-a.pdf", zr.File[0].Name)
}

func TestCreateZipAppendsWatermarkEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeMember(t, dir, "resume-a.pdf", "x")
	dest := filepath.Join(dir, "out.zip")

	require.NoError(t, CreateZip([]string{src}, dest, &ZipOptions{Watermark: "Generated by Resume Builder Pro"}))

	zr := readArchive(t, dest)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "WATERMARK.txt", zr.File[1].Name)

	rc, e := zr.File[1].Open()
	require.NoError(t, e)
	defer rc.Close()
	content, e := io.ReadAll(rc)
	require.NoError(t, e)
	assert.Equal(t, "Generated by Resume Builder Pro", string(content))
}

func TestCreateZipMissingMemberFails(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.zip")

	e := CreateZip([]string{filepath.Join(dir, "missing.pdf")}, dest, nil)
	require.Error(t, e)
	assert.Contains(t, e.Error(), "missing.pdf")
}

func TestCreateZipCreatesDestinationDirectory(t *testing.T) {
	dir := t.TempDir()
	src := writeMember(t, dir, "resume-a.pdf", "x")
	dest := filepath.Join(dir, "nested", "deep", "out.zip")

	require.NoError(t, CreateZip([]string{src}, dest, nil))
	_, e := os.Stat(dest)
	assert.NoError(t, e)
}
