package zip

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"time"
)

// Asset is one produced tool output to be bundled into an archive.
type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets bundles multi-output tool results (split pages, extracted
// images) into a single downloadable zip. Entries keep only the base name;
// workspace paths never leak into the archive.
func ArchiveAssets(assets []Asset) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	now := time.Now()
	for _, asset := range assets {
		name := filepath.Base(asset.Filename)
		if name == "." || name == "/" {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			continue
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil
		}
	}
	if err := zw.Close(); err != nil {
		return nil
	}
	return buf.Bytes()
}
