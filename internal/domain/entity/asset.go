package entity

import (
	"bytes"
	"io"
)

// SourceFile is an upload candidate. It is never persisted itself.
type SourceFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte
}

func (f *SourceFile) Reader() io.Reader {
	return bytes.NewReader(f.Content)
}

// UploadedAsset is a stored object and its public URL.
type UploadedAsset struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
