package blob

import (
	"bytes"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Blob is an immutable in-memory binary payload.
type Blob struct {
	data      []byte
	mimeType  string
	createdAt time.Time
}

// New wraps data in a blob. When mimeType is empty, it is sniffed from the
// content.
func New(data []byte, mimeType string) *Blob {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}

	return &Blob{
		data:      data,
		mimeType:  mimeType,
		createdAt: time.Now(),
	}
}

func (b *Blob) Type() string {
	return b.mimeType
}

func (b *Blob) Size() int64 {
	return int64(len(b.data))
}

func (b *Blob) CreatedAt() time.Time {
	return b.createdAt
}

// Bytes returns the underlying payload. It must not be modified.
func (b *Blob) Bytes() []byte {
	return b.data
}

func (b *Blob) Reader() *bytes.Reader {
	return bytes.NewReader(b.data)
}
