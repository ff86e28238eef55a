package filesize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10 MB"},
		{int64(2.75 * 1024 * 1024 * 1024), "2.75 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.bytes), "Format(%d)", tt.bytes)
	}
}
