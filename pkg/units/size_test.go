package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
		bin  string
	}{
		{size: 0, want: "0B", bin: "0B"},
		{size: 999, want: "999B", bin: "999B"},
		{size: 1024, want: "1.02kB", bin: "1KiB"},
		{size: 4661211424, want: "4.66GB", bin: "4.34GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanSize(tt.size))
			assert.Equal(t, tt.bin, BytesSize(tt.size))
		})
	}
}
