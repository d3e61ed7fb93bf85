package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	v := Get()
	assert.Equal(t, runtime.Version(), v.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, v.Platform)
	assert.True(t, strings.HasPrefix(v.String(), v.GitVersion))
}

func TestVersion_String(t *testing.T) {
	v := Version{GitVersion: "v1.2.0", GoVersion: "go1.22.0", Platform: "linux/amd64"}
	assert.Equal(t, "v1.2.0 (go1.22.0 linux/amd64)", v.String())
	v.GitCommit = "abc1234"
	assert.Equal(t, "v1.2.0+abc1234 (go1.22.0 linux/amd64)", v.String())
}
