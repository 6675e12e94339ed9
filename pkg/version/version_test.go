package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoString(t *testing.T) {
	i := Info{Version: "1.2.3", GitCommit: "abc", BuildTime: "now", GoVersion: "go1.23", Platform: "linux/amd64"}
	assert.Equal(t, "codepack version 1.2.3 (commit: abc) built at now with go1.23 on linux/amd64", i.String())
}

func TestGet(t *testing.T) {
	v := Get()
	assert.Equal(t, runtime.Version(), v.GoVersion)
	assert.True(t, strings.Contains(v.Platform, runtime.GOOS))
}
