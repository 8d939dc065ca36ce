package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build info should be initialized")
	}
	if !strings.HasPrefix(String(), Version+" (commit ") {
		t.Errorf("unexpected version line %q", String())
	}
}
