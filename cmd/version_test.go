package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)

	versionCmd.Run(versionCmd, nil)

	got := out.String()
	if !strings.HasPrefix(got, "company-scout ") {
		t.Fatalf("unexpected version output: %q", got)
	}
	if !strings.Contains(got, version) {
		t.Fatalf("version string missing: %q", got)
	}
}
