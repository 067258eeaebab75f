package buildinfo

import (
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit string) {
	t.Helper()
	oldVersion, oldCommit := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
}

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"release", "v1.2.0", "0123456789abcdef", "texsvg/v1.2.0"},
		{"dev without commit", "dev", "none", "texsvg/dev"},
		{"dev with commit", "dev", "0123456789abcdef", "texsvg/dev+0123456"},
		{"dev with short commit", "dev", "abc", "texsvg/dev+abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit)
			if got := UserAgent(); got != tt.want {
				t.Errorf("UserAgent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	stamp(t, "v0.3.1", "feedbee")
	got := String()
	for _, want := range []string{"version: v0.3.1", "commit: feedbee", "built: "} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v0.3.1", "feedbee")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version {{.Version}}\n") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit: feedbee") {
		t.Errorf("Template() = %q, missing commit", got)
	}
}
