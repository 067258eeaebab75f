// Package buildinfo holds the texsvg release identity stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/texsvg/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/texsvg/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/texsvg/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Product is the name reported by the CLI and sent by the HTTP client.
const Product = "texsvg"

// Link-time values. Unset builds report "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the version, commit and build date on separate lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} version {{.Version}}\n" + fmt.Sprintf("commit: %s\nbuilt: %s\n", Commit, Date)
}

// UserAgent identifies texsvg clients to a conversion server, e.g.
// "texsvg/v1.2.0". Development builds append the commit when known.
func UserAgent() string {
	ua := Product + "/" + Version
	if Version == "dev" && Commit != "none" && Commit != "" {
		ua += "+" + shortCommit(Commit)
	}
	return ua
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
