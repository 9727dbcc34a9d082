// Package buildinfo holds the version stamped into the bankcsv binary.
package buildinfo

// Set with -ldflags "-X github.com/bankcsv/bankcsv/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
