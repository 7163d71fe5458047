package version

// These variables are overridden at build time using -ldflags.
// Keep sensible defaults for local development.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the build metadata served by the version endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date,omitempty"`
	Dirty   bool   `json:"dirty"`
}

// Get returns the build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}
