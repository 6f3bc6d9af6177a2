package cli

// Options holds the command line options shared by all commands
type Options struct {
	// Paths to scan; Go-style patterns like ./... recurse
	Paths []string

	// ConfigFile is an explicit configuration file. When empty, dualgen.yaml
	// and friends are looked up from WorkDir upwards.
	ConfigFile string

	// WorkDir is where configuration discovery starts (default: current directory)
	WorkDir string

	// OutDir overrides output.dir from the configuration
	OutDir string

	// Verbose enables detailed logging with timestamps
	Verbose bool

	// Quiet only shows errors
	Quiet bool

	// Watch keeps regenerating as sources change
	Watch bool
}

// patterns returns the paths to scan, defaulting to the whole working tree
func (o Options) patterns() []string {
	if len(o.Paths) == 0 {
		return []string{"./..."}
	}
	return o.Paths
}
