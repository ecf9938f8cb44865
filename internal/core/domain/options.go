package domain

// Options is the raw, unresolved configuration surface as collected from the
// command line and the optional config file. Empty strings, nil pointers and
// false booleans mean "not set".
type Options struct {
	Program       string
	BuildDir      string
	OutName       string
	DriverProgram string
	SnoopFile     string
	CopyFiles     []string

	Verbose bool
	Quiet   bool

	Clean           bool
	AutoDeps        bool
	Object          bool
	Shared          bool
	InitShared      bool
	Executable      bool
	RemoveTemp      bool
	CopyRuntimeLibs bool
	Release         bool
	FullRelease     bool

	Runtime         string
	SysImage        string
	CPUTarget       string
	Compile         string
	Depwarn         string
	Precompiled     string
	CompiledModules string
	Home            string
	StartupFile     string
	HandleSignals   string
	Optimize        *int
	Debug           *int
	Inline          string
	CheckBounds     string
	MathMode        string
	PrimeCache      bool

	CC            string
	CCFlags       []string
	ToolchainPath string
	Platform      string
}

// Defaults holds the host-derived values Resolve falls back to.
type Defaults struct {
	// WorkDir anchors relative program, snoop file and copy file paths.
	WorkDir string
	// DriverProgram is the bundled C driver used when none is given.
	DriverProgram string
	// Runtime is the language runtime executable.
	Runtime string
	// CC is the C compiler. Empty selects the platform default.
	CC string
	// Platform is the host platform.
	Platform Platform
}

// IntPtr returns a pointer to v. It is a convenience for optional levels.
func IntPtr(v int) *int {
	return &v
}
