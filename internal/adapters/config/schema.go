package config

// Jlcfile represents the structure of the jlc.yaml configuration file.
type Jlcfile struct {
	Version   string       `yaml:"version"`
	Program   string       `yaml:"program"`
	BuildDir  string       `yaml:"builddir"`
	OutName   string       `yaml:"outname"`
	Driver    string       `yaml:"driver"`
	SnoopFile string       `yaml:"snoopfile"`
	CopyFiles []string     `yaml:"copy_files"`
	Verbose   bool         `yaml:"verbose"`
	Quiet     bool         `yaml:"quiet"`
	Stages    StagesDTO    `yaml:"stages"`
	Runtime   RuntimeDTO   `yaml:"runtime"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
}

// StagesDTO selects build stages and stage macros.
type StagesDTO struct {
	Clean           bool `yaml:"clean"`
	AutoDeps        bool `yaml:"autodeps"`
	Object          bool `yaml:"object"`
	Shared          bool `yaml:"shared"`
	InitShared      bool `yaml:"init_shared"`
	Executable      bool `yaml:"executable"`
	RemoveTemp      bool `yaml:"rmtemp"`
	CopyRuntimeLibs bool `yaml:"copy_runtime_libs"`
	Release         bool `yaml:"release"`
	FullRelease     bool `yaml:"full_release"`
}

// RuntimeDTO holds the language runtime options.
type RuntimeDTO struct {
	Path            string `yaml:"path"`
	SysImage        string `yaml:"sysimage"`
	CPUTarget       string `yaml:"cpu_target"`
	Compile         string `yaml:"compile"`
	Depwarn         string `yaml:"depwarn"`
	Precompiled     string `yaml:"precompiled"`
	CompiledModules string `yaml:"compiled_modules"`
	Home            string `yaml:"home"`
	StartupFile     string `yaml:"startup_file"`
	HandleSignals   string `yaml:"handle_signals"`
	Optimize        *int   `yaml:"optimize"`
	Debug           *int   `yaml:"debug"`
	Inline          string `yaml:"inline"`
	CheckBounds     string `yaml:"check_bounds"`
	MathMode        string `yaml:"math_mode"`
	PrimeCache      bool   `yaml:"prime_cache"`
}

// ToolchainDTO holds the C toolchain options.
type ToolchainDTO struct {
	CC       string   `yaml:"cc"`
	Flags    []string `yaml:"flags"`
	Path     string   `yaml:"path"`
	Platform string   `yaml:"platform"`
}
