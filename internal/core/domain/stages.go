package domain

// Stage names in their fixed execution order.
const (
	StageClean           = "clean"
	StageBuildDir        = "builddir"
	StageObject          = "object"
	StageShared          = "shared"
	StageExecutable      = "executable"
	StageRemoveTemp      = "rmtemp"
	StageCopyRuntimeLibs = "copy-runtime-libs"
	StageCopyUserFiles   = "copy-files"
)

// StageSelection is the resolved set of stages a run executes.
type StageSelection struct {
	Clean           bool
	Object          bool
	Shared          bool
	InitShared      bool
	Executable      bool
	RemoveTemp      bool
	CopyRuntimeLibs bool
	CopyUserFiles   bool
}

// Any reports whether at least one stage is selected.
func (s StageSelection) Any() bool {
	return s.Clean || s.NeedsBuildDir()
}

// NeedsBuildDir reports whether any stage other than clean is selected.
func (s StageSelection) NeedsBuildDir() bool {
	return s.Object || s.Shared || s.Executable || s.RemoveTemp || s.CopyRuntimeLibs || s.CopyUserFiles
}

// NeedsRuntime reports whether the runtime must be probed for this selection.
func (s StageSelection) NeedsRuntime() bool {
	return s.Object || s.Shared || s.Executable || s.RemoveTemp || s.CopyRuntimeLibs
}

// NeedsCompiler reports whether the C compiler is required.
func (s StageSelection) NeedsCompiler() bool {
	return s.Shared || s.Executable
}

// BuildsArtifacts reports whether an artifact producing stage is selected.
func (s StageSelection) BuildsArtifacts() bool {
	return s.Object || s.Shared || s.Executable
}

// Names lists the selected stages in execution order.
func (s StageSelection) Names() []string {
	var names []string
	add := func(selected bool, name string) {
		if selected {
			names = append(names, name)
		}
	}
	add(s.Clean, StageClean)
	add(s.Object, StageObject)
	add(s.Shared, StageShared)
	add(s.Executable, StageExecutable)
	add(s.RemoveTemp, StageRemoveTemp)
	add(s.CopyRuntimeLibs, StageCopyRuntimeLibs)
	add(s.CopyUserFiles, StageCopyUserFiles)
	return names
}
