package domain

// CleanOutcome describes what the clean stage did.
type CleanOutcome int

const (
	// CleanNotRequested means the clean stage was not selected.
	CleanNotRequested CleanOutcome = iota
	// CleanRemoved means the build directory existed and was removed.
	CleanRemoved
	// CleanDirMissing means there was no build directory to remove.
	CleanDirMissing
)

// Report summarizes a pipeline run.
type Report struct {
	// NothingToDo is set when no stage was selected.
	NothingToDo bool
	Clean       CleanOutcome
	// BuildDirCreated is set when the run created the build directory.
	BuildDirCreated bool
	// Stages lists the executed stages in order.
	Stages []string
	// Removed lists files deleted by the remove-temp stage.
	Removed []string
	// Copied lists files staged into the build directory.
	Copied    []string
	Artifacts ArtifactPaths
}
