package domain

import "time"

// ArtifactKind classifies a recorded build product.
type ArtifactKind string

const (
	// ArtifactObject is the object file or static archive.
	ArtifactObject ArtifactKind = "object"
	// ArtifactShared is the shared library.
	ArtifactShared ArtifactKind = "shared"
	// ArtifactExecutable is the linked executable.
	ArtifactExecutable ArtifactKind = "executable"
)

// ArtifactRecord is one entry of the artifact manifest.
type ArtifactRecord struct {
	Kind ArtifactKind `json:"kind"`
	Name string       `json:"name"`
	Size int64        `json:"size"`
	Hash string       `json:"hash"`
}

// Manifest records the artifacts present after the last successful build.
type Manifest struct {
	Program        string           `json:"program,omitzero"`
	RuntimeVersion string           `json:"runtime_version,omitzero"`
	Platform       Platform         `json:"platform,omitzero"`
	Artifacts      []ArtifactRecord `json:"artifacts"`
	Timestamp      time.Time        `json:"timestamp,omitzero"`
}

// ArtifactState is the result of comparing a recorded artifact with disk.
type ArtifactState string

const (
	// ArtifactUnchanged means the file matches its recorded digest.
	ArtifactUnchanged ArtifactState = "unchanged"
	// ArtifactModified means the file exists but its digest differs.
	ArtifactModified ArtifactState = "modified"
	// ArtifactMissing means the file no longer exists.
	ArtifactMissing ArtifactState = "missing"
)

// ArtifactStatus pairs a manifest record with its current state.
type ArtifactStatus struct {
	Record ArtifactRecord
	State  ArtifactState
}
