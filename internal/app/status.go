package app

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/jlc/internal/core/domain"
)

// Status compares the manifest of buildDir with the files on disk. It
// returns a nil manifest when nothing was recorded.
func (a *App) Status(_ context.Context, buildDir string) (*domain.Manifest, []domain.ArtifactStatus, error) {
	manifest, err := a.store.Get(buildDir)
	if err != nil {
		return nil, nil, errors.Join(domain.ErrFilesystem, err)
	}
	if manifest == nil {
		return nil, nil, nil
	}

	statuses := make([]domain.ArtifactStatus, 0, len(manifest.Artifacts))
	for _, rec := range manifest.Artifacts {
		state, err := a.artifactState(filepath.Join(buildDir, rec.Name), rec.Hash)
		if err != nil {
			return manifest, statuses, errors.Join(domain.ErrFilesystem, err)
		}
		statuses = append(statuses, domain.ArtifactStatus{Record: rec, State: state})
	}
	return manifest, statuses, nil
}

func (a *App) artifactState(path, hash string) (domain.ArtifactState, error) {
	ok, err := a.verifier.FileExists(path)
	if err != nil {
		return "", err
	}
	if !ok {
		return domain.ArtifactMissing, nil
	}

	current, err := a.hasher.ComputeFileHash(path)
	if err != nil {
		return "", err
	}
	if current != hash {
		return domain.ArtifactModified, nil
	}
	return domain.ArtifactUnchanged, nil
}
