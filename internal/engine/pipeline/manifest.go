package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

// writeManifest records every artifact present in the build directory.
func (p *Pipeline) writeManifest(r *run) error {
	manifest := domain.Manifest{
		Program:        r.cfg.Program,
		RuntimeVersion: r.rt.Version,
		Platform:       r.cfg.Platform,
		Artifacts:      []domain.ArtifactRecord{},
		Timestamp:      time.Now().UTC(),
	}

	artifacts := []struct {
		kind domain.ArtifactKind
		name string
	}{
		{domain.ArtifactObject, r.paths.Object},
		{domain.ArtifactShared, r.paths.Shared},
		{domain.ArtifactExecutable, r.paths.Executable},
	}
	for _, a := range artifacts {
		path := filepath.Join(r.cfg.BuildDir, a.name)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Join(domain.ErrFilesystem, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path))
		}

		hash, err := p.hasher.ComputeFileHash(path)
		if err != nil {
			return errors.Join(domain.ErrFilesystem, err)
		}
		manifest.Artifacts = append(manifest.Artifacts, domain.ArtifactRecord{
			Kind: a.kind,
			Name: a.name,
			Size: info.Size(),
			Hash: hash,
		})
	}

	if err := p.store.Put(r.cfg.BuildDir, manifest); err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}
	return nil
}
