package domain

// ArtifactPaths are the file names a build produces inside the build directory.
type ArtifactPaths struct {
	Object     string
	Shared     string
	Executable string
	InitSource string
	CacheDir   string
	// ObjectExt is the object or archive extension including the dot.
	ObjectExt string
}

// NewArtifactPaths derives artifact names from the output base name, the
// target platform and the runtime's object format.
func NewArtifactPaths(outName string, p Platform, rt RuntimeInfo) ArtifactPaths {
	ext := ".o"
	if rt.UsesArchive() {
		ext = ".a"
	}
	return ArtifactPaths{
		Object:     outName + ext,
		Shared:     "lib" + outName + p.SharedLibExt(),
		Executable: outName + p.ExecutableExt(),
		InitSource: InitSourceName,
		CacheDir:   rt.CacheDirName(),
		ObjectExt:  ext,
	}
}
