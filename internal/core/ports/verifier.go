package ports

// Verifier defines the interface for verifying file existence.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/verifier_mock.go -package=mocks -source=verifier.go
type Verifier interface {
	// FileExists reports whether path exists and is a regular file.
	FileExists(path string) (bool, error)

	// VerifyArtifacts checks if all named files exist in the given root directory.
	VerifyArtifacts(root string, names []string) (bool, error)
}
