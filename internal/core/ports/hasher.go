package ports

// Hasher defines the interface for computing file digests.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeFileHash returns the hex digest of the file at path.
	ComputeFileHash(path string) (string, error)
}
