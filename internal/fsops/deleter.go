package fsops

// Deleter abstracts filesystem delete operations
// Enables mocking in tests to prove dry-run and declined runs never delete
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}
