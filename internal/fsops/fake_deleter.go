package fsops

import "errors"

// FakeDeleter implements Deleter for testing
// Records all delete calls without performing actual deletions
type FakeDeleter struct {
	Calls []string

	// FailPaths lists paths whose removal should fail with a permission-style error
	FailPaths map[string]bool
}

var errFakePermission = errors.New("permission denied")

func (f *FakeDeleter) Remove(path string) error {
	f.Calls = append(f.Calls, "rm:"+path)
	if f.FailPaths[path] {
		return errFakePermission
	}
	return nil
}

func (f *FakeDeleter) RemoveAll(path string) error {
	f.Calls = append(f.Calls, "rmall:"+path)
	if f.FailPaths[path] {
		return errFakePermission
	}
	return nil
}
