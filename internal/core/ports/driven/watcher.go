package driven

// DirWatcher reports changes inside searched directories.
type DirWatcher interface {
	// Watch calls onChange with the changed path whenever an entry of one of
	// dirs is created, written, removed or renamed. The returned function
	// stops watching.
	Watch(dirs []string, onChange func(path string)) (stop func() error, err error)
}
