package supervisor

import "errors"

var (
	// ErrNoScript indicates a launch request with nothing to run: no
	// explicit script and no manifest entry point to resolve
	ErrNoScript = errors.New("no script given")

	// ErrUnknownScriptType indicates that no launch strategy matches the
	// resolved script's extension
	ErrUnknownScriptType = errors.New("don't know how to start script")

	// ErrNotFound indicates that no registry entry matches the requested name
	ErrNotFound = errors.New("process not found")

	// ErrAlreadyDone indicates that the process has already terminated
	ErrAlreadyDone = errors.New("process already completed")
)
