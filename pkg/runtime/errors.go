package runtime

import "errors"

// Errors for runtime selection in runtime.go.
var (
	// errUnknownRuntime indicates an unsupported runtime kind was requested.
	errUnknownRuntime = errors.New("unknown runtime")
	// errEngineClientFailed indicates the Docker Engine API client could not be created.
	errEngineClientFailed = errors.New("failed to create Docker Engine client")
)

// Errors shared by the runtime backends.
var (
	// ErrLoginFailed indicates authentication against a registry failed.
	ErrLoginFailed = errors.New("registry login failed")
	// ErrPullFailed indicates an image could not be pulled.
	ErrPullFailed = errors.New("failed to pull image")
	// ErrTagFailed indicates an image could not be tagged.
	ErrTagFailed = errors.New("failed to tag image")
	// ErrPushFailed indicates an image could not be pushed.
	ErrPushFailed = errors.New("failed to push image")
	// ErrRemoveFailed indicates a local image copy could not be removed.
	ErrRemoveFailed = errors.New("failed to remove image")
	// ErrCommandFailed indicates an external command exited unsuccessfully.
	ErrCommandFailed = errors.New("command failed")
	// errImageNotPulled indicates a tag or push referenced an image that was never pulled.
	errImageNotPulled = errors.New("image not pulled")
)
