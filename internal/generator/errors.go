package generator

import "errors"

var (
	// ErrUpstreamCall means the model call itself failed.
	ErrUpstreamCall = errors.New("caption service call failed")

	// ErrUnparseableOutput means the call succeeded but yielded no usable caption.
	ErrUnparseableOutput = errors.New("no captions could be read from the reply")

	// ErrGuard means the session is not in a state that allows the action.
	// It is never notified; callers may use it to hint the user.
	ErrGuard = errors.New("action not available right now")

	// ErrStale means a newer call superseded this one; its result was dropped.
	ErrStale = errors.New("superseded by a newer request")

	// ErrImage means the picture could not be loaded.
	ErrImage = errors.New("image could not be used")

	// ErrPersist means the finished caption could not be recorded.
	ErrPersist = errors.New("caption could not be saved")
)
