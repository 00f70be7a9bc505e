package premguru

import "errors"

var (
	// ErrBusy is returned when a send is attempted while a request is
	// already in flight. The engine state is untouched.
	ErrBusy = errors.New("a request is already in flight")

	// ErrEmptyMessage is returned when a send carries neither text nor an
	// image attachment.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrImageTooLarge is returned when an attachment exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image exceeds the 5MB size limit")

	// ErrInvalidImage is returned when an attachment is not a well-formed
	// base64 data URI.
	ErrInvalidImage = errors.New("image is not a valid data URI")

	// ErrNoActiveSession is returned when a send finds no active session.
	// This should not happen in practice: the session list is never empty.
	ErrNoActiveSession = errors.New("no active session")
)
