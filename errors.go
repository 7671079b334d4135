package main

import (
	"errors"
	"fmt"
)

// Process exit statuses reported to the scheduler.
const (
	EXIT_OK      = 0
	EXIT_FAILURE = 1 // config, flags, anything unclassified
	EXIT_STORAGE = 2 // mode or ledger file missing, corrupt or unwritable
	EXIT_REMOTE  = 3 // Twitter API failures
)

// StorageError reports a problem with one of the flat state files.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RemoteError reports a failed Twitter API call. StatusCode is 0 when the
// request never got a response.
type RemoteError struct {
	Op         string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("twitter: %s (%s) returned status %d: %v", e.Op, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("twitter: %s (%s): %v", e.Op, e.Endpoint, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func exitCode(err error) int {
	if err == nil {
		return EXIT_OK
	}

	var storageErr *StorageError
	var remoteErr *RemoteError
	switch {
	case errors.As(err, &storageErr):
		return EXIT_STORAGE
	case errors.As(err, &remoteErr):
		return EXIT_REMOTE
	default:
		return EXIT_FAILURE
	}
}
