package storage

import "errors"

// ErrRecordNotFound signals that an update targeted a registry record that no longer exists
var ErrRecordNotFound = errors.New("registry record not found")
