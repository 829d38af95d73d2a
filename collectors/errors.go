package collectors

import (
	"errors"
	"net/http"
)

var errNilRecordCounter = errors.New("nil record counter")

var errEmptyURL = errors.New("empty url in endpoint metric config")

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return "non-2xx HTTP status code: " + http.StatusText(int(e))
}

type errPathNotFound string

func (e errPathNotFound) Error() string {
	return "JSON path not found in response: " + string(e)
}
