package handler

import "errors"

var errNoHandlersAreCreated = errors.New("no HTTP or gRPC address configured for file keeper handlers")
