package services

import "errors"

// ErrDatasetUnavailable marks a readiness failure caused by the dataset file
var ErrDatasetUnavailable = errors.New("dataset unavailable")
