package io

import (
	"errors"

	"github.com/cellvm/cellvm/translate"
)

var f = translate.From

var (
	// ErrMalformedInt indicates the input could not be scanned as a
	// signed decimal integer.
	ErrMalformedInt = errors.New(f("malformed integer"))
)
