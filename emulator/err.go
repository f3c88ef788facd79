package emulator

import (
	"github.com/cellvm/cellvm/cpu"
	"github.com/cellvm/cellvm/translate"
)

var f = translate.From

// ErrStatus reports a terminal error status, with the source line when a
// listing is available.
type ErrStatus struct {
	LineNo int
	Status cpu.Status
}

func (err *ErrStatus) Error() string {
	if err.LineNo == 0 {
		return f("status %v", err.Status)
	}
	return f("line %d status %v", err.LineNo, err.Status)
}
