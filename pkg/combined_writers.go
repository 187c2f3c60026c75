package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a Write out to every target. The log setup uses it
// to hit stdout and the rotated log file through one io.Writer. A failing
// target does not stop the others, their errors get combined.
type CombinedWriter struct {
	targets []io.Writer
}

func NewCombinedWriter(targets ...io.Writer) *CombinedWriter {
	return &CombinedWriter{targets: targets}
}

// Write returns the total bytes accepted across all targets. A target
// that errored contributes nothing to the count.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, target := range cw.targets {
		written, werr := target.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
