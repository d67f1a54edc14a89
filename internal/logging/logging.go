// Package logging builds the log15 loggers used by the infcounter binaries.
package logging

import (
	"io"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
)

// New returns a logger writing logfmt records at or above level to w.
func New(level string, w io.Writer, ctx ...interface{}) (log15.Logger, error) {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	l := log15.New(ctx...)
	l.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.LogfmtFormat())))
	return l, nil
}
