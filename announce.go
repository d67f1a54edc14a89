package infcounter

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/ngrok/infcounter/internal/proto"
	"github.com/pkg/errors"
	"github.com/rkt/rkt/pkg/lock"
	"golang.org/x/sys/unix"
)

const announceSuffix = ".pid"

// announcement is a counter's entry in an announce directory. The entry is
// live for as long as its file is exclusively locked; the kernel drops the
// lock when the process dies, however it dies.
type announcement struct {
	lock *lock.FileLock
	path string
	l    log15.Logger
}

func announcePath(dir string, pid PID) string {
	return filepath.Join(dir, pid.String()+announceSuffix)
}

// announce publishes pid in dir. The record is written and locked under a
// temporary name Discover ignores, then renamed into place, so an entry under
// its final name is always complete and already locked.
func announce(l log15.Logger, dir string, pid PID, startedAt time.Time) (*announcement, error) {
	path := announcePath(dir, pid)
	l = l.New("announce", path)

	tmp, err := os.CreateTemp(dir, ".announce-*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "could not create announcement in %s", dir)
	}
	tmpPath := tmp.Name()
	fl, err := lock.TryExclusiveLock(tmpPath, lock.RegFile)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, errors.Wrapf(err, "could not lock %s", tmpPath)
	}
	abort := func(err error) (*announcement, error) {
		os.Remove(tmpPath)
		fl.Close()
		return nil, err
	}

	err = proto.WriteJSONBlob(tmp, proto.Announcement{
		Version:   proto.Version,
		PID:       int(pid),
		StartedAt: startedAt,
	})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return abort(errors.Wrap(err, "could not write announcement"))
	}

	if err := checkReplaceable(path); err != nil {
		return abort(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return abort(errors.Wrap(err, "could not publish announcement"))
	}
	l.Info("announced counter")
	return &announcement{lock: fl, path: path, l: l}, nil
}

// checkReplaceable fails with lock.ErrLocked if a live counter already holds
// path. A missing or stale entry may be replaced. A locked entry without a
// complete record is being swept by Discover, since live entries are only
// ever published complete.
func checkReplaceable(path string) error {
	existing, err := lock.TryExclusiveLock(path, lock.RegFile)
	switch {
	case err == nil:
		return existing.Close()
	case err == lock.ErrNotExist:
		return nil
	case err != lock.ErrLocked:
		return errors.Wrapf(err, "could not lock %s", path)
	}
	if _, err := readAnnouncement(path); err != nil {
		return nil
	}
	return errors.Wrapf(lock.ErrLocked, "%s is held by a live counter", path)
}

// Close removes the announcement and releases its lock.
func (a *announcement) Close() error {
	rmErr := os.Remove(a.path)
	if err := a.lock.Close(); err != nil {
		return err
	}
	a.l.Info("withdrew announcement")
	return rmErr
}

// Discover lists the pids of counters currently announced in dir, in
// ascending order. Entries left behind by counters that died without cleaning
// up are removed.
func Discover(l log15.Logger, dir string) ([]PID, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read announce dir %s", dir)
	}

	var live []PID
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), announceSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		pid, ok := inspectAnnouncement(l.New("announce", path), path)
		if ok {
			live = append(live, pid)
		}
	}
	slices.Sort(live)
	return live, nil
}

func inspectAnnouncement(l log15.Logger, path string) (PID, bool) {
	fl, err := lock.TryExclusiveLock(path, lock.RegFile)
	if err == nil {
		defer fl.Close()
		// nobody holds it, so its counter is gone. A fresh announcement may
		// have been renamed over it since it was opened; that one stays.
		if !lockedFileAt(fl, path) {
			l.Debug("announcement replaced while inspecting it")
			return 0, false
		}
		l.Debug("removing stale announcement")
		if err := os.Remove(path); err != nil {
			l.Warn("could not remove stale announcement", "err", err)
		}
		return 0, false
	}
	if err != lock.ErrLocked {
		l.Debug("could not inspect announcement", "err", err)
		return 0, false
	}

	a, err := readAnnouncement(path)
	if err != nil {
		l.Debug("could not read announcement", "err", err)
		return 0, false
	}
	pid := PID(a.PID)
	if !pid.Valid() {
		l.Debug("announcement carries an invalid pid", "pid", a.PID)
		return 0, false
	}
	return pid, true
}

func readAnnouncement(path string) (proto.Announcement, error) {
	var a proto.Announcement
	f, err := os.Open(path)
	if err != nil {
		return a, err
	}
	defer f.Close()
	err = proto.ReadJSONBlob(f, &a)
	return a, err
}

// lockedFileAt reports whether path still names the file fl holds.
func lockedFileAt(fl *lock.FileLock, path string) bool {
	fd, err := fl.Fd()
	if err != nil {
		return false
	}
	var held, named unix.Stat_t
	if err := unix.Fstat(fd, &held); err != nil {
		return false
	}
	if err := unix.Stat(path, &named); err != nil {
		return false
	}
	return held.Dev == named.Dev && held.Ino == named.Ino
}
