package actors

import (
	"fmt"
	"os"
	"path/filepath"

	"copt/engine/library"
)

// Open returns the named artifact in dir. The bool is false when the artifact does not exist or
// cannot be opened; the caller falls back to its default.
func Open(dir, db string) (*os.File, bool) {
	path := filepath.Join(dir, db+".json")
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false
	}
	file, err := os.Open(path)
	if err != nil {
		library.LogCLI(err.Error(), 2)
		return nil, false
	}
	return file, true
}

// Write replaces the named artifact in dir with b. The bytes land in a temporary file next to
// the target which is then renamed over it, so a reader sees either the old or the new artifact.
func Write(dir, db string, b []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %s", library.ErrPersistenceFailure, err.Error())
	}
	f, err := os.CreateTemp(dir, db+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s", library.ErrPersistenceFailure, err.Error())
	}
	tmp := f.Name()
	if _, err = f.Write(b); err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, filepath.Join(dir, db+".json"))
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %s", library.ErrPersistenceFailure, db, err.Error())
	}
	return nil
}

// Directory is where the flat files of the given mind live.
func Directory(mind string) string {
	dir := MakeOrGetConfig().GetString("rootDir")
	dir = dir + MakeOrGetConfig().GetString("flatFileDir")
	dir = dir + mind + "/"
	return dir
}
