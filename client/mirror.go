package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/claralima1/Planner/internal/localstate"
)

// Mirror persists the last fetched list between processes. Implementations
// swallow their own failures: a broken mirror behaves like an empty one.
type Mirror interface {
	Load() ([]Study, bool)
	Save([]Study)
	Clear()
}

// NopMirror never stores anything.
type NopMirror struct{}

func (NopMirror) Load() ([]Study, bool) { return nil, false }
func (NopMirror) Save([]Study)          {}
func (NopMirror) Clear()                {}

// FileMirror keeps the list as a JSON array in a single file.
type FileMirror struct {
	path string
}

// NewFileMirror returns a FileMirror under the per-user state directory.
func NewFileMirror() (*FileMirror, error) {
	p, err := localstate.MirrorPath()
	if err != nil {
		return nil, err
	}
	return NewFileMirrorAt(p), nil
}

// NewFileMirrorAt returns a FileMirror backed by path.
func NewFileMirrorAt(path string) *FileMirror {
	return &FileMirror{path: path}
}

// Path returns the backing file.
func (m *FileMirror) Path() string { return m.path }

func (m *FileMirror) Load() ([]Study, bool) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug().Err(err).Str("path", m.path).Msg("mirror read failed")
		}
		return nil, false
	}
	var lst []Study
	if err := json.Unmarshal(data, &lst); err != nil || lst == nil {
		log.Debug().Err(err).Str("path", m.path).Msg("ignoring unreadable mirror")
		return nil, false
	}
	return lst, true
}

func (m *FileMirror) Save(lst []Study) {
	if lst == nil {
		lst = []Study{}
	}
	data, err := json.Marshal(lst)
	if err != nil {
		log.Debug().Err(err).Msg("mirror encode failed")
		return
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		log.Debug().Err(err).Str("path", m.path).Msg("mirror write failed")
	}
}

func (m *FileMirror) Clear() {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Debug().Err(err).Str("path", m.path).Msg("mirror clear failed")
	}
}
