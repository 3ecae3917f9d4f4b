package knowledge

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stratchat"
)

// Store holds the current knowledge snapshot for one document path.
// Readers never block; a reload swaps in a complete new snapshot.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex // serializes reloads
	current atomic.Pointer[stratchat.Knowledge]
}

// NewStore returns a store for the document at path holding an empty
// snapshot until Load is called.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{path: path, logger: logger}
	empty := stratchat.EmptyKnowledge()
	empty.Path = path
	s.current.Store(empty)
	return s
}

// Path returns the document path.
func (s *Store) Path() string { return s.path }

// Knowledge returns the current snapshot.
func (s *Store) Knowledge() *stratchat.Knowledge {
	return s.current.Load()
}

// Load builds the snapshot from the document. On failure the store holds an
// empty snapshot and the returned error carries the banner text.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := LoadFile(s.path)
	if err != nil {
		s.logger.Error("knowledge load failed", "path", s.path, "err", err)
		empty := stratchat.EmptyKnowledge()
		empty.Path = s.path
		s.current.Store(empty)
		return err
	}
	s.current.Store(k)
	s.logger.Info("knowledge loaded",
		"path", s.path,
		"entries", k.Base.Len(),
		"fingerprint", k.Fingerprint,
	)
	return nil
}

// Reload rebuilds the snapshot if the document changed. On failure the
// previous snapshot stays in place. It reports whether a new snapshot was
// installed.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("knowledge reload failed", "path", s.path, "err", err)
		return false, stratchat.WrapError(stratchat.EINVALID, err, BannerUnreadable)
	}
	if fp := xxhash.Sum64(data); s.current.Load().Fingerprint == fp {
		s.logger.Debug("knowledge unchanged", "path", s.path, "fingerprint", fp)
		return false, nil
	}
	k, err := Build(data)
	if err != nil {
		s.logger.Warn("knowledge reload failed", "path", s.path, "err", err)
		return false, err
	}
	k.Path = s.path
	s.current.Store(k)
	s.logger.Info("knowledge reloaded",
		"path", s.path,
		"entries", k.Base.Len(),
		"fingerprint", k.Fingerprint,
	)
	return true, nil
}
