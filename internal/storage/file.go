package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	logx "recur/pkg/logx"
)

// fileStore keeps the whole state in one JSON document.
//
// Saves write <path>.tmp and rename it over <path>, so a crash mid-write
// leaves the previous document intact.
type fileStore struct {
	fs   afero.Fs
	path string
	log  logx.Logger
}

func openFile(fs afero.Fs, cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	return &fileStore{fs: fs, path: path, log: log.With(logx.String("path", path))}, nil
}

func (s *fileStore) Close() error { return nil }

func (s *fileStore) Load(ctx context.Context) State {
	_ = ctx
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("state file absent; starting fresh")
		} else {
			s.log.Warn("state file unreadable; starting fresh", logx.Err(err))
		}
		return Empty()
	}

	st, err := decodeState(b)
	if err != nil {
		s.log.Warn("state file invalid; starting fresh", logx.Err(err))
		return Empty()
	}
	s.log.Debug("state loaded", logx.Int("entries", len(st.LastRun)))
	return st
}

func decodeState(b []byte) (State, error) {
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, err
	}
	return st.normalized(), nil
}

func encodeState(st State) ([]byte, error) {
	b, err := json.MarshalIndent(st.normalized(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (s *fileStore) Save(ctx context.Context, st State) error {
	_ = ctx
	b, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.fs.Remove(tmp)
		}
	}()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync state: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	committed = true

	s.log.Debug("state saved", logx.Int("entries", len(st.LastRun)))
	return nil
}
