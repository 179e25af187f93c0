package macro

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dshills/keyline/internal/engine/history"
)

type persistedMacro struct {
	Register string            `json:"register"`
	Ops      []json.RawMessage `json:"ops"`
}

type persistedData struct {
	Version    int              `json:"version"`
	SavedAt    time.Time        `json:"saved_at"`
	LastPlayed string           `json:"last_played,omitempty"`
	Macros     []persistedMacro `json:"macros"`
}

const currentVersion = 1

// Export returns the JSON form of every register.
func Export(r *Recorder) ([]byte, error) {
	regs, last := r.snapshot()

	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now(),
		Macros:  make([]persistedMacro, 0, len(regs)),
	}
	if last != 0 {
		data.LastPlayed = string(last)
	}

	for _, reg := range slices.Sorted(maps.Keys(regs)) {
		ops := regs[reg]
		m := persistedMacro{Register: string(reg), Ops: make([]json.RawMessage, len(ops))}
		for i, op := range ops {
			rec, err := history.Encode(op)
			if err != nil {
				return nil, fmt.Errorf("register %c: %w", reg, err)
			}
			m.Ops[i] = rec
		}
		data.Macros = append(data.Macros, m)
	}

	return json.MarshalIndent(data, "", "  ")
}

// Import replaces every register with the content of JSON produced by
// Export. Registers with invalid names are skipped.
func Import(r *Recorder, jsonData []byte) error {
	var data persistedData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal macros: %w", err)
	}
	if data.Version > currentVersion {
		return fmt.Errorf("unsupported macros file version: %d (max supported: %d)",
			data.Version, currentVersion)
	}

	regs := make(map[rune][]history.Operation, len(data.Macros))
	for _, m := range data.Macros {
		reg := registerFromString(m.Register)
		if reg == 0 {
			continue
		}
		ops := make([]history.Operation, 0, len(m.Ops))
		for i, rec := range m.Ops {
			op, err := history.Decode(rec)
			if err != nil {
				return fmt.Errorf("register %c op %d: %w", reg, i, err)
			}
			if op.Kind().IsEdit() {
				ops = append(ops, op)
			}
		}
		regs[reg] = ops
	}

	r.replace(regs, registerFromString(data.LastPlayed))
	return nil
}

// Save writes every register to path. The file is written to a temporary
// file and renamed into place.
func Save(r *Recorder, path string) error {
	jsonData, err := Export(r)
	if err != nil {
		return fmt.Errorf("failed to marshal macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads registers from path. A missing file leaves the recorder
// untouched.
func Load(r *Recorder, path string) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read macros file: %w", err)
	}
	return Import(r, jsonData)
}

func registerFromString(s string) rune {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0
	}
	return NormalizeRegister(rs[0])
}
