package macro

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/keyline/internal/engine/history"
)

// Errors returned by the recorder.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrMacroNotFound    = errors.New("macro not found")
)

// Recorder records edit operations into registers.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	register   rune
	ops        []history.Operation
	registers  map[rune][]history.Operation
	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]history.Operation),
	}
}

// Start begins recording to register.
func (r *Recorder) Start(register rune) error {
	reg := NormalizeRegister(register)
	if reg == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w to register %c", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.register = reg
	r.ops = nil
	return nil
}

// Stop ends the recording and stores it in its register, replacing any
// previous content. It returns the register and the number of recorded
// operations.
func (r *Recorder) Stop() (register rune, n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return 0, 0, ErrNotRecording
	}
	r.recording = false
	r.registers[r.register] = r.ops
	r.ops = nil
	return r.register, len(r.registers[r.register]), nil
}

// Cancel abandons the active recording without storing it.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	r.ops = nil
}

// Record appends op to the active recording. Operations that are not edits
// and calls made while idle are ignored.
func (r *Recorder) Record(op history.Operation) {
	if op == nil || !op.Kind().IsEdit() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.ops = append(r.ops, op)
	}
}

// IsRecording returns true if a recording is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded, or 0.
func (r *Recorder) CurrentRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.register
	}
	return 0
}

// Get returns a copy of the operations stored in register.
func (r *Recorder) Get(register rune) ([]history.Operation, error) {
	reg := NormalizeRegister(register)
	if reg == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ops, ok := r.registers[reg]
	if !ok {
		return nil, fmt.Errorf("%w: register %c", ErrMacroNotFound, reg)
	}
	return slices.Clone(ops), nil
}

// Set stores ops in register. Non-edit operations are dropped.
func (r *Recorder) Set(register rune, ops []history.Operation) error {
	reg := NormalizeRegister(register)
	if reg == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	saved := make([]history.Operation, 0, len(ops))
	for _, op := range ops {
		if op != nil && op.Kind().IsEdit() {
			saved = append(saved, op)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers[reg] = saved
	return nil
}

// Clear empties register.
func (r *Recorder) Clear(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registers, NormalizeRegister(register))
}

// Registers returns the names of all filled registers in sorted order.
func (r *Recorder) Registers() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := make([]rune, 0, len(r.registers))
	for reg := range r.registers {
		regs = append(regs, reg)
	}
	slices.Sort(regs)
	return regs
}

// MarkPlayed remembers register as the most recently played.
func (r *Recorder) MarkPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the most recently played register, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

func (r *Recorder) snapshot() (map[rune][]history.Operation, rune) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := make(map[rune][]history.Operation, len(r.registers))
	for reg, ops := range r.registers {
		regs[reg] = slices.Clone(ops)
	}
	return regs, r.lastPlayed
}

func (r *Recorder) replace(regs map[rune][]history.Operation, lastPlayed rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = regs
	r.lastPlayed = lastPlayed
}
