package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Errors returned by the operation log codec.
var (
	ErrMalformedRecord  = errors.New("malformed operation record")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidPosition  = errors.New("position must be a non-negative integer")
	ErrInvalidChar      = errors.New("char must be exactly one character")
	ErrInvalidText      = errors.New("text must be a string")
)

// Record field names.
const (
	fieldOp       = "op"
	fieldPos      = "pos"
	fieldChar     = "char"
	fieldText     = "text"
	fieldRegister = "register"
)

// maxRecordSize bounds a single line of an operation log.
const maxRecordSize = 16 << 20

// Encode returns the tagged JSON record for op. Fields appear in the order
// op, pos, then the payload field.
func Encode(op Operation) ([]byte, error) {
	if op == nil {
		return nil, fmt.Errorf("%w: nil operation", ErrUnknownOperation)
	}
	rec := []byte(`{}`)
	var setErr error
	set := func(path string, v any) {
		if setErr != nil {
			return
		}
		rec, setErr = sjson.SetBytes(rec, path, v)
	}

	setChar := func(r rune) {
		if setErr == nil && !utf8.ValidRune(r) {
			setErr = fmt.Errorf("%w: %U is not a Unicode scalar", ErrInvalidChar, r)
		}
		set(fieldChar, string(r))
	}

	set(fieldOp, op.Kind().String())
	switch o := op.(type) {
	case Insert:
		set(fieldPos, o.Pos)
		setChar(o.Char)
	case InsertData:
		set(fieldPos, o.Pos)
		set(fieldText, o.Text)
	case Delete:
		set(fieldPos, o.Pos)
		setChar(o.Char)
	case Remove:
		set(fieldPos, o.Pos)
		setChar(o.Char)
	case MacroRecord:
		set(fieldRegister, string(o.Register))
	case MacroPlay:
		set(fieldRegister, string(o.Register))
	case Undo, Redo, MacroStop:
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}
	if setErr != nil {
		return nil, setErr
	}
	return rec, nil
}

// Decode parses a tagged JSON record produced by Encode.
func Decode(data []byte) (Operation, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedRecord
	}
	tag := gjson.GetBytes(data, fieldOp)
	if tag.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing %q tag", ErrMalformedRecord, fieldOp)
	}
	kind, ok := ParseKind(tag.Str)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, tag.Str)
	}

	switch kind {
	case KindUndo:
		return Undo{}, nil
	case KindRedo:
		return Redo{}, nil
	case KindMacroStop:
		return MacroStop{}, nil
	case KindMacroRecord, KindMacroPlay:
		reg, err := decodeChar(data, fieldRegister)
		if err != nil {
			return nil, err
		}
		if kind == KindMacroRecord {
			return MacroRecord{Register: reg}, nil
		}
		return MacroPlay{Register: reg}, nil
	}

	pos, err := decodePos(data)
	if err != nil {
		return nil, err
	}
	if kind == KindInsertData {
		text := gjson.GetBytes(data, fieldText)
		if text.Type != gjson.String {
			return nil, ErrInvalidText
		}
		return InsertData{Pos: pos, Text: text.Str}, nil
	}

	ch, err := decodeChar(data, fieldChar)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindInsert:
		return Insert{Pos: pos, Char: ch}, nil
	case KindDelete:
		return Delete{Pos: pos, Char: ch}, nil
	default:
		return Remove{Pos: pos, Char: ch}, nil
	}
}

func decodePos(data []byte) (int, error) {
	r := gjson.GetBytes(data, fieldPos)
	if r.Type != gjson.Number || r.Num < 0 || r.Num != math.Trunc(r.Num) || r.Num > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPosition, r.Raw)
	}
	return int(r.Int()), nil
}

func decodeChar(data []byte, field string) (rune, error) {
	r := gjson.GetBytes(data, field)
	if r.Type != gjson.String || utf8.RuneCountInString(r.Str) != 1 {
		return 0, fmt.Errorf("%w: %s=%s", ErrInvalidChar, field, r.Raw)
	}
	ch, _ := utf8.DecodeRuneInString(r.Str)
	return ch, nil
}

// EncodeLog writes ops to w as newline-delimited records.
func EncodeLog(w io.Writer, ops []Operation) error {
	bw := bufio.NewWriter(w)
	for i, op := range ops {
		rec, err := Encode(op)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		bw.Write(rec)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// DecodeLog reads newline-delimited records from r. Blank lines are skipped.
func DecodeLog(r io.Reader) ([]Operation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	var ops []Operation
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		op, err := Decode(sc.Bytes())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}
