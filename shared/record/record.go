// Package record implements the delimited single-line codec the entity files
// are written in. Every entity serializes to exactly one line of fixed-order
// fields; optional fields encode as empty strings.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental/shared/constant"
	"rental/shared/timezone"
)

const (
	DelimiterComma = ","
	DelimiterPipe  = "|"
)

// ErrMalformed marks a stored line that cannot be decoded. Loaders skip and
// log such lines; they never abort a full-file read.
var ErrMalformed = errors.New("malformed record")

// NewID returns an opaque unique token for a new record.
func NewID() string {
	return uuid.NewString()
}

// Clean strips the delimiter and line breaks from a free-text value so the
// encoded line stays a single parseable record.
func Clean(delimiter, value string) string {
	value = strings.ReplaceAll(value, delimiter, " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")

	return strings.TrimSpace(value)
}

// Join encodes fixed-order fields into one line.
func Join(delimiter string, fields ...string) string {
	return strings.Join(fields, delimiter)
}

func FormatInt(value int) string {
	return strconv.Itoa(value)
}

func FormatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func FormatDate(value time.Time) string {
	return timezone.Format(value, constant.DateFormat)
}

func FormatTime(value time.Time) string {
	if value.IsZero() {
		return constant.Empty
	}

	return timezone.Format(value, constant.DateTimeFormat)
}

// Fields decodes one delimited line with sticky error handling: the first
// coercion failure poisons the reader and Err reports it as malformed.
type Fields struct {
	parts []string
	err   error
}

// Split breaks a line into fields and enforces the entity's required minimum
// field count.
func Split(line, delimiter string, minFields int) (*Fields, error) {
	parts := strings.Split(line, delimiter)
	if len(parts) < minFields {
		return nil, fmt.Errorf("%w: got %d fields, want at least %d", ErrMalformed, len(parts), minFields)
	}

	return &Fields{parts: parts}, nil
}

// Get returns the raw field at index, or an empty string for optional trailing
// fields beyond the stored count.
func (f *Fields) Get(index int) string {
	if index >= len(f.parts) {
		return constant.Empty
	}

	return f.parts[index]
}

func (f *Fields) Int(index int) int {
	if f.err != nil {
		return 0
	}

	value, err := strconv.Atoi(f.Get(index))
	if err != nil {
		f.err = fmt.Errorf("%w: field %d: %s", ErrMalformed, index, err)

		return 0
	}

	return value
}

func (f *Fields) Float(index int) float64 {
	if f.err != nil {
		return 0
	}

	value, err := strconv.ParseFloat(f.Get(index), 64)
	if err != nil {
		f.err = fmt.Errorf("%w: field %d: %s", ErrMalformed, index, err)

		return 0
	}

	return value
}

func (f *Fields) Date(index int) time.Time {
	if f.err != nil {
		return time.Time{}
	}

	value, err := timezone.Parse(constant.DateFormat, f.Get(index))
	if err != nil {
		f.err = fmt.Errorf("%w: field %d: %s", ErrMalformed, index, err)

		return time.Time{}
	}

	return value
}

// Time parses the canonical timestamp layout, falling back to the layouts the
// two legacy file generations used.
func (f *Fields) Time(index int) time.Time {
	if f.err != nil {
		return time.Time{}
	}

	raw := f.Get(index)
	for _, layout := range []string{constant.DateTimeFormat, "2006-01-02T15:04:05", constant.DateFormat} {
		if value, err := timezone.Parse(layout, raw); err == nil {
			return value
		}
	}

	f.err = fmt.Errorf("%w: field %d: unparseable timestamp %q", ErrMalformed, index, raw)

	return time.Time{}
}

// OptionalInt is Int for fields that may be absent; an empty value decodes to
// zero without poisoning the reader.
func (f *Fields) OptionalInt(index int) int {
	if f.Get(index) == constant.Empty {
		return 0
	}

	return f.Int(index)
}

// OptionalTime is Time for fields that may be absent; an empty value decodes
// to the zero time without poisoning the reader.
func (f *Fields) OptionalTime(index int) time.Time {
	if f.Get(index) == constant.Empty {
		return time.Time{}
	}

	return f.Time(index)
}

func (f *Fields) Err() error {
	return f.err
}
