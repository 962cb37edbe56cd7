package record_test

import (
	"errors"
	"testing"
	"time"

	"rental/shared/record"
)

func TestCleanStripsDelimiterAndLineBreaks(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		value     string
		want      string
	}{
		{name: "comma in free text", delimiter: record.DelimiterComma, value: "Jl. Sudirman, Blok C", want: "Jl. Sudirman  Blok C"},
		{name: "pipe in free text", delimiter: record.DelimiterPipe, value: "great|car", want: "great car"},
		{name: "line breaks", delimiter: record.DelimiterComma, value: "line one\nline two\r", want: "line one line two"},
		{name: "clean value untouched", delimiter: record.DelimiterComma, value: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := record.Clean(tt.delimiter, tt.value); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestJoinSplitRoundtrip(t *testing.T) {
	line := record.Join(record.DelimiterComma, "id-1", "user-1", "42", "19.5")

	fields, err := record.Split(line, record.DelimiterComma, 4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := fields.Get(0); got != "id-1" {
		t.Errorf("Get(0) = %q, want %q", got, "id-1")
	}

	if got := fields.Int(2); got != 42 {
		t.Errorf("Int(2) = %d, want 42", got)
	}

	if got := fields.Float(3); got != 19.5 {
		t.Errorf("Float(3) = %v, want 19.5", got)
	}

	if err := fields.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestSplitEnforcesMinimumFieldCount(t *testing.T) {
	_, err := record.Split("a,b", record.DelimiterComma, 3)
	if !errors.Is(err, record.ErrMalformed) {
		t.Errorf("Split error = %v, want ErrMalformed", err)
	}
}

func TestFieldsStickyError(t *testing.T) {
	fields, err := record.Split("id-1,not-a-number,7", record.DelimiterComma, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := fields.Int(1); got != 0 {
		t.Errorf("Int(1) = %d, want 0", got)
	}

	// The first failure poisons the reader; later reads return zero values.
	if got := fields.Int(2); got != 0 {
		t.Errorf("Int(2) after failure = %d, want 0", got)
	}

	if err := fields.Err(); !errors.Is(err, record.ErrMalformed) {
		t.Errorf("Err() = %v, want ErrMalformed", err)
	}
}

func TestOptionalFields(t *testing.T) {
	fields, err := record.Split("id-1,,", record.DelimiterComma, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := fields.OptionalInt(1); got != 0 {
		t.Errorf("OptionalInt(1) = %d, want 0", got)
	}

	if got := fields.OptionalTime(2); !got.IsZero() {
		t.Errorf("OptionalTime(2) = %v, want zero time", got)
	}

	if err := fields.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestGetBeyondStoredFields(t *testing.T) {
	fields, err := record.Split("id-1,user-1", record.DelimiterComma, 2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	if got := fields.Get(5); got != "" {
		t.Errorf("Get(5) = %q, want empty string", got)
	}
}

func TestTimeAcceptsLegacyLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "canonical layout", raw: "2026-03-10 14:30:00"},
		{name: "iso layout", raw: "2026-03-10T14:30:00"},
		{name: "date only", raw: "2026-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := record.Split(tt.raw, record.DelimiterComma, 1)
			if err != nil {
				t.Fatalf("Split: %v", err)
			}

			got := fields.Time(0)
			if got.IsZero() {
				t.Fatalf("Time(0) = zero time for %q", tt.raw)
			}

			if got.Year() != 2026 || got.Month() != time.March || got.Day() != 10 {
				t.Errorf("Time(0) = %v, want 2026-03-10", got)
			}

			if err := fields.Err(); err != nil {
				t.Errorf("Err() = %v, want nil", err)
			}
		})
	}
}

func TestFormatTimeZeroValue(t *testing.T) {
	if got := record.FormatTime(time.Time{}); got != "" {
		t.Errorf("FormatTime(zero) = %q, want empty string", got)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		id := record.NewID()
		if id == "" {
			t.Fatal("NewID returned an empty string")
		}

		if seen[id] {
			t.Fatalf("NewID returned duplicate %q", id)
		}

		seen[id] = true
	}
}
