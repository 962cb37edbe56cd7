// Package repository implements the generic flat-file store every entity
// repository is built on: one newline-delimited file per entity, full-file
// reads and rewrites, no index and no cache. FindById is a linear scan by
// design; every call re-reads and re-parses the backing file.
package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"rental/infras/flatfile"
	"rental/infras/otel"
	"rental/shared/constant"
	"rental/shared/failure"
)

// UniqueKey declares a natural key (such as a username) that Append and
// Update re-validate against the stored records.
type UniqueKey[T any] struct {
	Name  string
	Value func(T) string
}

type Store[T any] struct {
	entity string
	file   *flatfile.File
	encode func(T) string
	decode func(string) (T, error)
	id     func(T) string
	keys   []UniqueKey[T]
	otel   otel.Otel
}

func NewStore[T any](
	entity string,
	file *flatfile.File,
	encode func(T) string,
	decode func(string) (T, error),
	id func(T) string,
	keys []UniqueKey[T],
	ot otel.Otel,
) *Store[T] {
	return &Store[T]{
		entity: entity,
		file:   file,
		encode: encode,
		decode: decode,
		id:     id,
		keys:   keys,
		otel:   ot,
	}
}

// LoadAll reads every record in file order. Malformed lines are logged and
// skipped; one corrupt row never blocks loading the rest of the file.
func (s *Store[T]) LoadAll(ctx context.Context) (records []T, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".LoadAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	lines, err := s.file.ReadLines()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", s.entity, err)
	}

	for _, line := range lines {
		if line == constant.Empty {
			continue
		}

		decoded, err := s.decode(line)
		if err != nil {
			log.Warn().Err(err).Str("entity", s.entity).Str("line", line).Msg("skipping malformed record")

			continue
		}

		records = append(records, decoded)
	}

	return records, nil
}

// FindByID scans the full file for a matching record.
func (s *Store[T]) FindByID(ctx context.Context, id string) (record T, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".FindByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.LoadAll(ctx)
	if err != nil {
		return record, false, err
	}

	for _, candidate := range records {
		if s.id(candidate) == id {
			return candidate, true, nil
		}
	}

	return record, false, nil
}

// Append adds one record to the end of the file, rejecting duplicate IDs and
// duplicate unique keys without touching the file.
func (s *Store[T]) Append(ctx context.Context, record T) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Append")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	for _, existing := range records {
		if s.id(existing) == s.id(record) {
			return failure.Conflict(fmt.Sprintf("%s with id %s already exists", s.entity, s.id(record))) // nolint:wrapcheck
		}

		for _, key := range s.keys {
			if key.Value(existing) == key.Value(record) {
				return failure.Conflict(fmt.Sprintf("%s with %s %q already exists", s.entity, key.Name, key.Value(record))) // nolint:wrapcheck
			}
		}
	}

	if err := s.file.AppendLine(s.encode(record)); err != nil {
		return fmt.Errorf("failed to append %s record: %w", s.entity, err)
	}

	return nil
}

// Update substitutes the record with a matching ID and rewrites the whole
// file, re-validating unique keys against every other record.
func (s *Store[T]) Update(ctx context.Context, record T) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	index := -1

	for i, existing := range records {
		if s.id(existing) == s.id(record) {
			index = i

			continue
		}

		for _, key := range s.keys {
			if key.Value(existing) == key.Value(record) {
				return failure.Conflict(fmt.Sprintf("%s with %s %q already exists", s.entity, key.Name, key.Value(record))) // nolint:wrapcheck
			}
		}
	}

	if index == -1 {
		return failure.NotFound(s.entity + " not found") // nolint:wrapcheck
	}

	records[index] = record

	return s.replaceAll(records)
}

// Delete removes the record with a matching ID and rewrites the remainder.
func (s *Store[T]) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}

	remainder := make([]T, 0, len(records))
	for _, existing := range records {
		if s.id(existing) == id {
			continue
		}

		remainder = append(remainder, existing)
	}

	if len(remainder) == len(records) {
		return failure.NotFound(s.entity + " not found") // nolint:wrapcheck
	}

	return s.replaceAll(remainder)
}

// ReplaceAll overwrites the file with the given records in the given order.
func (s *Store[T]) ReplaceAll(ctx context.Context, records []T) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ReplaceAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.replaceAll(records)
}

func (s *Store[T]) replaceAll(records []T) error {
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, s.encode(record))
	}

	if err := s.file.WriteLines(lines); err != nil {
		return fmt.Errorf("failed to rewrite %s file: %w", s.entity, err)
	}

	return nil
}
