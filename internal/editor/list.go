// Package editor implements list-valued sub-editors: ordered collections of
// scalar or small-object items edited inside one buffer field (keywords,
// achievements, talking points).
//
// Every operation is a pure in-memory transformation; nothing here touches
// the network. Constraints are checked synchronously and a rejected operation
// leaves the list unchanged.
package editor

import (
	"fmt"
	"strings"
)

// Reason classifies why a list operation was rejected.
type Reason int

const (
	TooFew Reason = iota
	TooMany
	Duplicate
	TooLong
	Empty
	BadIndex
)

// ConstraintError is a local, recoverable rejection of a list operation.
type ConstraintError struct {
	Reason  Reason
	Message string
}

func (e *ConstraintError) Error() string {
	return e.Message
}

// Rules configures a List. The zero value of any field disables that rule.
type Rules[T any] struct {
	// Label names the items in error messages ("keywords", "achievements").
	Label string

	// Min blocks Remove below this count; Max blocks Add above it.
	Min, Max int

	// Normalize is applied to every incoming item before validation, the
	// duplicate check, and storage.
	Normalize func(T) T

	// Key derives the identity used for the uniqueness check. Nil disables
	// duplicate detection.
	Key func(T) string

	// Validate checks one (already normalized) item.
	Validate func(T) error
}

// List holds the working copy of one list-valued buffer field.
type List[T any] struct {
	rules Rules[T]
	items []T
}

// NewList seeds a list editor with the current field value. Seed items are
// taken as-is: they are server-owned state, not user input.
func NewList[T any](rules Rules[T], items []T) *List[T] {
	if rules.Label == "" {
		rules.Label = "items"
	}
	return &List[T]{rules: rules, items: append([]T(nil), items...)}
}

// Items returns a copy of the current list.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Add appends item after normalization, validation, and the duplicate check.
func (l *List[T]) Add(item T) error {
	if l.rules.Max > 0 && len(l.items) >= l.rules.Max {
		return &ConstraintError{Reason: TooMany, Message: fmt.Sprintf("at most %d %s allowed", l.rules.Max, l.rules.Label)}
	}

	item, err := l.prepare(item, -1)
	if err != nil {
		return err
	}

	l.items = append(l.items, item)
	return nil
}

// Remove deletes the item at index i unless that would drop the list below
// the configured floor.
func (l *List[T]) Remove(i int) error {
	if i < 0 || i >= len(l.items) {
		return &ConstraintError{Reason: BadIndex, Message: fmt.Sprintf("no item at index %d", i)}
	}
	if l.rules.Min > 0 && len(l.items) <= l.rules.Min {
		return &ConstraintError{Reason: TooFew, Message: fmt.Sprintf("minimum %d %s required", l.rules.Min, l.rules.Label)}
	}

	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Update replaces the item at index i, applying the same checks as Add. The
// item being replaced is excluded from the duplicate check.
func (l *List[T]) Update(i int, item T) error {
	if i < 0 || i >= len(l.items) {
		return &ConstraintError{Reason: BadIndex, Message: fmt.Sprintf("no item at index %d", i)}
	}

	item, err := l.prepare(item, i)
	if err != nil {
		return err
	}

	l.items[i] = item
	return nil
}

// prepare normalizes and validates item and runs the duplicate check,
// ignoring the element at skip (-1 to check all).
func (l *List[T]) prepare(item T, skip int) (T, error) {
	if l.rules.Normalize != nil {
		item = l.rules.Normalize(item)
	}
	if l.rules.Validate != nil {
		if err := l.rules.Validate(item); err != nil {
			return item, err
		}
	}
	if l.rules.Key != nil {
		key := l.rules.Key(item)
		for j, existing := range l.items {
			if j == skip {
				continue
			}
			if l.rules.Key(existing) == key {
				return item, &ConstraintError{Reason: Duplicate, Message: fmt.Sprintf("duplicate %s: %q", singular(l.rules.Label), key)}
			}
		}
	}
	return item, nil
}

func singular(label string) string {
	return strings.TrimSuffix(label, "s")
}

// NewStringList builds a keyword-style editor: items are trimmed and
// lower-cased before storage, must be non-empty, at most maxLen runes long,
// and unique.
func NewStringList(items []string, label string, min, max, maxLen int) *List[string] {
	return NewList(Rules[string]{
		Label: label,
		Min:   min,
		Max:   max,
		Normalize: func(s string) string {
			return strings.ToLower(strings.TrimSpace(s))
		},
		Key: func(s string) string { return s },
		Validate: func(s string) error {
			if s == "" {
				return &ConstraintError{Reason: Empty, Message: singular(label) + " cannot be empty"}
			}
			if maxLen > 0 && len([]rune(s)) > maxLen {
				return &ConstraintError{Reason: TooLong, Message: fmt.Sprintf("%s longer than %d characters", singular(label), maxLen)}
			}
			return nil
		},
	}, items)
}
