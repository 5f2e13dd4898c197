// Package listedit implements the ordered-collection operations behind the
// editor: move, duplicate, remove and add. Every operation returns a new
// slice and leaves its input untouched.
package listedit

import (
	"errors"
	"slices"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrBoundary        = errors.New("element is already at the boundary")
	ErrElementType     = errors.New("element type does not match collection")
)

func inRange(index, length int) bool {
	return index >= 0 && index < length
}

// CanMoveUp reports whether the element at index may move towards the front.
func CanMoveUp(index, length int) bool {
	return inRange(index, length) && index > 0
}

// CanMoveDown reports whether the element at index may move towards the back.
func CanMoveDown(index, length int) bool {
	return inRange(index, length) && index < length-1
}

// Move removes the element at from and reinserts it at to.
func Move[T any](items []T, from, to int) ([]T, error) {
	if !inRange(from, len(items)) || !inRange(to, len(items)) {
		return items, ErrIndexOutOfRange
	}
	out := slices.Clone(items)
	if from == to {
		return out, nil
	}
	elem := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, elem), nil
}

// MoveUp moves the element at index one position towards the front.
func MoveUp[T any](items []T, index int) ([]T, error) {
	if !inRange(index, len(items)) {
		return items, ErrIndexOutOfRange
	}
	if !CanMoveUp(index, len(items)) {
		return items, ErrBoundary
	}
	return Move(items, index, index-1)
}

// MoveDown moves the element at index one position towards the back.
func MoveDown[T any](items []T, index int) ([]T, error) {
	if !inRange(index, len(items)) {
		return items, ErrIndexOutOfRange
	}
	if !CanMoveDown(index, len(items)) {
		return items, ErrBoundary
	}
	return Move(items, index, index+1)
}

// Duplicate inserts clone(items[index]) right after index.
func Duplicate[T any](items []T, index int, clone func(T) T) ([]T, error) {
	if !inRange(index, len(items)) {
		return items, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:index+1]...)
	out = append(out, clone(items[index]))
	return append(out, items[index+1:]...), nil
}

// Remove deletes the element at index, shifting later elements left.
func Remove[T any](items []T, index int) ([]T, error) {
	if !inRange(index, len(items)) {
		return items, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...), nil
}

// Add appends elem to a copy of items.
func Add[T any](items []T, elem T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, elem)
}
