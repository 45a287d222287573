// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers used when translating record-store values.
*/
package slice

// Map transforms every element of input. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// OrEmpty returns input, or a non-nil empty slice when input is nil.
func OrEmpty[T any](input []T) []T {
	if input == nil {
		return []T{}
	}
	return input
}

// Copy returns a shallow copy of input that never aliases it.
// A nil input yields an empty, non-nil slice.
func Copy[T any](input []T) []T {
	result := make([]T, len(input))
	copy(result, input)
	return result
}
