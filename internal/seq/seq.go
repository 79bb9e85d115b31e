/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package seq provides Seq, an ordered persistent sequence with structural
// sharing. Every mutator returns a new Seq and leaves the receiver untouched,
// so a previous value can be kept around (for example by the history) at no
// cost.
//
// A Seq is a weight balanced binary tree keyed by position. Get, Set, Insert,
// RemoveAt, Append, Prepend and Slice copy only the O(log n) nodes on the
// paths they touch; every other subtree is shared with the receiver.
package seq

import "iter"

// Seq is an immutable ordered sequence. The zero value is an empty sequence.
type Seq[T any] struct {
	root *node[T]
}

// Of creates a sequence holding values in order.
func Of[T any](values ...T) Seq[T] {
	return Seq[T]{root: build(values)}
}

// Len returns the number of elements.
func (s Seq[T]) Len() int { return size(s.root) }

// IsEmpty reports whether the sequence has no elements.
func (s Seq[T]) IsEmpty() bool { return s.root == nil }

// At returns the element at index i. It panics when i is out of range.
func (s Seq[T]) At(i int) T {
	s.check(i)
	return get(s.root, i)
}

func (s Seq[T]) check(i int) {
	if i < 0 || i >= s.Len() {
		panic("seq: index out of range")
	}
}

// Last returns the final element and false when the sequence is empty.
func (s Seq[T]) Last() (T, bool) {
	if s.root == nil {
		var zero T
		return zero, false
	}
	return get(s.root, s.root.size-1), true
}

// Set returns a sequence with element i replaced by v.
func (s Seq[T]) Set(i int, v T) Seq[T] {
	s.check(i)
	return Seq[T]{root: set(s.root, i, v)}
}

// Append returns a sequence with values added at the end.
func (s Seq[T]) Append(values ...T) Seq[T] {
	switch len(values) {
	case 0:
		return s
	case 1:
		return Seq[T]{root: insert(s.root, s.Len(), values[0])}
	}
	return Seq[T]{root: merge(s.root, build(values))}
}

// Prepend returns a sequence with v added at the front.
func (s Seq[T]) Prepend(v T) Seq[T] { return Seq[T]{root: insert(s.root, 0, v)} }

// Insert returns a sequence with v placed at index i, shifting later elements.
// Indices past either end are clamped.
func (s Seq[T]) Insert(i int, v T) Seq[T] {
	i = max(0, min(i, s.Len()))
	return Seq[T]{root: insert(s.root, i, v)}
}

// RemoveAt returns a sequence without element i. Out of range indices are ignored.
func (s Seq[T]) RemoveAt(i int) Seq[T] {
	if i < 0 || i >= s.Len() {
		return s
	}
	return Seq[T]{root: remove(s.root, i)}
}

// Slice returns elements [start, end).
func (s Seq[T]) Slice(start, end int) Seq[T] {
	start, end = max(0, start), min(end, s.Len())
	if start >= end {
		return Seq[T]{}
	}
	if start == 0 && end == s.Len() {
		return s
	}
	head, _ := split(s.root, end)
	_, mid := split(head, start)
	return Seq[T]{root: mid}
}

// Concat returns a followed by b.
func Concat[T any](a, b Seq[T]) Seq[T] { return Seq[T]{root: merge(a.root, b.root)} }

// All iterates over index and element pairs in order.
func (s Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		var stack []*node[T]
		i := 0
		for n := s.root; n != nil || len(stack) > 0; {
			for ; n != nil; n = n.left {
				stack = append(stack, n)
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(i, n.val) {
				return
			}
			i++
			n = n.right
		}
	}
}

// Backward iterates from the last element to the first.
func (s Seq[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		var stack []*node[T]
		i := s.Len() - 1
		for n := s.root; n != nil || len(stack) > 0; {
			for ; n != nil; n = n.right {
				stack = append(stack, n)
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(i, n.val) {
				return
			}
			i--
			n = n.left
		}
	}
}

// Items copies the elements into a new slice.
func (s Seq[T]) Items() []T {
	out := make([]T, 0, s.Len())
	for _, v := range s.All() {
		out = append(out, v)
	}
	return out
}

// IndexFunc returns the index of the first element satisfying f, or -1.
func (s Seq[T]) IndexFunc(f func(T) bool) int {
	for i, v := range s.All() {
		if f(v) {
			return i
		}
	}
	return -1
}

// RemoveFunc returns a sequence without the elements satisfying f. f is
// called once per element in order. Subtrees without a match are shared, so
// k removals rebuild O(k log n) nodes.
func (s Seq[T]) RemoveFunc(f func(T) bool) Seq[T] {
	root, removed := filter(s.root, f)
	if !removed {
		return s
	}
	return Seq[T]{root: root}
}

// Same reports whether a and b share the same underlying storage, which
// implies equal contents.
func Same[T any](a, b Seq[T]) bool { return a.root == b.root }

// Index returns the index of v in s, or -1.
func Index[T comparable](s Seq[T], v T) int {
	return s.IndexFunc(func(x T) bool { return x == v })
}

// Contains reports whether v is an element of s.
func Contains[T comparable](s Seq[T], v T) bool { return Index(s, v) >= 0 }

// Remove returns s without the first occurrence of v.
func Remove[T comparable](s Seq[T], v T) Seq[T] { return s.RemoveAt(Index(s, v)) }

// Replace returns s with the first occurrence of old replaced by v.
func Replace[T comparable](s Seq[T], old, v T) Seq[T] {
	i := Index(s, old)
	if i < 0 {
		return s
	}
	return s.Set(i, v)
}

// Swap returns s with the elements at i and j exchanged.
func Swap[T any](s Seq[T], i, j int) Seq[T] {
	if i == j {
		return s
	}
	a, b := s.At(i), s.At(j)
	return s.Set(i, b).Set(j, a)
}

// Move returns s with the element at from relocated to index to.
func Move[T any](s Seq[T], from, to int) Seq[T] {
	if from == to {
		return s
	}
	v := s.At(from)
	return s.RemoveAt(from).Insert(to, v)
}
