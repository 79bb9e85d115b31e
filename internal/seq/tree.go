/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package seq

// Weight balance parameters of Adams' trees. A subtree holds at most delta
// times the elements of its sibling; ratio picks single or double rotations.
const (
	delta = 3
	ratio = 2
)

// node is never modified once it is reachable from a Seq.
type node[T any] struct {
	left, right *node[T]
	val         T
	size        int
}

func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func mk[T any](l *node[T], v T, r *node[T]) *node[T] {
	return &node[T]{left: l, right: r, val: v, size: size(l) + size(r) + 1}
}

// build returns a perfectly balanced tree over values.
func build[T any](values []T) *node[T] {
	if len(values) == 0 {
		return nil
	}
	m := len(values) / 2
	return mk(build(values[:m]), values[m], build(values[m+1:]))
}

// balance restores the weight invariant after one side grew or shrank by at
// most one element, or after a link or merge step.
func balance[T any](l *node[T], v T, r *node[T]) *node[T] {
	sl, sr := size(l), size(r)
	switch {
	case sl+sr <= 1:
		return mk(l, v, r)
	case sr > delta*sl:
		if size(r.left) < ratio*size(r.right) {
			return mk(mk(l, v, r.left), r.val, r.right)
		}
		rl := r.left
		return mk(mk(l, v, rl.left), rl.val, mk(rl.right, r.val, r.right))
	case sl > delta*sr:
		if size(l.right) < ratio*size(l.left) {
			return mk(l.left, l.val, mk(l.right, v, r))
		}
		lr := l.right
		return mk(mk(l.left, l.val, lr.left), lr.val, mk(lr.right, v, r))
	}
	return mk(l, v, r)
}

func get[T any](n *node[T], i int) T {
	for {
		ls := size(n.left)
		switch {
		case i < ls:
			n = n.left
		case i == ls:
			return n.val
		default:
			i -= ls + 1
			n = n.right
		}
	}
}

func set[T any](n *node[T], i int, v T) *node[T] {
	ls := size(n.left)
	switch {
	case i < ls:
		return mk(set(n.left, i, v), n.val, n.right)
	case i == ls:
		return mk(n.left, v, n.right)
	}
	return mk(n.left, n.val, set(n.right, i-ls-1, v))
}

func insert[T any](n *node[T], i int, v T) *node[T] {
	if n == nil {
		return mk(nil, v, nil)
	}
	ls := size(n.left)
	if i <= ls {
		return balance(insert(n.left, i, v), n.val, n.right)
	}
	return balance(n.left, n.val, insert(n.right, i-ls-1, v))
}

func remove[T any](n *node[T], i int) *node[T] {
	ls := size(n.left)
	switch {
	case i < ls:
		return balance(remove(n.left, i), n.val, n.right)
	case i > ls:
		return balance(n.left, n.val, remove(n.right, i-ls-1))
	}
	return glue(n.left, n.right)
}

// glue joins two balanced siblings whose parent was removed.
func glue[T any](l, r *node[T]) *node[T] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.size > r.size:
		last := size(l) - 1
		return balance(remove(l, last), get(l, last), r)
	}
	return balance(l, get(r, 0), remove(r, 0))
}

// link joins l, v and r of any sizes in O(log n).
func link[T any](l *node[T], v T, r *node[T]) *node[T] {
	switch {
	case l == nil:
		return insert(r, 0, v)
	case r == nil:
		return insert(l, l.size, v)
	case delta*l.size < r.size:
		return balance(link(l, v, r.left), r.val, r.right)
	case delta*r.size < l.size:
		return balance(l.left, l.val, link(l.right, v, r))
	}
	return mk(l, v, r)
}

// merge concatenates l and r of any sizes in O(log n).
func merge[T any](l, r *node[T]) *node[T] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case delta*l.size < r.size:
		return balance(merge(l, r.left), r.val, r.right)
	case delta*r.size < l.size:
		return balance(l.left, l.val, merge(l.right, r))
	}
	return glue(l, r)
}

// split returns the first i elements and the rest.
func split[T any](n *node[T], i int) (*node[T], *node[T]) {
	if n == nil {
		return nil, nil
	}
	ls := size(n.left)
	if i <= ls {
		a, b := split(n.left, i)
		return a, link(b, n.val, n.right)
	}
	a, b := split(n.right, i-ls-1)
	return link(n.left, n.val, a), b
}

// filter drops the elements matching f and reports whether any were dropped.
// Untouched subtrees are returned as is.
func filter[T any](n *node[T], f func(T) bool) (*node[T], bool) {
	if n == nil {
		return nil, false
	}
	l, dl := filter(n.left, f)
	drop := f(n.val)
	r, dr := filter(n.right, f)
	switch {
	case drop:
		return merge(l, r), true
	case dl || dr:
		return link(l, n.val, r), true
	}
	return n, false
}
