// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// Walk traverses an AST in depth-first order, calling before(node) on
// entry and after(node) on exit. If before returns false, Walk does not
// descend into node's children. Either callback may be nil.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if node == nil {
		return
	}
	descend := true
	if before != nil {
		descend = before(node)
	}
	if descend {
		for _, c := range node.Children() {
			Walk(c, before, after)
		}
	}
	if after != nil {
		after(node)
	}
}

// Count returns the number of nodes in the subtree rooted at node,
// including node itself.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool { n++; return true }, nil)
	return n
}
