// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// FindNodeAtOffset walks the tree for the most specific node whose
// half-open span contains offset, or nil if none does. The translation
// unit itself is never returned — its declarations are searched
// directly.
func FindNodeAtOffset(root Node, offset int) Node {
	if tu, ok := root.(*TranslationUnit); ok {
		for _, d := range tu.Declarations {
			if found := findNodeAtOffset(d, offset); found != nil {
				return found
			}
		}
		return nil
	}
	return findNodeAtOffset(root, offset)
}

// findNodeAtOffset recurses into a non-root node: nil if offset falls
// outside node's span, else the deepest matching child, or node itself
// if no child matches. When multiple children's spans contain offset
// (e.g. zero-width spans), the last-visited child wins.
func findNodeAtOffset(node Node, offset int) Node {
	if node == nil || !node.Span().Contains(offset) {
		return nil
	}
	var best Node
	for _, child := range node.Children() {
		if found := findNodeAtOffset(child, offset); found != nil {
			best = found
		}
	}
	if best != nil {
		return best
	}
	return node
}

// FindNodeAtPosition resolves (line, col) to a byte offset via the
// translation unit's file and then runs FindNodeAtOffset.
func (n *TranslationUnit) FindNodeAtPosition(line, col int) Node {
	offset := n.File.LineColToOffset(line, col)
	return FindNodeAtOffset(n, offset)
}
