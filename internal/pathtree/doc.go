// SPDX-License-Identifier: MPL-2.0

// Package pathtree builds an ordered tree of relative file paths for display.
//
// Every inserted path becomes a chain of nodes from the synthetic root to a
// leaf. Intermediate directories and final file names share the same node
// type; Leaf records whether an inserted path ended at a node.
package pathtree
