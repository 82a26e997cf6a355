// SPDX-License-Identifier: MPL-2.0

// Package grab runs the detect, aggregate and copy pipeline.
//
// Ecosystems are tried in a fixed priority order, each from the same origin
// directory. The first ecosystem whose marker is found decides the outcome:
// its sources are aggregated and copied, or the run reports that the project
// holds no sources. Later ecosystems are never consulted once one matched.
package grab
