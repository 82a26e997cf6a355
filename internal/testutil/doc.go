// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers build in-memory filesystem fixtures (MemTree, MustWriteFile,
// MustMkdirAll) and inject read failures (FailingFs).
package testutil
