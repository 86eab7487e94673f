// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for slot pools.
//
// Provides:
//   - TOML pool declarations turned into a named PoolSet
//   - A thread-safe metrics registry fed from pool accounting
//   - Debug probes exposing live pool state and platform facts
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
