// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU pinning for load generators that want every worker on its own core,
// so contention on pool cursors comes from real parallelism rather than
// goroutine interleaving on one thread.
package concurrency
