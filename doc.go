// Package workqueue implements an in-process, typed work queue with
// at-least-once delivery, visibility timeouts, retry with backoff,
// dead-lettering, and an embedded worker dispatcher.
//
// One or more producers hand typed work items to one or more consumers
// in the same process. Every accepted item is either completed,
// abandoned into the retry path, or moved to the dead-letter list — an
// in-flight item is never silently lost to a stalled consumer, because
// a visibility timeout reclaims it automatically.
//
// The queue does not persist across restarts, does not broadcast to
// multiple consumers, and does not guarantee strict FIFO ordering or
// exactly-once delivery. See Queue for the full operation set.
package workqueue
