/*
Package chain is a deterministic, single-threaded in-memory implementation
of the host runtime the contracts are written against. It backs the test
suites and the scenario CLI; it is not a real blockchain.

Execution follows the runtime's cooperative model: one entry-point
invocation runs to completion, batches it registered are enqueued as
receipts, and the queue is drained in FIFO order. A receipt is atomic:
actions apply in declared order and a failing action rolls back the
receipt's earlier effects, including attached deposits, before the
dependent continuation observes the Failure outcome. Block time advances
by a fixed interval per resolved receipt.
*/
package chain
