/*
Package runtime defines the surface of the host blockchain runtime as seen
by contract code: the execution context of the current call, per-account
key/value storage, the asynchronous promise scheduler and the account-name
grammar.

Contract code never talks to a concrete chain directly. Every entry point
receives an [Env] and performs all reads, writes and call scheduling through
it, so the backing runtime is swappable. The in-memory implementation used
by tests and the CLI lives in internal/chain.

Scheduled calls are grouped into batches of ordered actions against a single
target account. A batch can be chained with [PromiseBatch.Then] to register
a continuation that runs after the batch resolves and observes its outcome
as a [PromiseResult]. The outcome carries exactly one of three states:
not ready, succeeded or failed.
*/
package runtime
