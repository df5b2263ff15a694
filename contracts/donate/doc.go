/*
Package donate implements the Donation Account contract, provisioned by the
Factory contract for a single organization.

The contract accepts donations, splits off a platform fee and forwards it
to the factory, records confirmed donations and lets the owning
organization withdraw the accumulated balance. Every money-moving entry
point only dispatches scheduled calls; the ledger mutates exclusively in
the continuation that observes the calls' outcome, so a failed leg never
leaves the ledger overstated.

# Entry points

	init                    one-time setup, requires the minimum account
	                        balance attached and the factory reference
	donate / send_donation  forwards fee = attached/100 to the factory,
	                        then records net = attached - fee on success
	withdraw_donations      owner- or parent-gated transfer of ledger funds
	get_balance             confirmed ledger balance
	get_donations           donation records, full or paginated listing
	get_owners              owner set
	version                 contract version

on_donate and on_donations_withdrawn are private continuations; callers
other than the contract instance itself are rejected.
*/
package donate
