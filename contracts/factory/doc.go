/*
Package factory implements the Factory contract of the donation platform.

The factory provisions one Donation Account sub-contract per organization,
keeps the registry of provisioned accounts and accrues the platform fees
the donation accounts forward from incoming donations. Provisioning is an
ordered action batch against the derived child account: create it, deploy
the donation account program, attach the caller's full-access key and
invoke the program's init entry point with the attached stake. The child
is registered only in the success branch of the on_account_created
continuation.

# Entry points

	init                               one-time setup, minimum account
	                                   balance attached
	create_account / add_account /
	add_donate_account                 provisions the caller's donation
	                                   account
	deposit_fees                       fee intake from provisioned
	                                   accounts, synchronous
	withdraw_fees                      owner-gated fee withdrawal
	get_accounts, get_fees, get_owners read-only queries
	version                            contract version

on_account_created and on_fees_withdrawn are private continuations.

# Known accounting gaps

Two failure branches deliberately leave value outside the ledger's
accounting, mirroring the platform's product-level decision to accept the
loss rather than refund:

  - a failed fee-forwarding leg leaves the donation's net amount on the
    donation account without a ledger record;
  - the stake attached to a provisioning batch that ultimately fails may
    already have been consumed by the partially created child account and
    is not refunded or tracked.
*/
package factory
