/*
Package common contains helpers shared by the donation platform contracts:
the error taxonomy of entry-point assertions, authorization predicates,
child-account naming strategies, token denomination helpers, typed wrappers
over raw contract storage and the generic outcome switch used by every
continuation.
*/
package common
