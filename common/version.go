package common

const (
	major = 0
	minor = 1
	patch = 0

	// Version is the platform contract version reported by the version
	// entry point of every contract.
	Version = major*1_000_000 + minor*1_000 + patch
)
