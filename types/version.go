package types

// Version is the canonical project version.
// The CLI, the upload wire format, and the notification event format
// share this version.
const Version = "0.3.0"

// ContractVersion is stamped on notification events.
// Lockstep with Version.
const ContractVersion = Version
