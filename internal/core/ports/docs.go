// Package ports declares the contracts between the parcel lifecycle core
// and its infrastructure: repositories behind a unit of work, the outbox,
// the message publisher, and the Redis backed cache and geo index.
package ports
