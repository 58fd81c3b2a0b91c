// Package queries contains the read side: tracking history, listings and
// caller resolution. Handlers run raw SQL over GORM and return read models
// shaped for the transport layer. Every query carries the calling actor and
// is authorized by the access policy before any row is returned.
package queries
