// Package observers holds the commit observers of the unit of work. They
// keep the Redis read models in step with committed writes and are best
// effort: a failure is logged and the next write or the cache TTL repairs
// the read model.
package observers
