// Package driver holds the Driver profile aggregate.
package driver
