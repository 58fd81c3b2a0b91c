// Package job contains the Job aggregate: one driver's pickup or delivery
// assignment for a parcel, with its own small status machine.
package job
