// Package state holds the live order form. Every setter recomputes the error
// entry of the field it touched and derives submit eligibility from the full
// current values; eligibility is never set directly. A Store is guarded by a
// mutex so a view and an in-flight submission may share it.
package state
