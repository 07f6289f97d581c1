// Package catalog enumerates the stores a run can select and opens them
// on demand.
//
// The listing is stable for the lifetime of a configuration: index 0 is
// the live mailbox, index 1 is the archive container. The CLI validates
// selected indices against the listing before any connection is made;
// an open failure is a FatalConnectError and aborts the run.
package catalog
