// Package reconcile drives declared Pi-hole state onto real instances.
//
// # Flow
//
// A pass walks the configured instances one at a time. For each instance it
// authenticates, fetches the remote state per entity kind, diffs it against
// the declared state and, in sync mode, applies the differences. Instances
// never talk to each other and a failing instance never stops the pass.
//
// # Apply ordering
//
// Within an instance the kinds are handled in a fixed order: the config
// tree first, then lists, domains, groups and clients. Within a collection
// the old versions of changed items are batch-deleted first, then missing
// and replacement items are created, and finally items that are no longer
// declared are batch-deleted. Creating before deleting could collide with
// the stale record when an identity-relevant field changed.
//
// # Failure isolation
//
// Errors are contained at the (instance, kind) level. A failed fetch or
// apply marks that kind on the instance result and the pass moves on to
// the next kind; the remaining instances are unaffected.
package reconcile
