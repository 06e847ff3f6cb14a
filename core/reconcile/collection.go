package reconcile

import (
	"context"

	"pihole-manager/core/diff"
	"pihole-manager/core/pihole"

	"go.uber.org/zap"
)

// collectionOps bundles the kind-specific pieces the generic routines need:
// identity and equivalence plus the three remote mutations. One bundle
// exists per entity kind; the control flow never varies between kinds.
type collectionOps[T any] struct {
	// kind names the collection in logs and failure markers.
	kind string

	// key extracts the natural identity of an item.
	key func(T) string

	// same reports whether the desired and actual versions of an item are
	// equivalent on the managed fields.
	same func(desired, actual T) bool

	// fetch returns the remote collection.
	fetch func(ctx context.Context) ([]T, error)

	// create adds one item that does not exist remotely.
	create func(ctx context.Context, item T) error

	// update replaces the remote version of one item.
	update func(ctx context.Context, item T) error

	// remove deletes items in one batch call. Kinds without a remote batch
	// endpoint iterate inside.
	remove func(ctx context.Context, items []T) error
}

// diffCollection fetches the remote collection and diffs the declared items
// against it. The returned diff is nil when both sides are equivalent.
func diffCollection[T any](ctx context.Context, ops collectionOps[T], desired []T) (*diff.ItemsDiff[T], error) {
	actual, err := ops.fetch(ctx)
	if err != nil {
		return nil, err
	}

	changes := diff.Items(desired, actual, ops.key, ops.same)
	if changes.Empty() {
		return nil, nil
	}
	return changes, nil
}

// syncCollection diffs the declared items against the remote collection and
// applies the resulting buckets. Stale versions of changed items are deleted
// first, additions created, changed items recreated with their desired
// fields, and removed items deleted last.
func syncCollection[T any](ctx context.Context, ops collectionOps[T], desired []T, dryRun bool, log *zap.Logger) (*diff.ItemsDiff[T], error) {
	changes, err := diffCollection(ctx, ops, desired)
	if err != nil || changes == nil {
		return nil, err
	}

	added, changed, removed := bucketSizes(changes)
	if dryRun {
		log.Info("would apply collection changes",
			zap.String("kind", ops.kind),
			zap.Int("add", added),
			zap.Int("change", changed),
			zap.Int("remove", removed))
		return changes, nil
	}

	if changes.Change != nil {
		if err := ops.remove(ctx, changes.Change.Actual); err != nil {
			return nil, err
		}
	}
	if changes.Add != nil {
		for _, item := range changes.Add.Desired {
			if err := ops.create(ctx, item); err != nil {
				return nil, err
			}
		}
	}
	if changes.Change != nil {
		for _, item := range changes.Change.Desired {
			if err := ops.update(ctx, item); err != nil {
				return nil, err
			}
		}
	}
	if changes.Remove != nil {
		if err := ops.remove(ctx, changes.Remove.Actual); err != nil {
			return nil, err
		}
	}

	log.Info("applied collection changes",
		zap.String("kind", ops.kind),
		zap.Int("add", added),
		zap.Int("change", changed),
		zap.Int("remove", removed))
	return changes, nil
}

func bucketSizes[T any](changes *diff.ItemsDiff[T]) (int, int, int) {
	var added, changed, removed int
	if changes.Add != nil {
		added = len(changes.Add.Desired)
	}
	if changes.Change != nil {
		changed = len(changes.Change.Desired)
	}
	if changes.Remove != nil {
		removed = len(changes.Remove.Actual)
	}
	return added, changed, removed
}

func listOps(client pihole.Client) collectionOps[pihole.List] {
	return collectionOps[pihole.List]{
		kind:   "lists",
		key:    pihole.List.Key,
		same:   pihole.List.EquivalentTo,
		fetch:  client.FetchLists,
		create: client.CreateList,
		update: client.ReplaceList,
		remove: client.DeleteLists,
	}
}

func domainOps(client pihole.Client) collectionOps[pihole.Domain] {
	return collectionOps[pihole.Domain]{
		kind:   "domains",
		key:    pihole.Domain.Key,
		same:   pihole.Domain.EquivalentTo,
		fetch:  client.FetchDomains,
		create: client.CreateDomain,
		update: client.ReplaceDomain,
		remove: client.DeleteDomains,
	}
}

func groupOps(client pihole.Client) collectionOps[pihole.Group] {
	return collectionOps[pihole.Group]{
		kind:   "groups",
		key:    pihole.Group.Key,
		same:   pihole.Group.EquivalentTo,
		fetch:  client.FetchGroups,
		create: client.CreateGroup,
		update: client.ReplaceGroup,
		// The API has no batch endpoint for groups.
		remove: func(ctx context.Context, groups []pihole.Group) error {
			for _, group := range groups {
				if err := client.DeleteGroup(ctx, group); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func clientOps(client pihole.Client) collectionOps[pihole.ClientEntry] {
	return collectionOps[pihole.ClientEntry]{
		kind:   "clients",
		key:    pihole.ClientEntry.Key,
		same:   pihole.ClientEntry.EquivalentTo,
		fetch:  client.FetchClients,
		create: client.CreateClient,
		update: client.ReplaceClient,
		remove: client.DeleteClients,
	}
}
