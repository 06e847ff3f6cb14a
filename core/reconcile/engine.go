package reconcile

import (
	"context"

	"pihole-manager/core/config"
	"pihole-manager/core/diff"
	"pihole-manager/core/pihole"

	"go.uber.org/zap"
)

// DialFunc opens a client for one declared instance.
type DialFunc func(instance config.Instance) (pihole.Client, error)

// Dial is the production dialer backed by the REST client.
func Dial(instance config.Instance) (pihole.Client, error) {
	cfg, err := instance.ClientConfig()
	if err != nil {
		return nil, err
	}
	return pihole.NewClient(cfg)
}

// Reconciler runs dump, diff and sync passes over declared instances.
type Reconciler struct {
	dial DialFunc
	log  *zap.Logger
}

// New creates a Reconciler that opens instance clients through dial.
func New(dial DialFunc, log *zap.Logger) *Reconciler {
	return &Reconciler{dial: dial, log: log}
}

// DumpAll fetches the remote state of every instance. Instances that are
// invalid or unreachable are logged and skipped.
func (r *Reconciler) DumpAll(ctx context.Context, instances []config.Instance) []Snapshot {
	var snapshots []Snapshot
	for _, instance := range instances {
		if err := ctx.Err(); err != nil {
			r.log.Warn("dump cancelled", zap.Error(err))
			break
		}
		if snapshot := r.dumpInstance(ctx, instance); snapshot != nil {
			snapshots = append(snapshots, *snapshot)
		}
	}
	return snapshots
}

// DiffAll compares the declared state of every instance against the remote
// state without mutating anything. Instances without differences produce no
// result.
func (r *Reconciler) DiffAll(ctx context.Context, instances []config.Instance) []InstanceResult {
	var results []InstanceResult
	for _, instance := range instances {
		if err := ctx.Err(); err != nil {
			r.log.Warn("diff cancelled", zap.Error(err))
			break
		}
		if result := r.diffInstance(ctx, instance); result != nil {
			results = append(results, *result)
		}
	}
	return results
}

// SyncAll reconciles the declared state of every instance onto the remote
// side. With dryRun the changes are reported but nothing is mutated.
// Instances without changes produce no result.
func (r *Reconciler) SyncAll(ctx context.Context, instances []config.Instance, dryRun bool) []InstanceResult {
	var results []InstanceResult
	for _, instance := range instances {
		if err := ctx.Err(); err != nil {
			r.log.Warn("sync cancelled", zap.Error(err))
			break
		}
		if result := r.syncInstance(ctx, instance, dryRun); result != nil {
			results = append(results, *result)
		}
	}
	return results
}

func (r *Reconciler) dumpInstance(ctx context.Context, instance config.Instance) *Snapshot {
	log := r.instanceLogger(instance)
	if err := instance.Validate(); err != nil {
		log.Warn("skipping invalid instance", zap.Error(err))
		return nil
	}

	client, err := r.dial(instance)
	if err != nil {
		log.Error("failed to connect", zap.Error(err))
		return nil
	}
	defer r.closeClient(ctx, client, log)

	snapshot := &Snapshot{Name: instance.Name, BaseURL: instance.BaseURL}
	if snapshot.Config, err = client.FetchConfig(ctx); err != nil {
		log.Error("failed to fetch config", zap.Error(err))
		return nil
	}
	if snapshot.Lists, err = client.FetchLists(ctx); err != nil {
		log.Error("failed to fetch lists", zap.Error(err))
		return nil
	}
	if snapshot.Domains, err = client.FetchDomains(ctx); err != nil {
		log.Error("failed to fetch domains", zap.Error(err))
		return nil
	}
	if snapshot.Groups, err = client.FetchGroups(ctx); err != nil {
		log.Error("failed to fetch groups", zap.Error(err))
		return nil
	}
	if snapshot.Clients, err = client.FetchClients(ctx); err != nil {
		log.Error("failed to fetch clients", zap.Error(err))
		return nil
	}
	return snapshot
}

func (r *Reconciler) diffInstance(ctx context.Context, instance config.Instance) *InstanceResult {
	log := r.instanceLogger(instance)
	if err := instance.Validate(); err != nil {
		log.Warn("skipping invalid instance", zap.Error(err))
		return nil
	}
	if !instance.HasDeclaredState() {
		log.Info("no declared state, skipping")
		return nil
	}

	client, err := r.dial(instance)
	if err != nil {
		log.Error("failed to connect", zap.Error(err))
		return nil
	}
	defer r.closeClient(ctx, client, log)

	result := &InstanceResult{Name: instance.Name, BaseURL: instance.BaseURL}

	// Diff mode inspects every declared kind, including declared-empty
	// collections, which mark everything remote as undesired.
	if len(instance.Config) > 0 {
		if changes, err := r.diffConfig(ctx, client, instance.Config); err != nil {
			markFailed(result, "config", err, log)
		} else {
			result.Config = changes
		}
	}
	if instance.Lists != nil {
		if changes, err := diffCollection(ctx, listOps(client), instance.Lists); err != nil {
			markFailed(result, "lists", err, log)
		} else {
			result.Lists = changes
		}
	}
	if instance.Domains != nil {
		if changes, err := diffCollection(ctx, domainOps(client), instance.Domains); err != nil {
			markFailed(result, "domains", err, log)
		} else {
			result.Domains = changes
		}
	}
	if instance.Groups != nil {
		if changes, err := diffCollection(ctx, groupOps(client), instance.Groups); err != nil {
			markFailed(result, "groups", err, log)
		} else {
			result.Groups = changes
		}
	}
	if instance.Clients != nil {
		if changes, err := diffCollection(ctx, clientOps(client), instance.Clients); err != nil {
			markFailed(result, "clients", err, log)
		} else {
			result.Clients = changes
		}
	}

	if !result.HasChanges() && len(result.Failed) == 0 {
		log.Info("no differences found")
		return nil
	}
	return result
}

func (r *Reconciler) syncInstance(ctx context.Context, instance config.Instance, dryRun bool) *InstanceResult {
	log := r.instanceLogger(instance)
	if err := instance.Validate(); err != nil {
		log.Warn("skipping invalid instance", zap.Error(err))
		return nil
	}
	if !instance.HasDeclaredState() {
		log.Info("no declared state, skipping")
		return nil
	}

	client, err := r.dial(instance)
	if err != nil {
		log.Error("failed to connect", zap.Error(err))
		return nil
	}
	defer r.closeClient(ctx, client, log)

	result := &InstanceResult{Name: instance.Name, BaseURL: instance.BaseURL}

	// Sync mode only touches kinds with declared entries; an empty
	// collection is left alone rather than emptied remotely.
	if len(instance.Config) > 0 {
		if changes, err := r.syncConfig(ctx, client, instance.Config, dryRun, log); err != nil {
			markFailed(result, "config", err, log)
		} else {
			result.Config = changes
		}
	}
	if len(instance.Lists) > 0 {
		if changes, err := syncCollection(ctx, listOps(client), instance.Lists, dryRun, log); err != nil {
			markFailed(result, "lists", err, log)
		} else {
			result.Lists = changes
			if changes != nil && instance.ShouldUpdateGravity() {
				r.updateGravity(ctx, client, dryRun, log)
			}
		}
	}
	if len(instance.Domains) > 0 {
		if changes, err := syncCollection(ctx, domainOps(client), instance.Domains, dryRun, log); err != nil {
			markFailed(result, "domains", err, log)
		} else {
			result.Domains = changes
		}
	}
	if len(instance.Groups) > 0 {
		if changes, err := syncCollection(ctx, groupOps(client), instance.Groups, dryRun, log); err != nil {
			markFailed(result, "groups", err, log)
		} else {
			result.Groups = changes
		}
	}
	if len(instance.Clients) > 0 {
		if changes, err := syncCollection(ctx, clientOps(client), instance.Clients, dryRun, log); err != nil {
			markFailed(result, "clients", err, log)
		} else {
			result.Clients = changes
		}
	}

	if !result.HasChanges() && len(result.Failed) == 0 {
		log.Info("no configuration changes required")
		return nil
	}
	return result
}

// diffConfig compares the declared config tree against the remote one. Both
// sides are normalized first so equivalent spellings do not diff.
func (r *Reconciler) diffConfig(ctx context.Context, client pihole.Client, declared map[string]any) (diff.ConfigDiff, error) {
	desired, err := diff.NormalizeConfig(declared)
	if err != nil {
		return nil, err
	}
	actual, err := client.FetchConfig(ctx)
	if err != nil {
		return nil, err
	}
	actual, err = diff.NormalizeConfig(actual)
	if err != nil {
		return nil, err
	}

	changes := diff.Config(desired, actual)
	if len(changes) == 0 {
		return nil, nil
	}
	return changes, nil
}

// syncConfig diffs the declared config tree and patches the differing paths
// in a single call.
func (r *Reconciler) syncConfig(ctx context.Context, client pihole.Client, declared map[string]any, dryRun bool, log *zap.Logger) (diff.ConfigDiff, error) {
	changes, err := r.diffConfig(ctx, client, declared)
	if err != nil || changes == nil {
		return nil, err
	}

	if dryRun {
		log.Info("would apply config changes", zap.Int("paths", len(changes)))
		return changes, nil
	}
	if err := client.PatchConfig(ctx, diff.BuildPatch(changes)); err != nil {
		return nil, err
	}
	log.Info("applied config changes", zap.Int("paths", len(changes)))
	return changes, nil
}

// updateGravity refreshes the gravity database after applied list changes.
// Failures are logged and do not mark the sync failed.
func (r *Reconciler) updateGravity(ctx context.Context, client pihole.Client, dryRun bool, log *zap.Logger) {
	if dryRun {
		log.Info("would update gravity")
		return
	}
	if err := client.RunGravity(ctx); err != nil {
		log.Error("failed to update gravity", zap.Error(err))
		return
	}
	log.Info("gravity updated")
}

func (r *Reconciler) closeClient(ctx context.Context, client pihole.Client, log *zap.Logger) {
	if err := client.Close(ctx); err != nil {
		log.Debug("failed to release session", zap.Error(err))
	}
}

func (r *Reconciler) instanceLogger(instance config.Instance) *zap.Logger {
	return r.log.With(
		zap.String("instance", instance.Name),
		zap.String("base_url", instance.BaseURL),
	)
}

func markFailed(result *InstanceResult, kind string, err error, log *zap.Logger) {
	log.Error("failed to reconcile", zap.String("kind", kind), zap.Error(err))
	result.Failed = append(result.Failed, kind)
}
