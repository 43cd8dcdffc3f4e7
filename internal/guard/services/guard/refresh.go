package guard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/gateways/feed"
)

// Restore publishes the snapshot persisted by an earlier run, if any. It is a
// no-op without a store.
func (s *Service) Restore() error {
	if s.store == nil {
		return nil
	}
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	snap, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn(map[string]any{"error": err.Error()}, "snapshot restore failed")
		return err
	}
	if !ok {
		s.logger.Info(nil, "no persisted snapshot")
		return nil
	}
	s.remote = snap
	s.publish(s.merged(snap))
	s.logger.Info(snapshotFields(snap), "snapshot restored")
	return nil
}

// Refresh fetches all four lists concurrently and publishes a new snapshot.
// A list that fails to download keeps its last good copy. The returned error
// aggregates every fetch and persistence failure; the service stays usable.
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	var (
		errMu sync.Mutex
		errs  error
	)
	onError := feed.ErrorFunc(func(err error) {
		errMu.Lock()
		errs = multierr.Append(errs, err)
		errMu.Unlock()
	})

	var (
		domains  *domain.DomainBlocklist
		packages *domain.PackageBlocklist
		objects  *domain.ObjectBlocklist
		coins    *domain.CoinBlocklist
	)
	start := s.clock.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { domains = s.fetcher.FetchDomainBlocklist(gctx, onError); return nil })
	g.Go(func() error { packages = s.fetcher.FetchPackageBlocklist(gctx, onError); return nil })
	g.Go(func() error { objects = s.fetcher.FetchObjectBlocklist(gctx, onError); return nil })
	g.Go(func() error { coins = s.fetcher.FetchCoinBlocklist(gctx, onError); return nil })
	_ = g.Wait()

	next := *s.remote
	updated := 0
	if domains != nil {
		next.Domains = domains
		updated++
	}
	if packages != nil {
		next.Packages = packages
		updated++
	}
	if objects != nil {
		next.Objects = objects
		updated++
	}
	if coins != nil {
		next.Coins = coins
		updated++
	}

	if updated == 0 {
		s.logger.Warn(map[string]any{"errors": len(multierr.Errors(errs))}, "refresh obtained no lists, keeping previous snapshot")
		return errs
	}

	next.Version = s.remote.Version + 1
	next.UpdatedAt = s.clock.Now()
	s.remote = &next
	s.publish(s.merged(&next))

	fields := snapshotFields(&next)
	fields["updated_lists"] = updated
	fields["failed_lists"] = len(multierr.Errors(errs))
	fields["took"] = next.UpdatedAt.Sub(start).String()
	s.logger.Info(fields, "lists refreshed")

	if s.store != nil {
		if err := s.store.Save(&next); err != nil {
			s.logger.Warn(map[string]any{"error": err.Error()}, "snapshot persist failed")
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Run refreshes immediately and then on every interval until ctx ends.
// Refresh failures are logged and never stop the loop.
func (s *Service) Run(ctx context.Context) error {
	s.refreshAndLog(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.refreshAndLog(ctx)
		}
	}
}

func (s *Service) refreshAndLog(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(map[string]any{"error": err.Error()}, "refresh incomplete")
	}
}

func snapshotFields(snap *domain.Snapshot) map[string]any {
	fields := map[string]any{"version": snap.Version}
	if snap.Domains != nil {
		fields["domain_allow"] = snap.Domains.Allowlist.Len()
		fields["domain_block"] = snap.Domains.Blocklist.Len()
	}
	if snap.Packages != nil {
		fields["packages"] = snap.Packages.Blocklist.Len()
	}
	if snap.Objects != nil {
		fields["objects"] = snap.Objects.Blocklist.Len()
	}
	if snap.Coins != nil {
		fields["coins"] = snap.Coins.Blocklist.Len()
	}
	return fields
}
