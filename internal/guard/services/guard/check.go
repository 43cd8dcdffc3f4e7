package guard

import (
	"sync/atomic"

	"github.com/suiet/guardians/internal/guard/common/utils"
	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/services/scanner"
)

// CheckDomain screens a URL or bare hostname. Malformed input returns an
// error wrapping domain.ErrInvalidDomain. Without a domain list the verdict
// is NONE with ReasonUnavailable.
func (s *Service) CheckDomain(rawURL string) (domain.Verdict, error) {
	h, err := scanner.Normalize(rawURL)
	if err != nil {
		return domain.Verdict{}, err
	}
	st := s.state.Load()
	if !st.snap.Has(domain.KindDomain) {
		return unavailable(h.Name), nil
	}
	if v, ok := s.lookup(domain.KindDomain, h.Name); ok {
		return v, nil
	}
	v := s.scanner.DecideHost(st.snap.Domains, h)
	s.remember(st, domain.KindDomain, h.Name, v)
	if v.IsBlocked() {
		s.logger.Debug(map[string]any{
			"host":    h.Name,
			"apex":    v.Apex,
			"reason":  string(v.Reason),
			"matched": v.Matched,
		}, "domain blocked")
	}
	return v, nil
}

// CheckPackage screens an on-chain package address.
func (s *Service) CheckPackage(address string) domain.Verdict {
	return s.checkIdentifier(domain.KindPackage, address, func(snap *domain.Snapshot) domain.Verdict {
		return scanner.DecidePackage(snap.Packages, address)
	})
}

// CheckObject screens an object ID.
func (s *Service) CheckObject(object string) domain.Verdict {
	return s.checkIdentifier(domain.KindObject, object, func(snap *domain.Snapshot) domain.Verdict {
		return scanner.DecideObject(snap.Objects, object)
	})
}

// CheckCoin screens a coin type identifier.
func (s *Service) CheckCoin(coin string) domain.Verdict {
	return s.checkIdentifier(domain.KindCoin, coin, func(snap *domain.Snapshot) domain.Verdict {
		return scanner.DecideCoin(snap.Coins, coin)
	})
}

// checkIdentifier runs the cache → bloom → scanner pipeline.
func (s *Service) checkIdentifier(kind domain.ListKind, id string, decide func(*domain.Snapshot) domain.Verdict) domain.Verdict {
	st := s.state.Load()
	if !st.snap.Has(kind) {
		return unavailable("")
	}
	if v, ok := s.lookup(kind, id); ok {
		return v
	}
	if f := st.filters[kind]; f != nil && !f.MightContain([]byte(id)) {
		atomic.AddUint64(&s.bloomSkips, 1)
		return domain.DefaultVerdict()
	}
	v := decide(st.snap)
	s.remember(st, kind, id, v)
	if v.IsBlocked() {
		s.logger.Debug(map[string]any{"list": kind.String(), "id": id}, "identifier blocked")
	}
	return v
}

func (s *Service) lookup(kind domain.ListKind, key string) (domain.Verdict, bool) {
	s.mu.RLock()
	v, ok := s.cache.Get(kind, key)
	s.mu.RUnlock()
	return v, ok
}

// remember caches v unless st has been superseded in the meantime.
func (s *Service) remember(st *state, kind domain.ListKind, key string, v domain.Verdict) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Load() != st {
		return
	}
	s.cache.Put(kind, key, v)
}

func unavailable(host string) domain.Verdict {
	return domain.Verdict{
		Action: domain.ActionNone,
		Reason: domain.ReasonUnavailable,
		Host:   host,
		Apex:   utils.RegistrableDomain(host),
	}
}
