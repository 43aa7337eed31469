package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// Container sources reported alongside the hypothesis list.
const (
	SourceCarriers = "carriers"
	SourceDefaults = "defaults"
)

// ContainerService supplies the container hypotheses for packing.
type ContainerService interface {
	// Containers returns the hypotheses and where they came from. It falls
	// back to the configured defaults when the carrier catalog cannot be
	// read, so it never fails.
	Containers(ctx context.Context) ([]packing.Container, string)
}

// ContainerServiceImpl merges carrier limits with the configured defaults
// and keeps the merged list for refresh.
type ContainerServiceImpl struct {
	repo     repository.CarrierRepositoryInterface
	defaults []packing.Container
	refresh  time.Duration

	mu        sync.Mutex
	cached    []packing.Container
	source    string
	fetchedAt time.Time
}

// NewContainerService creates a container service. repo may be nil, in
// which case the defaults are always used.
func NewContainerService(repo repository.CarrierRepositoryInterface, defaults []packing.Container, refresh time.Duration) *ContainerServiceImpl {
	return &ContainerServiceImpl{
		repo:     repo,
		defaults: append([]packing.Container(nil), defaults...),
		refresh:  refresh,
	}
}

func (s *ContainerServiceImpl) Containers(ctx context.Context) ([]packing.Container, string) {
	if s.repo == nil {
		return s.defaults, SourceDefaults
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.refresh {
		return s.cached, s.source
	}

	carriers, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("carrier catalog unavailable, using default containers")
		return s.defaults, SourceDefaults
	}

	fromCarriers := make([]packing.Container, 0, len(carriers))
	for _, c := range carriers {
		if ct, ok := c.Container(); ok {
			fromCarriers = append(fromCarriers, ct)
		}
	}
	if len(fromCarriers) == 0 {
		s.cached, s.source = s.defaults, SourceDefaults
	} else {
		s.cached, s.source = MergeContainers(fromCarriers, s.defaults), SourceCarriers
	}
	s.fetchedAt = time.Now()
	return s.cached, s.source
}

// MergeContainers joins primary and extra, dropping extra containers whose
// dimensions duplicate one already present, and orders the result by size
// sum, then longest side, then volume.
func MergeContainers(primary, extra []packing.Container) []packing.Container {
	type dims struct{ l, w, h int }
	seen := make(map[dims]bool, len(primary)+len(extra))
	out := make([]packing.Container, 0, len(primary)+len(extra))
	for _, list := range [][]packing.Container{primary, extra} {
		for _, c := range list {
			d := dims{c.Length, c.Width, c.Height}
			if seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if sa, sb := a.Length+a.Width+a.Height, b.Length+b.Width+b.Height; sa != sb {
			return sa < sb
		}
		if ma, mb := max(a.Length, a.Width, a.Height), max(b.Length, b.Width, b.Height); ma != mb {
			return ma < mb
		}
		return a.Volume() < b.Volume()
	})
	return out
}
