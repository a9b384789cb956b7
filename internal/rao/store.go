package rao

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DOF identifies a tabulated degree of freedom.
type DOF string

const (
	DOFHeave DOF = "heave" // m/m
	DOFPitch DOF = "pitch" // rad/m
)

// HeadingBuckets is the fixed set of tabulated wave headings in degrees,
// bow seas (180) to following seas (0) after folding.
var HeadingBuckets = []float64{0, 30, 60, 90, 120, 150, 180}

// ResponseFunction is one immutable, cached frequency-response curve:
// amplitude and unwrapped phase over a strictly increasing frequency grid,
// for one (dof, speed bucket, heading bucket).
type ResponseFunction struct {
	DOF     DOF
	Speed   float64 // knots, resolved bucket
	Heading float64 // degrees, resolved bucket

	Frequencies []float64 // rad/s
	Amplitude   []float64
	Phase       []float64 // degrees, unwrapped
}

var tableFileRe = regexp.MustCompile(`^(heave|pitch)_(\d+(?:\.\d+)?)kn\.txt$`)

type cacheKey struct {
	dof     DOF
	speed   float64
	heading float64
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s/%gkn/%gdeg", k.dof, k.speed, k.heading)
}

// Store resolves (dof, speed, heading) lookups against the RAO data
// directory. Tables are parsed lazily on first use and cached; the
// singleflight group ensures a key racing on first use is parsed exactly
// once, and every caller observes the same immutable ResponseFunction.
type Store struct {
	logger *slog.Logger
	files  map[DOF]map[float64]string
	speeds []float64

	group singleflight.Group
	mu    sync.RWMutex
	cache map[cacheKey]*ResponseFunction

	// CacheObserver, when set, is invoked with "hit" or "miss" on every
	// lookup. Wired to the rao_cache_total metric by the caller.
	CacheObserver func(result string)
}

// NewStore scans dir for <dof>_<speed>kn.txt tables and builds the supported
// speed set. Heave and pitch must cover the same speeds; nothing is parsed
// yet.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan rao directory: %w", err)
	}

	files := map[DOF]map[float64]string{DOFHeave: {}, DOFPitch: {}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := tableFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		speed, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		files[DOF(m[1])][speed] = filepath.Join(dir, e.Name())
	}

	speeds := make([]float64, 0, len(files[DOFHeave]))
	for speed := range files[DOFHeave] {
		if _, ok := files[DOFPitch][speed]; !ok {
			return nil, fmt.Errorf("rao directory %s: heave table for %g kn has no pitch counterpart", dir, speed)
		}
		speeds = append(speeds, speed)
	}
	if len(speeds) != len(files[DOFPitch]) {
		return nil, fmt.Errorf("rao directory %s: pitch and heave tables cover different speed sets", dir)
	}
	if len(speeds) == 0 {
		return nil, fmt.Errorf("rao directory %s: no <dof>_<speed>kn.txt tables found", dir)
	}
	sort.Float64s(speeds)

	logger.Info("rao tables discovered", "dir", dir, "speeds", speeds)
	return &Store{
		logger: logger,
		files:  files,
		speeds: speeds,
		cache:  make(map[cacheKey]*ResponseFunction),
	}, nil
}

// Speeds returns the supported speed set in ascending order.
func (s *Store) Speeds() []float64 {
	out := make([]float64, len(s.speeds))
	copy(out, s.speeds)
	return out
}

// Load returns the response function for the nearest (speed, heading)
// buckets. The returned function is shared and must not be mutated.
func (s *Store) Load(dof DOF, speed, heading float64) (*ResponseFunction, error) {
	key := cacheKey{
		dof:     dof,
		speed:   Nearest(s.speeds, speed),
		heading: Nearest(HeadingBuckets, FoldHeading(heading)),
	}

	s.mu.RLock()
	rf, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		s.observe("hit")
		return rf, nil
	}
	s.observe("miss")

	v, err, _ := s.group.Do(key.String(), func() (any, error) {
		// Losers of the populate race land here after the winner stored the
		// entry; re-check before parsing again.
		s.mu.RLock()
		rf, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return rf, nil
		}

		rf, err := s.parseKey(key)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = rf
		s.mu.Unlock()
		return rf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ResponseFunction), nil
}

func (s *Store) parseKey(key cacheKey) (*ResponseFunction, error) {
	path := s.files[key.dof][key.speed]
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rao table: %w", err)
	}
	defer f.Close()

	t, err := parseTable(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	freq, amp, phase, err := t.column(key.heading)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rao table loaded",
		"dof", string(key.dof), "speed", key.speed, "heading", key.heading, "points", len(freq))
	return &ResponseFunction{
		DOF:         key.dof,
		Speed:       key.speed,
		Heading:     key.heading,
		Frequencies: freq,
		Amplitude:   amp,
		Phase:       phase,
	}, nil
}

func (s *Store) observe(result string) {
	if s.CacheObserver != nil {
		s.CacheObserver(result)
	}
}

// FoldHeading reflects a heading in degrees into [0,180]: port and starboard
// seas are hydrodynamically symmetric, so 350° and 10° are the same relative
// heading.
func FoldHeading(heading float64) float64 {
	h := math.Mod(heading, 360)
	if h < 0 {
		h += 360
	}
	if h > 180 {
		h = 360 - h
	}
	return h
}

// Nearest snaps v to the closest candidate by absolute difference. The
// candidates are ascending and a strict comparison keeps the first best, so
// an exact midpoint resolves to the lower candidate.
func Nearest(candidates []float64, v float64) float64 {
	best := candidates[0]
	bestDiff := math.Abs(v - best)
	for _, c := range candidates[1:] {
		if d := math.Abs(v - c); d < bestDiff {
			best, bestDiff = c, d
		}
	}
	return best
}
