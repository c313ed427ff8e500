package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/models"
)

// ErrNotFound — запрошенный id отсутствует в активном каталоге. Это
// единственная ошибка, которую движок отдаёт наружу: она означает баг или
// устаревшее состояние на стороне вызывающего, а не проблему данных.
var ErrNotFound = errors.New("product not found in active catalog")

// Fetcher loads the normalized catalog for one (category, region) key.
type Fetcher interface {
	FetchCatalog(ctx context.Context, label, regionCode string) ([]models.Product, error)
}

// Snapshot — неизменяемый срез состояния стора. Слайс продуктов общий,
// подписчики его не мутируют.
type Snapshot struct {
	Products  []models.Product
	Category  string
	Region    string
	Loading   bool
	FetchedAt time.Time
}

// Store держит единственный живой каталог процесса и перефетчивает его при
// каждой смене ключа (category, region).
//
// Дисциплина cancel-on-supersession: новый ключ инкрементит generation и
// отменяет контекст текущего фетча; результат, пришедший с устаревшим
// generation, отбрасывается целиком. Loading снимается только когда
// долетает результат НОВЕЙШЕГО generation, так что подписчик не увидит
// "loading=false" при живом более свежем фетче.
type Store struct {
	fetcher Fetcher
	log     *slog.Logger

	mu        sync.Mutex
	category  string
	region    string
	gen       uint64
	cancel    context.CancelFunc
	products  []models.Product
	loading   bool
	fetchedAt time.Time

	subs    map[uint64]chan Snapshot
	nextSub uint64
}

// NewStore creates the store and kicks off the initial fetch for the
// default key.
func NewStore(fetcher Fetcher, logger *slog.Logger, category, regionCode string) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		fetcher:  fetcher,
		log:      logger,
		category: category,
		region:   regionCode,
		products: []models.Product{},
		subs:     map[uint64]chan Snapshot{},
	}

	s.mu.Lock()
	s.refetchLocked()
	s.mu.Unlock()
	return s
}

// SetCategory switches the active category. Empty labels are ignored, not
// errors (the original storefront emits them on startup).
func (s *Store) SetCategory(label string) {
	if label == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == s.category {
		return
	}
	s.category = label
	s.refetchLocked()
}

func (s *Store) SetRegion(code string) {
	if code == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == s.region {
		return
	}
	s.region = code
	s.refetchLocked()
}

// Set switches both key components with a single refetch.
func (s *Store) Set(category, regionCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if category != "" && category != s.category {
		s.category = category
		changed = true
	}
	if regionCode != "" && regionCode != s.region {
		s.region = regionCode
		changed = true
	}
	if changed {
		s.refetchLocked()
	}
}

func (s *Store) refetchLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.gen++
	s.loading = true
	s.notifyLocked()

	go s.run(ctx, s.gen, s.category, s.region)
}

func (s *Store) run(ctx context.Context, gen uint64, category, regionCode string) {
	products, err := s.fetcher.FetchCatalog(ctx, category, regionCode)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// ключ успел смениться — результат никому не нужен
		s.log.Debug("stale catalog fetch discarded",
			"category", category,
			"region", regionCode,
			"generation", gen,
		)
		return
	}

	if err != nil {
		// фетч упал — пустой каталог, никакого error-состояния
		s.log.Error("catalog fetch failed, serving empty catalog",
			"err", err,
			"category", category,
			"region", regionCode,
		)
		products = nil
	}
	if products == nil {
		products = []models.Product{}
	}

	s.products = products
	s.loading = false
	s.fetchedAt = time.Now().UTC()
	s.notifyLocked()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Products:  s.products,
		Category:  s.category,
		Region:    s.region,
		Loading:   s.loading,
		FetchedAt: s.fetchedAt,
	}
}

// Subscribe returns a latest-value snapshot channel primed with the current
// state. Slow consumers never block the store: a pending snapshot is
// replaced by the newer one. The cancel func must be called when done.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	ch <- s.snapshotLocked()
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// канал занят устаревшим снапшотом — вытесняем
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Await blocks until the current key's fetch settles or ctx is done; in
// the latter case the caller gets whatever state the store has (possibly
// still loading and empty — "no products", never an error).
func (s *Store) Await(ctx context.Context) Snapshot {
	ch, cancel := s.Subscribe()
	defer cancel()

	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return s.Snapshot()
			}
			if !snap.Loading {
				return snap
			}
		case <-ctx.Done():
			return s.Snapshot()
		}
	}
}

// ProductByID looks an id up in the active catalog.
func (s *Store) ProductByID(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
}
