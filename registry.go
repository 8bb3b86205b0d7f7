package probetab

import (
	"fmt"
	"strings"
	"sync"
	"text/tabwriter"
)

// registryCapacity bounds the number of tables visible to Report.
const registryCapacity = 64

// tableInfo is the non-generic reporting view of a live table, so tables
// of different value types share one registry.
type tableInfo interface {
	Name() string
	Size() int
	MemorySize() int
	Stats() StatsSnapshot
}

var (
	registryMu sync.Mutex
	registry   [registryCapacity]tableInfo
)

// register adds a table to the process-wide registry. Overflow and
// duplicates are diagnostic conditions: the table stays fully usable and
// is merely excluded from Report.
func register(t tableInfo) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	free := -1
	for i, cur := range registry {
		if cur == t {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t.Name())
		}
		if cur == nil && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return fmt.Errorf("%w: dropping %s", ErrRegistryFull, t.Name())
	}
	registry[free] = t
	return nil
}

// deregister removes a table from the registry. Unknown tables are a
// no-op.
func deregister(t tableInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for i, cur := range registry {
		if cur == t {
			registry[i] = nil
		}
	}
}

// statColumns mirrors the counter order of StatsSnapshot.
var statColumns = []string{
	"Insert", "Remove", "Search", "Collision", "Overwritten",
	"Insert_err", "Remove_err", "Search_ok", "Search_err",
}

// Report renders one line per live table: name, nominal size, backing
// memory in bytes, the insert+remove+search aggregate, and every counter.
// It never blocks table operations; counters are read mid-flight, so rows
// are not mutually consistent snapshots.
func Report() string {
	registryMu.Lock()
	live := make([]tableInfo, 0, registryCapacity)
	for _, t := range registry {
		if t != nil {
			live = append(live, t)
		}
	}
	registryMu.Unlock()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Name\tSize\tMemory\tOps\t%s\t\n", strings.Join(statColumns, "\t"))
	for _, t := range live {
		s := t.Stats()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			t.Name(), t.Size(), t.MemorySize(), s.Ops(),
			s.Insert, s.Remove, s.Search, s.Collision, s.Overwritten,
			s.InsertErr, s.RemoveErr, s.SearchOK, s.SearchErr)
	}
	w.Flush()
	return b.String()
}
