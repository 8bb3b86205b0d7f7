package probetab

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRow(t *testing.T) {
	tab, err := New[uint64]("report-row", 4, WithHashFunc[uint64](Identity))
	require.NoError(t, err)
	defer tab.Close()

	tab.Insert(1, 10)
	tab.Insert(2, 20)
	tab.Find(1)
	tab.Find(9)
	tab.Remove(2)

	rep := Report()
	var row string
	for _, line := range strings.Split(rep, "\n") {
		if strings.Contains(line, "report-row") {
			row = line
			break
		}
	}
	require.NotEmpty(t, row, "report must contain the live table:\n%s", rep)

	// Name, size, memory, ops aggregate, then the nine counters.
	want := []string{
		"report-row", "16", fmt.Sprint(tab.MemorySize()),
		"5",           // ops = 2 insert + 1 remove + 2 search
		"2", "1", "2", // insert, remove, search
		"0", "0", // collision, overwritten
		"0", "0", // insert_err, remove_err
		"1", "1", // search_ok, search_err
	}
	if diff := cmp.Diff(want, strings.Fields(row)); diff != "" {
		t.Errorf("report row mismatch (-want +got):\n%s", diff)
	}
}

func TestReportHeader(t *testing.T) {
	rep := Report()
	for _, col := range append([]string{"Name", "Size", "Memory", "Ops"}, statColumns...) {
		assert.Contains(t, rep, col)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	tab, err := New[uint64]("dup-reg", 4)
	require.NoError(t, err)
	defer tab.Close()

	require.ErrorIs(t, register(tab), ErrAlreadyRegistered)
}

// stubInfo occupies a registry slot without backing storage.
type stubInfo struct{ name string }

func (s *stubInfo) Name() string         { return s.name }
func (s *stubInfo) Size() int            { return 0 }
func (s *stubInfo) MemorySize() int      { return 0 }
func (s *stubInfo) Stats() StatsSnapshot { return StatsSnapshot{} }

func TestRegistryFull(t *testing.T) {
	// Occupy every free registry slot.
	var stubs []*stubInfo
	for i := 0; i < registryCapacity; i++ {
		s := &stubInfo{name: fmt.Sprintf("stub-%d", i)}
		if err := register(s); err != nil {
			break
		}
		stubs = append(stubs, s)
	}
	defer func() {
		for _, s := range stubs {
			deregister(s)
		}
	}()

	var logged []string
	logf := func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	tab, err := New[uint64]("overflow-table", 4, WithLogger[uint64](logf))
	require.NoError(t, err, "a full registry must not fail Init")
	defer tab.Close()

	// The overflow is diagnosable and the table still works.
	require.NotEmpty(t, logged)
	assert.Contains(t, logged[len(logged)-1], "registry is full")
	assert.NotContains(t, Report(), "overflow-table")

	require.NoError(t, tab.Insert(3, 33))
	v, ok := tab.Find(3)
	require.True(t, ok)
	assert.Equal(t, uint64(33), v)
}

func TestDeregisterUnknown(t *testing.T) {
	// Removing a never-registered table must be harmless.
	deregister(&stubInfo{name: "ghost"})
}

func TestCloseRemovesFromReport(t *testing.T) {
	tab, err := New[uint64]("close-report", 4)
	require.NoError(t, err)

	assert.Contains(t, Report(), "close-report")
	require.NoError(t, tab.Close())
	assert.NotContains(t, Report(), "close-report")
}
