package writer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionTracker_TrackIgnoresZeroSize(t *testing.T) {
	var rt regionTracker
	rt.track(10, 0)
	require.Empty(t, rt.regions)
}

func TestRegionTracker_ValidateNoOverlaps_DisjointRegions(t *testing.T) {
	var rt regionTracker
	rt.track(0, 13)
	rt.track(13, 25)
	rt.track(38, 5)

	require.NoError(t, rt.validateNoOverlaps())
}

func TestRegionTracker_ValidateNoOverlaps_OutOfOrderInsertion(t *testing.T) {
	var rt regionTracker
	rt.track(38, 5)
	rt.track(0, 13)
	rt.track(13, 25)

	require.NoError(t, rt.validateNoOverlaps())
}

func TestRegionTracker_ValidateNoOverlaps_DetectsOverlap(t *testing.T) {
	var rt regionTracker
	rt.track(0, 13)
	rt.track(10, 25) // starts before the first region ends

	err := rt.validateNoOverlaps()
	require.Error(t, err)
}

func TestRegionTracker_ValidateNoOverlaps_EmptyIsFine(t *testing.T) {
	var rt regionTracker
	require.NoError(t, rt.validateNoOverlaps())
}

func TestRegionTracker_SortedReturnsCopy(t *testing.T) {
	var rt regionTracker
	rt.track(10, 5)
	rt.track(0, 5)

	sorted := rt.sorted()
	require.Len(t, sorted, 2)
	require.Equal(t, uint64(0), sorted[0].Offset)
	require.Equal(t, uint64(10), sorted[1].Offset)

	sorted[0].Offset = 999
	resorted := rt.sorted()
	require.Equal(t, uint64(0), resorted[0].Offset)
}
