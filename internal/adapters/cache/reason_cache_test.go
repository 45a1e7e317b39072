package cache

import (
	"fmt"
	"testing"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestReasonCache_SetAllAndGet(t *testing.T) {
	c, err := NewReasonCache(128)
	require.NoError(t, err)
	defer c.Close()

	reasons := []domain.Reason{{ID: 1, Label: "Travel"}, {ID: 2, Label: "Shopping"}}
	c.SetAll(reasons)

	got, ok := c.Get(2)
	require.True(t, ok)
	require.Equal(t, domain.Reason{ID: 2, Label: "Shopping"}, got)

	all, ok := c.All()
	require.True(t, ok)
	require.Equal(t, reasons, all)
}

func TestReasonCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewReasonCache(64)
	require.NoError(t, err)
	defer c.Close()

	reason, ok := c.Get(1)
	require.False(t, ok)
	require.Equal(t, domain.Reason{}, reason)

	all, ok := c.All()
	require.False(t, ok)
	require.Nil(t, all)
}

func TestReasonCache_SetAllDropsRemovedReasons(t *testing.T) {
	c, err := NewReasonCache(256)
	require.NoError(t, err)
	defer c.Close()

	c.SetAll([]domain.Reason{{ID: 1, Label: "Travel"}, {ID: 2, Label: "Shopping"}})
	c.SetAll([]domain.Reason{{ID: 2, Label: "Groceries"}})

	_, ok := c.Get(1)
	require.False(t, ok)

	got, ok := c.Get(2)
	require.True(t, ok)
	require.Equal(t, "Groceries", got.Label)

	all, ok := c.All()
	require.True(t, ok)
	require.Len(t, all, 1)
}

func TestReasonCache_AllReturnsCopy(t *testing.T) {
	c, err := NewReasonCache(16)
	require.NoError(t, err)
	defer c.Close()

	c.SetAll([]domain.Reason{{ID: 1, Label: "Travel"}})

	all, _ := c.All()
	all[0].Label = "changed"

	again, ok := c.All()
	require.True(t, ok)
	require.Equal(t, "Travel", again[0].Label)
}

func TestReasonCache_HoldsWholeCatalogue(t *testing.T) {
	cases := []struct {
		name    string
		size    int64
		reasons int
	}{
		{name: "default sized cache", size: 1024, reasons: 40},
		{name: "cache sized to catalogue", size: 40, reasons: 40},
		{name: "more entries than a byte budget would allow", size: 64, reasons: 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewReasonCache(tc.size)
			require.NoError(t, err)
			defer c.Close()

			reasons := make([]domain.Reason, 0, tc.reasons)
			for i := 1; i <= tc.reasons; i++ {
				reasons = append(reasons, domain.Reason{ID: int64(i), Label: fmt.Sprintf("reason-%d", i)})
			}
			c.SetAll(reasons)

			all, ok := c.All()
			require.True(t, ok)
			require.Len(t, all, tc.reasons)
			for _, r := range reasons {
				got, found := c.Get(r.ID)
				require.True(t, found, "reason %d missing", r.ID)
				require.Equal(t, r, got)
			}
		})
	}
}
