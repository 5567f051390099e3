package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantouch/socialflow-backend/internal/domain"
)

func TestMemoryScheduleStore_EmptyLoad(t *testing.T) {
	store := NewMemoryScheduleStore()

	campaigns, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, campaigns)
}

func TestMemoryScheduleStore_RoundTrip(t *testing.T) {
	store := NewMemoryScheduleStore()

	in := []domain.ScheduledCampaign{
		{
			ID:        "c1",
			BrandInfo: domain.BrandInfo{BrandName: "Acme", ScheduleDate: "2026-04-01T10:00"},
			GeneratedContent: domain.GeneratedContent{
				{Platform: domain.PlatformX, Content: "thread", Hashtags: []string{"#a"}},
			},
			CreatedAt: 1700000000000,
		},
	}
	require.NoError(t, store.Save(context.Background(), in))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMemoryScheduleStore_SaveReplacesWholeValue(t *testing.T) {
	store := NewMemoryScheduleStore()

	require.NoError(t, store.Save(context.Background(), []domain.ScheduledCampaign{{ID: "c1"}, {ID: "c2"}}))
	require.NoError(t, store.Save(context.Background(), []domain.ScheduledCampaign{{ID: "c3"}}))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c3", out[0].ID)
}

func TestMemoryScheduleStore_CorruptedValueLoadsEmpty(t *testing.T) {
	store := NewMemoryScheduleStore()
	store.Seed([]byte(`[{"id": broken`))

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
