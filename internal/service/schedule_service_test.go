package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/repository"
)

// failingStore loads fine but refuses every write
type failingStore struct {
	*repository.MemoryScheduleStore
}

func (s *failingStore) Save(_ context.Context, _ []domain.ScheduledCampaign) error {
	return errors.New("store unavailable")
}

func scheduledFixture(date string) (domain.BrandInfo, domain.GeneratedContent) {
	info := campaignFixture()
	info.ScheduleDate = date
	return info, resultFixture()
}

func newScheduleService(t *testing.T) *ScheduleService {
	t.Helper()
	return NewScheduleService(context.Background(), repository.NewMemoryScheduleStore())
}

func TestScheduleSave_RequiresDate(t *testing.T) {
	svc := newScheduleService(t)

	info, content := scheduledFixture("")
	_, err := svc.Save(context.Background(), info, content)
	assert.ErrorIs(t, err, common.ErrMissingScheduleDate)
	assert.Equal(t, 0, svc.Count())
}

func TestScheduleSave_AppendsEntry(t *testing.T) {
	svc := newScheduleService(t)

	info, content := scheduledFixture("2026-04-01T10:00")
	id, err := svc.Save(context.Background(), info, content)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, svc.Count())

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Brewline", list[0].BrandInfo.BrandName)
	assert.Len(t, list[0].GeneratedContent, 2)
	assert.NotZero(t, list[0].CreatedAt)
}

func TestScheduleSave_FrozenCopy(t *testing.T) {
	svc := newScheduleService(t)

	info, content := scheduledFixture("2026-04-01T10:00")
	id, err := svc.Save(context.Background(), info, content)
	require.NoError(t, err)

	// later edits to the submitted values must not leak into the entry
	content[0].Content = "mutated"
	info.BrandName = "Other"

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "thread", list[0].GeneratedContent[0].Content)
	assert.Equal(t, "Brewline", list[0].BrandInfo.BrandName)
}

func TestScheduleSave_RollsBackOnPersistFailure(t *testing.T) {
	store := &failingStore{MemoryScheduleStore: repository.NewMemoryScheduleStore()}
	svc := NewScheduleService(context.Background(), store)

	info, content := scheduledFixture("2026-04-01T10:00")
	_, err := svc.Save(context.Background(), info, content)
	assert.Error(t, err)
	assert.Equal(t, 0, svc.Count())
}

func TestScheduleDelete(t *testing.T) {
	svc := newScheduleService(t)

	info, content := scheduledFixture("2026-04-01T10:00")
	id, err := svc.Save(context.Background(), info, content)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, 0, svc.Count())

	assert.ErrorIs(t, svc.Delete(context.Background(), id), common.ErrCampaignNotFound)
}

func TestScheduleDuplicate_IndependentCopy(t *testing.T) {
	svc := newScheduleService(t)

	info, content := scheduledFixture("2026-04-01T10:00")
	id, err := svc.Save(context.Background(), info, content)
	require.NoError(t, err)

	dupID, err := svc.Duplicate(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, id, dupID)
	assert.Equal(t, 2, svc.Count())

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, list[0].BrandInfo.BrandName, list[1].BrandInfo.BrandName)
	assert.Equal(t, list[0].GeneratedContent[0].Content, list[1].GeneratedContent[0].Content)

	_, err = svc.Duplicate(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrCampaignNotFound)
}

func TestScheduleList_SortedByScheduleTime(t *testing.T) {
	svc := newScheduleService(t)

	later, content := scheduledFixture("2026-06-01T09:00")
	_, err := svc.Save(context.Background(), later, content)
	require.NoError(t, err)

	earlier, content := scheduledFixture("2026-05-01T09:00")
	_, err = svc.Save(context.Background(), earlier, content)
	require.NoError(t, err)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2026-05-01T09:00", list[0].BrandInfo.ScheduleDate)
	assert.Equal(t, "2026-06-01T09:00", list[1].BrandInfo.ScheduleDate)
}

func TestScheduleService_RoundTripThroughStore(t *testing.T) {
	store := repository.NewMemoryScheduleStore()
	svc := NewScheduleService(context.Background(), store)

	info, content := scheduledFixture("2026-04-01T10:00")
	id, err := svc.Save(context.Background(), info, content)
	require.NoError(t, err)

	// a second service over the same store sees the persisted entry
	reloaded := NewScheduleService(context.Background(), store)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestScheduleService_CorruptedStoreStartsEmpty(t *testing.T) {
	store := repository.NewMemoryScheduleStore()
	store.Seed([]byte("{not valid json"))

	svc := NewScheduleService(context.Background(), store)
	assert.Equal(t, 0, svc.Count())
}
