package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/store/memory"
	"car_configurator_server/structs"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandInfoIsFirstBrand(t *testing.T) {
	svc := NewContentService(testLogger(), memory.NewContent())
	ctx := context.Background()

	_, err := svc.GetBrandInfo(ctx)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	first, err := svc.CreateBrand(ctx, &structs.BrandRequest{Name: "Hyundai"})
	require.NoError(t, err)
	_, err = svc.CreateBrand(ctx, &structs.BrandRequest{Name: "Genesis"})
	require.NoError(t, err)

	info, err := svc.GetBrandInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, info.ID)
}

func TestShowroomsByRegion(t *testing.T) {
	svc := NewContentService(testLogger(), memory.NewContent())
	ctx := context.Background()

	for _, r := range []structs.ShowroomRequest{
		{Name: "Gangnam", Address: "1 Teheran-ro", Region: "Seoul"},
		{Name: "Haeundae", Address: "2 Marine-ro", Region: "Busan"},
	} {
		_, err := svc.CreateShowroom(ctx, &r)
		require.NoError(t, err)
	}

	seoul, err := svc.ListShowrooms(ctx, " Seoul ")
	require.NoError(t, err)
	require.Len(t, seoul, 1)
	assert.Equal(t, "Gangnam", seoul[0].Name)

	all, err := svc.ListShowrooms(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFaqVisibilityAndOrder(t *testing.T) {
	svc := NewContentService(testLogger(), memory.NewContent())
	ctx := context.Background()
	inactive := false

	_, err := svc.CreateFaq(ctx, &structs.FaqRequest{Category: "delivery", Question: "When?", Answer: "Soon", DisplayOrder: 2})
	require.NoError(t, err)
	first, err := svc.CreateFaq(ctx, &structs.FaqRequest{Category: "delivery", Question: "Where?", Answer: "Anywhere", DisplayOrder: 1})
	require.NoError(t, err)
	_, err = svc.CreateFaq(ctx, &structs.FaqRequest{Category: "finance", Question: "Leasing?", Answer: "Yes", IsActive: &inactive})
	require.NoError(t, err)

	public, err := svc.ListFaqs(ctx, "")
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, first.ID, public[0].ID)

	finance, err := svc.ListFaqs(ctx, "finance")
	require.NoError(t, err)
	assert.Empty(t, finance)

	all, err := svc.ListAllFaqs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	updated, err := svc.UpdateFaq(ctx, first.ID, &structs.FaqRequest{Category: "delivery", Question: "Where?", Answer: "Nationwide", DisplayOrder: 5, IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.UpdatedAt.IsZero())

	assert.ErrorIs(t, svc.DeleteFaq(ctx, 999), lib.ErrNotFound)
}
