package service

import (
	"context"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_UniqueName(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db), repository.NewCategoryCache(nil, time.Minute))
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryReq{CategoryName: "Signs"})
	require.NoError(t, err)
	assert.Equal(t, model.LanguageKinyarwanda, created.Language)

	_, err = svc.Create(ctx, CategoryReq{CategoryName: "Signs", Language: model.LanguageEnglish})
	assert.Equal(t, util.ErrCategoryNameExists, err)

	other, err := svc.Create(ctx, CategoryReq{CategoryName: "Rules", Language: model.LanguageEnglish})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, UpdateCategoryReq{CategoryName: strPtr("Signs")})
	assert.Equal(t, util.ErrCategoryNameExists, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, other.ID))
	_, err = svc.Get(other.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	// 物理删除后名称可以复用
	_, err = svc.Create(ctx, CategoryReq{CategoryName: "Rules"})
	require.NoError(t, err)
}

func TestCategoryService_PartialUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db), repository.NewCategoryCache(nil, time.Minute))
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryReq{CategoryName: "Signs", Description: "Road signs", Language: model.LanguageEnglish})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateCategoryReq{CategoryName: strPtr("Traffic signs")})
	require.NoError(t, err)
	assert.Equal(t, "Traffic signs", updated.CategoryName)

	reloaded, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Traffic signs", reloaded.CategoryName)
	assert.Equal(t, "Road signs", reloaded.Description)
	assert.Equal(t, model.LanguageEnglish, reloaded.Language)

	_, err = svc.Update(ctx, created.ID, UpdateCategoryReq{Description: strPtr("")})
	require.NoError(t, err)
	reloaded, err = svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Traffic signs", reloaded.CategoryName)
	assert.Empty(t, reloaded.Description)

	_, err = svc.Update(ctx, created.ID, UpdateCategoryReq{CategoryName: strPtr("  ")})
	assert.Equal(t, util.ErrCategoryNameEmpty, err)
}
