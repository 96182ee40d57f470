package service

import (
	"testing"
	"time"

	blockModel "canvas_blog/internal/domain/block/model"
	blockRepo "canvas_blog/internal/domain/block/repository"
	"canvas_blog/internal/domain/mold/model"
	"canvas_blog/internal/domain/mold/repository"
	postModel "canvas_blog/internal/domain/post/model"
	postRepo "canvas_blog/internal/domain/post/repository"
	"canvas_blog/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (MoldService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Mold{}, &blockModel.Block{}, &postModel.Post{},
		&blockModel.TextContent{}, &blockModel.ImageContent{}, &blockModel.CodeContent{},
		&blockModel.MathContent{}, &blockModel.LinkContent{},
	))
	svc := NewMoldService(db,
		repository.NewMoldRepository(db),
		blockRepo.NewBlockRepository(db),
		postRepo.NewPostRepository(db),
	)
	return svc, db
}

func TestSaveLayouts_WithMold(t *testing.T) {
	svc, db := newTestService(t)

	result, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{Type: blockModel.TypeText, X: 1, Y: 2},
		{Type: blockModel.TypeImage},
	}, "my layout")
	require.NoError(t, err)
	assert.NotEmpty(t, result.MoldID)
	assert.Equal(t, "my layout", result.Title)
	require.Len(t, result.Blocks, 2)

	var count int64
	require.NoError(t, db.Model(&blockModel.Block{}).Where("mold_id = ?", result.MoldID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSaveLayouts_WithoutMold(t *testing.T) {
	svc, db := newTestService(t)

	result, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{{Type: blockModel.TypeText}}, "")
	require.NoError(t, err)
	assert.Empty(t, result.MoldID)

	var count int64
	require.NoError(t, db.Model(&blockModel.Block{}).Where("mold_id IS NULL").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSaveLayouts_RejectsEmptyAndMultiMain(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveLayouts("user-1", nil, "x")
	assert.Equal(t, apperr.ErrInvalidArgument, apperr.GetCode(err))

	_, err = svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{Type: blockModel.TypeText, Main: true},
		{Type: blockModel.TypeImage, Main: true},
	}, "x")
	assert.Equal(t, apperr.ErrInvalidArgument, apperr.GetCode(err))
}

func TestSaveLayouts_ReuseKeepsCreatedAtAndType(t *testing.T) {
	svc, db := newTestService(t)

	saved, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{Type: blockModel.TypeText, X: 1},
	}, "")
	require.NoError(t, err)
	require.Len(t, saved.Blocks, 1)

	var before blockModel.Block
	require.NoError(t, db.First(&before, "id = ?", saved.Blocks[0].ID).Error)
	require.False(t, before.CreatedAt.IsZero())

	// 再次保存同一个块，只动定位字段
	_, err = svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{ID: before.ID, Type: blockModel.TypeText, X: 9},
	}, "")
	require.NoError(t, err)

	var after blockModel.Block
	require.NoError(t, db.First(&after, "id = ?", before.ID).Error)
	assert.False(t, after.CreatedAt.IsZero())
	assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Second)
	assert.Equal(t, blockModel.TypeText, after.Type)
	assert.EqualValues(t, 9, after.X)
}

func TestSaveLayouts_ReuseMissingBlock(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{ID: "missing", Type: blockModel.TypeText},
	}, "")
	assert.Equal(t, apperr.ErrNotFound, apperr.GetCode(err))
}

func TestSaveLayouts_CannotGrabForeignMoldBlock(t *testing.T) {
	svc, db := newTestService(t)

	saved, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{
		{Type: blockModel.TypeText},
	}, "theirs")
	require.NoError(t, err)

	_, err = svc.SaveLayouts("user-2", []blockModel.BlockSpec{
		{ID: saved.Blocks[0].ID, Type: blockModel.TypeText},
	}, "mine")
	assert.Equal(t, apperr.ErrPermissionDenied, apperr.GetCode(err))

	// 块仍然属于原模板
	var block blockModel.Block
	require.NoError(t, db.First(&block, "id = ?", saved.Blocks[0].ID).Error)
	require.NotNil(t, block.MoldID)
	assert.Equal(t, saved.MoldID, *block.MoldID)
}

func TestGetMoldWithLayouts_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)

	saved, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{{Type: blockModel.TypeText}}, "mine")
	require.NoError(t, err)

	got, err := svc.GetMoldWithLayouts("user-1", saved.MoldID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Len(t, got.Blocks, 1)

	_, err = svc.GetMoldWithLayouts("user-2", saved.MoldID)
	assert.Equal(t, apperr.ErrPermissionDenied, apperr.GetCode(err))
}

func TestGetMoldWithLayouts_Missing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetMoldWithLayouts("user-1", "missing")
	assert.Equal(t, apperr.ErrNotFound, apperr.GetCode(err))
}

func TestDeleteMold_DetachesNotCascades(t *testing.T) {
	svc, db := newTestService(t)

	saved, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{{Type: blockModel.TypeText}}, "mine")
	require.NoError(t, err)

	post := postModel.Post{Title: "uses mold", UserID: "user-1", CategoryID: "cat-1", MoldID: &saved.MoldID}
	require.NoError(t, db.Create(&post).Error)

	require.NoError(t, svc.DeleteMold(saved.MoldID, "user-1"))

	// 模板没了
	_, err = svc.GetMoldWithLayouts("user-1", saved.MoldID)
	assert.Equal(t, apperr.ErrNotFound, apperr.GetCode(err))

	// 帖子和块都还在，只是失去了模板引用
	var reloadedPost postModel.Post
	require.NoError(t, db.First(&reloadedPost, "id = ?", post.ID).Error)
	assert.Nil(t, reloadedPost.MoldID)

	var block blockModel.Block
	require.NoError(t, db.First(&block, "id = ?", saved.Blocks[0].ID).Error)
	assert.Nil(t, block.MoldID)
}

func TestDeleteMold_PermissionDenied(t *testing.T) {
	svc, _ := newTestService(t)

	saved, err := svc.SaveLayouts("user-1", []blockModel.BlockSpec{{Type: blockModel.TypeText}}, "mine")
	require.NoError(t, err)

	err = svc.DeleteMold(saved.MoldID, "user-2")
	assert.Equal(t, apperr.ErrPermissionDenied, apperr.GetCode(err))
}
