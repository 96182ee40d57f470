package repository

import (
	"testing"

	"canvas_blog/internal/domain/block/model"
	"canvas_blog/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSave_RejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)

	err := blocks.Save([]*model.Block{{Type: "gif"}})
	assert.Error(t, err)
	assert.Equal(t, apperr.ErrInvalidArgument, apperr.GetCode(err))
}

func TestBlockGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)

	_, err := blocks.GetByID("missing")
	assert.Equal(t, apperr.ErrNotFound, apperr.GetCode(err))
}

func TestFindByMold(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)

	moldID := "mold-1"
	first := &model.Block{Type: model.TypeText, MoldID: &moldID}
	second := &model.Block{Type: model.TypeImage, MoldID: &moldID}
	free := &model.Block{Type: model.TypeCode}
	require.NoError(t, blocks.Save([]*model.Block{first, second, free}))

	found, err := blocks.FindByMold(moldID)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestFindByPost_ViaContentRows(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)
	contents := NewContentRepository(db)

	text := saveBlock(t, db, model.TypeText)
	math := saveBlock(t, db, model.TypeMath)
	require.NoError(t, contents.Write("post-1", text, model.BlockContent{Text: "hi"}))
	require.NoError(t, contents.Write("post-1", math, model.BlockContent{Expression: "x"}))
	// 另一篇帖子的内容不应串进来
	other := saveBlock(t, db, model.TypeText)
	require.NoError(t, contents.Write("post-2", other, model.BlockContent{Text: "other"}))

	found, err := blocks.FindByPost("post-1")
	require.NoError(t, err)
	require.Len(t, found, 2)
	ids := []string{found[0].ID, found[1].ID}
	assert.ElementsMatch(t, []string{text.ID, math.ID}, ids)
}

func TestDetachMold_KeepsBlocks(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)

	moldID := "mold-1"
	block := &model.Block{Type: model.TypeText, MoldID: &moldID}
	require.NoError(t, blocks.Save([]*model.Block{block}))

	require.NoError(t, blocks.DetachMold(moldID))

	reloaded, err := blocks.GetByID(block.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.MoldID)
}

func TestDeleteFreeStanding_SkipsMoldBlocks(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockRepository(db)

	moldID := "mold-1"
	owned := &model.Block{Type: model.TypeText, MoldID: &moldID}
	free := &model.Block{Type: model.TypeText}
	require.NoError(t, blocks.Save([]*model.Block{owned, free}))

	require.NoError(t, blocks.DeleteFreeStanding([]string{owned.ID, free.ID}))

	_, err := blocks.GetByID(free.ID)
	assert.Equal(t, apperr.ErrNotFound, apperr.GetCode(err))

	kept, err := blocks.GetByID(owned.ID)
	require.NoError(t, err)
	assert.Equal(t, moldID, *kept.MoldID)
}
