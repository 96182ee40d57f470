package repository

import (
	"testing"

	"canvas_blog/internal/domain/block/model"
	postModel "canvas_blog/internal/domain/post/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Block{},
		&model.TextContent{}, &model.ImageContent{}, &model.CodeContent{},
		&model.MathContent{}, &model.LinkContent{},
		&postModel.Attachment{},
	))
	return db
}

func saveBlock(t *testing.T, db *gorm.DB, typeTag model.BlockType) *model.Block {
	t.Helper()
	block := &model.Block{Type: typeTag}
	require.NoError(t, NewBlockRepository(db).Save([]*model.Block{block}))
	return block
}

func TestContentWriteRead_Text(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeText)

	require.NoError(t, contents.Write("post-1", block, model.BlockContent{Text: "hello"}))

	got, err := contents.Read(block.ID, model.TypeText)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Text)
}

func TestContentWriteRead_ImageSetKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeImage)

	urls := []string{"a.png", "b.png", "c.png"}
	require.NoError(t, contents.Write("post-1", block, model.BlockContent{ImageURLs: urls}))

	got, err := contents.Read(block.ID, model.TypeImage)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, urls, got.ImageURLs)
}

func TestContentWrite_ImageSetReplacesNotMerges(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeImage)

	require.NoError(t, contents.Write("post-1", block, model.BlockContent{ImageURLs: []string{"a.png", "b.png"}}))
	require.NoError(t, contents.Write("post-1", block, model.BlockContent{ImageURLs: []string{"c.png"}}))

	got, err := contents.Read(block.ID, model.TypeImage)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.png"}, got.ImageURLs)
}

func TestContentWriteRead_Code(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeCode)

	payload := model.BlockContent{Code: "fmt.Println(1)", CodeNote: "print", Language: "go"}
	require.NoError(t, contents.Write("post-1", block, payload))

	got, err := contents.Read(block.ID, model.TypeCode)
	require.NoError(t, err)
	assert.Equal(t, payload.Code, got.Code)
	assert.Equal(t, payload.CodeNote, got.CodeNote)
	assert.Equal(t, payload.Language, got.Language)
}

func TestContentWriteRead_Math(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeMath)

	require.NoError(t, contents.Write("post-1", block, model.BlockContent{Expression: "e=mc^2"}))

	got, err := contents.Read(block.ID, model.TypeMath)
	require.NoError(t, err)
	assert.Equal(t, "e=mc^2", got.Expression)
}

func TestContentWriteRead_LinkVariants(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)

	for _, typeTag := range []model.BlockType{model.TypeHyperlink, model.TypeVideo, model.TypeDocument} {
		block := saveBlock(t, db, typeTag)
		require.NoError(t, contents.Write("post-1", block, model.BlockContent{URL: "https://example.com/x"}))

		got, err := contents.Read(block.ID, typeTag)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/x", got.URL, string(typeTag))
	}
}

func TestContentWrite_LinksAttachmentByURL(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeDocument)

	att := postModel.Attachment{Name: "paper.pdf", URL: "https://cdn.example.com/paper.pdf"}
	require.NoError(t, db.Create(&att).Error)

	require.NoError(t, contents.Write("post-1", block, model.BlockContent{URL: att.URL}))

	var reloaded postModel.Attachment
	require.NoError(t, db.First(&reloaded, "id = ?", att.ID).Error)
	require.NotNil(t, reloaded.PostID)
	assert.Equal(t, "post-1", *reloaded.PostID)
}

func TestContentRead_UnknownTagSkipsSilently(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)

	got, err := contents.Read("whatever", "gif")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestContentRead_MissingRowIsNoContent(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)
	block := saveBlock(t, db, model.TypeText)

	got, err := contents.Read(block.ID, model.TypeText)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestContentWrite_UnknownTagRejected(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)

	block := &model.Block{Type: "gif"}
	block.ID = "b-1"
	err := contents.Write("post-1", block, model.BlockContent{})
	assert.Error(t, err)
}

func TestReadAllByPost_MergesImageRows(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)

	text := saveBlock(t, db, model.TypeText)
	images := saveBlock(t, db, model.TypeImage)
	require.NoError(t, contents.Write("post-1", text, model.BlockContent{Text: "hi"}))
	require.NoError(t, contents.Write("post-1", images, model.BlockContent{ImageURLs: []string{"1.png", "2.png"}}))

	all, err := contents.ReadAllByPost("post-1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "hi", all[text.ID].Text)
	assert.Equal(t, []string{"1.png", "2.png"}, all[images.ID].ImageURLs)
}

func TestDeleteByPost_ClearsAllContentTables(t *testing.T) {
	db := newTestDB(t)
	contents := NewContentRepository(db)

	text := saveBlock(t, db, model.TypeText)
	code := saveBlock(t, db, model.TypeCode)
	require.NoError(t, contents.Write("post-1", text, model.BlockContent{Text: "hi"}))
	require.NoError(t, contents.Write("post-1", code, model.BlockContent{Code: "x"}))

	ids, err := contents.DeleteByPost("post-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{text.ID, code.ID}, ids)

	all, err := contents.ReadAllByPost("post-1")
	require.NoError(t, err)
	assert.Empty(t, all)
}
