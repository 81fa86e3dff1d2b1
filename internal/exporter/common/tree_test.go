package common

import (
	"testing"

	"libwebdoc/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nestedRecords = []model.ParamRecord{
	{Key: "name", Description: "user name"},
	{Key: "address", Description: "postal address"},
	{Key: "address[n]", Offset: 1},
	{Key: "address[n].city", Description: "city", Offset: 2},
	{Key: "address[n].zip", Offset: 2},
	{Key: "orphan.child", Offset: 1},
}

func TestFlattenParams(t *testing.T) {
	rows := FlattenParams(nestedRecords)
	require.Len(t, rows, len(nestedRecords))

	assert.Equal(t, "name", rows[0].Label)
	assert.Equal(t, "  [n]", rows[2].Label)
	assert.Equal(t, "    city", rows[3].Label)
	assert.Equal(t, 2, rows[4].Indent)
}

func TestBuildParamTree(t *testing.T) {
	roots := BuildParamTree(nestedRecords)
	require.Len(t, roots, 3)

	assert.Equal(t, "name", roots[0].Record.Key)
	assert.Empty(t, roots[0].Children)

	address := roots[1]
	assert.True(t, address.IsArray())
	require.Len(t, address.Children, 1)
	item := address.Children[0]
	require.Len(t, item.Children, 2)
	assert.Equal(t, "address[n].city", item.Children[0].Record.Key)
	assert.False(t, item.IsArray())

	// undeclared parent falls back to the top level
	assert.Equal(t, "orphan.child", roots[2].Record.Key)
}

func TestSortClasses(t *testing.T) {
	classes := []model.ClassDoc{
		{Page: "user", Methods: make([]model.MethodRecord, 1)},
		{Dirs: []string{"shop"}, Page: "cart", Methods: make([]model.MethodRecord, 3)},
		{Page: "order", Methods: make([]model.MethodRecord, 3)},
	}

	sorted := SortClasses(classes)
	assert.Equal(t, "order", sorted[0].PagePath())
	assert.Equal(t, "shop/cart", sorted[1].PagePath())
	assert.Equal(t, "user", sorted[2].PagePath())
	assert.Equal(t, "user", classes[0].Page, "input must not be reordered")

	byCount := SortByComplexity(classes)
	assert.Equal(t, "order", byCount[0].PagePath())
	assert.Equal(t, "shop/cart", byCount[1].PagePath())
	assert.Equal(t, "user", byCount[2].PagePath())
}

func TestCountVerbs(t *testing.T) {
	doc := model.ClassDoc{Methods: []model.MethodRecord{
		{Verb: model.VerbGET}, {Verb: model.VerbPOST}, {Verb: model.VerbGET},
	}}
	get, post := CountVerbs(doc)
	assert.Equal(t, 2, get)
	assert.Equal(t, 1, post)
}
