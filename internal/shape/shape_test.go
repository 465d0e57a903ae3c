package shape

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sousnote/internal/grocery"
	"sousnote/internal/models"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestSelectNilPayload(t *testing.T) {
	sel := Select(nil, "t")
	assert.Equal(t, KindEmpty, sel.Kind)
	assert.Equal(t, "t", sel.Title)
}

func TestSelectEmptyString(t *testing.T) {
	assert.Equal(t, KindEmpty, Select("", "").Kind)
	assert.Equal(t, KindEmpty, Select("   ", "").Kind)
}

func TestSelectPlainText(t *testing.T) {
	sel := Select("just some plain text", "Memo")
	assert.Equal(t, KindNote, sel.Kind)
	assert.Equal(t, "just some plain text", sel.Body)
	assert.Equal(t, "Memo", sel.Title)
}

func TestSelectFlatTaskList(t *testing.T) {
	sel := Select(`{"tasks":[{"text":"buy milk","done":false}],"intent":"new","reason":"x"}`, "")
	require.Equal(t, KindTaskList, sel.Kind)
	require.Len(t, sel.Tasks, 1)
	assert.Equal(t, "buy milk", sel.Tasks[0].Text)
	assert.False(t, sel.ShowCategories)
}

// intent wins over noteGroups when both are present; the order is a
// deliberate tie-break.
func TestSelectIntentBeatsGroups(t *testing.T) {
	sel := Select(`{"tasks":[{"text":"a","done":false}],"intent":"append","noteGroups":[]}`, "")
	assert.Equal(t, KindTaskList, sel.Kind)
}

func TestSelectGroupedTaskList(t *testing.T) {
	payload := `{
		"tasks":[
			{"text":"buy milk","done":false},
			{"text":"call mom","done":true},
			{"text":"stray","done":false}
		],
		"noteGroups":[
			{"title":"Errands","category":"home","taskIndices":[0,1,99]}
		]
	}`
	sel := Select(payload, "")
	require.Equal(t, KindGroupedTaskList, sel.Kind)
	require.Len(t, sel.Groups, 2)
	assert.Equal(t, "Errands", sel.Groups[0].Title)
	assert.Len(t, sel.Groups[0].Tasks, 2) // index 99 dropped
	// Tasks referenced by no group land in the implicit trailing group.
	assert.Equal(t, "ungrouped", sel.Groups[1].Title)
	assert.Equal(t, "stray", sel.Groups[1].Tasks[0].Text)
}

func TestSelectGroceryCategories(t *testing.T) {
	payload := `{"categories":{"produce":[{"name":"apple","quantity":"1","done":false}],"dairy":[],"meat":[],"bakery":[],"pantry":[],"other":[]}}`
	sel := Select(payload, "")
	require.Equal(t, KindGroceryCategories, sel.Kind)
	require.Contains(t, sel.Categories, grocery.CategoryProduce)
	assert.Equal(t, models.GroceryItem{Name: "apple", Quantity: "1"}, sel.Categories[grocery.CategoryProduce][0])
	assert.NotContains(t, sel.Categories, grocery.CategoryDairy) // empty arrays dropped
}

func TestSelectRecipe(t *testing.T) {
	payload := `{"title":"Pancakes","ingredients":["flour","milk"],"instructions":["mix","fry"],"prepTime":"10m","cookTime":"15m","servings":4}`
	sel := Select(payload, "")
	require.Equal(t, KindRecipe, sel.Kind)
	require.NotNil(t, sel.Recipe)
	assert.Equal(t, "Pancakes", sel.Recipe.Title)
	assert.Equal(t, 4, sel.Recipe.Servings)
	assert.Equal(t, []string{"mix", "fry"}, sel.Recipe.Instructions)
}

func TestSelectBareTaskArray(t *testing.T) {
	sel := Select(`[{"text":"one","done":false},{"text":"two","done":true}]`, "")
	require.Equal(t, KindTaskList, sel.Kind)
	assert.Len(t, sel.Tasks, 2)
	assert.False(t, sel.ShowCategories)
}

func TestSelectContentObject(t *testing.T) {
	sel := Select(`{"content":"body text","title":"From Payload"}`, "")
	require.Equal(t, KindNote, sel.Kind)
	assert.Equal(t, "body text", sel.Body)
	assert.Equal(t, "From Payload", sel.Title)

	// An explicit title wins over the payload's own.
	sel = Select(`{"content":"body","title":"inner"}`, "outer")
	assert.Equal(t, "outer", sel.Title)
}

func TestSelectUnknownObject(t *testing.T) {
	sel := Select(`{}`, "Mystery")
	require.Equal(t, KindUnknown, sel.Kind)
	assert.Equal(t, "{}", sel.Pretty)
	assert.Equal(t, "Mystery", sel.Title)
}

func TestSelectParsedValue(t *testing.T) {
	// Callers may pass already-decoded JSON instead of the raw string.
	sel := Select(decode(t, `{"tasks":[{"text":"a","done":false}],"intent":"new"}`), "")
	assert.Equal(t, KindTaskList, sel.Kind)
}

func TestSelectNeverReturnsErrorShapeForMalformedJSONString(t *testing.T) {
	sel := Select(`{"tasks": [broken`, "")
	// Unparseable strings degrade to the plain-text note shape.
	assert.Equal(t, KindNote, sel.Kind)
	assert.Equal(t, `{"tasks": [broken`, sel.Body)
}
