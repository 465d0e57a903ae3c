// Package shape classifies loosely-typed AI payloads into one of a fixed
// set of rendering shapes. Classification is pure: any payload, however
// malformed, maps to a Selection and never to a Go error.
package shape

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"sousnote/internal/grocery"
	"sousnote/internal/models"
)

// Kind tags the rendering shape a payload was classified into.
type Kind string

const (
	KindEmpty             Kind = "empty"
	KindNote              Kind = "note"
	KindTaskList          Kind = "task_list"
	KindGroupedTaskList   Kind = "grouped_task_list"
	KindGroceryCategories Kind = "grocery_categories"
	KindRecipe            Kind = "recipe"
	KindUnknown           Kind = "unknown"
	KindError             Kind = "error"
)

// TaskGroup is one titled bucket of a grouped task list.
type TaskGroup struct {
	Title    string        `json:"title"`
	Category string        `json:"category,omitempty"`
	Tasks    []models.Task `json:"tasks"`
}

// Selection is the dispatch result: the chosen shape plus whatever the
// renderer needs. Only the fields relevant to Kind are populated.
type Selection struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title,omitempty"`

	// Populated per Kind: note body, flat or grouped tasks, grocery
	// categories, recipe body, or the pretty-printed unknown payload.
	Body           string                                    `json:"body,omitempty"`
	Tasks          []models.Task                             `json:"tasks,omitempty"`
	ShowCategories bool                                      `json:"showCategories"`
	Groups         []TaskGroup                               `json:"groups,omitempty"`
	Categories     map[grocery.Category][]models.GroceryItem `json:"categories,omitempty"`
	Recipe         *models.RecipeDetails                     `json:"recipe,omitempty"`
	Pretty         string                                    `json:"pretty,omitempty"`
	Err            string                                    `json:"error,omitempty"`
	// Raw carries the original payload for debugging; never serialized.
	Raw any `json:"-"`
}

// Select classifies a payload (raw string or parsed JSON value) in strict
// priority order; the order is load-bearing because a payload can satisfy
// several shape predicates. Panics from predicate evaluation are contained
// and surface as an error selection.
func Select(payload any, title string) (sel Selection) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("shape: classification panicked: %v", r)
			sel = Selection{
				Kind:  KindError,
				Title: title,
				Err:   fmt.Sprint(r),
				Raw:   payload,
			}
		}
	}()

	if payload == nil {
		return Selection{Kind: KindEmpty, Title: title}
	}

	raw, isString := payload.(string)
	if isString {
		if strings.TrimSpace(raw) == "" {
			return Selection{Kind: KindEmpty, Title: title}
		}
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return Selection{Kind: KindNote, Title: title, Body: raw}
		}
		payload = parsed
	}

	if obj, ok := payload.(map[string]any); ok {
		tasks, hasTasks := asTaskSlice(obj["tasks"])
		if hasTasks {
			if _, hasIntent := obj["intent"]; hasIntent {
				return Selection{Kind: KindTaskList, Title: title, Tasks: tasks, ShowCategories: false}
			}
			if groupsRaw, ok := obj["noteGroups"].([]any); ok {
				return Selection{
					Kind:   KindGroupedTaskList,
					Title:  title,
					Tasks:  tasks,
					Groups: resolveGroups(groupsRaw, tasks),
				}
			}
		}
		if cats, ok := asGroceryCategories(obj["categories"]); ok {
			return Selection{Kind: KindGroceryCategories, Title: title, Categories: cats}
		}
		if rec, ok := asRecipe(obj); ok {
			return Selection{Kind: KindRecipe, Title: title, Recipe: rec}
		}
	}

	if arr, ok := payload.([]any); ok && len(arr) > 0 {
		if first, ok := arr[0].(map[string]any); ok {
			_, hasText := first["text"]
			_, hasDone := first["done"]
			if hasText && hasDone {
				tasks, _ := asTaskSlice(payload)
				return Selection{Kind: KindTaskList, Title: title, Tasks: tasks, ShowCategories: false}
			}
		}
	}

	if s, ok := payload.(string); ok && s != "" {
		return Selection{Kind: KindNote, Title: title, Body: s}
	}

	if obj, ok := payload.(map[string]any); ok {
		if content, ok := obj["content"].(string); ok {
			body := content
			noteTitle := title
			if noteTitle == "" {
				noteTitle, _ = obj["title"].(string)
			}
			return Selection{Kind: KindNote, Title: noteTitle, Body: body}
		}
	}

	return Selection{Kind: KindUnknown, Title: title, Pretty: prettyPrint(payload), Raw: payload}
}

// asTaskSlice decodes a tasks array of {text, done, category?} objects.
// Entries without a text field are skipped.
func asTaskSlice(v any) ([]models.Task, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	tasks := make([]models.Task, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		text, ok := obj["text"].(string)
		if !ok {
			continue
		}
		done, _ := obj["done"].(bool)
		category, _ := obj["category"].(string)
		tasks = append(tasks, models.Task{Text: text, Done: done, Category: category})
	}
	return tasks, true
}

// resolveGroups maps noteGroups task indices back onto the task array.
// Out-of-range indices are dropped; tasks referenced by no group land in
// an implicit "ungrouped" group at the end.
func resolveGroups(groupsRaw []any, tasks []models.Task) []TaskGroup {
	referenced := make([]bool, len(tasks))
	groups := make([]TaskGroup, 0, len(groupsRaw))
	for _, g := range groupsRaw {
		obj, ok := g.(map[string]any)
		if !ok {
			continue
		}
		group := TaskGroup{}
		group.Title, _ = obj["title"].(string)
		group.Category, _ = obj["category"].(string)
		if indices, ok := obj["taskIndices"].([]any); ok {
			for _, idx := range indices {
				f, ok := idx.(float64)
				if !ok {
					continue
				}
				i := int(f)
				if i < 0 || i >= len(tasks) {
					continue
				}
				group.Tasks = append(group.Tasks, tasks[i])
				referenced[i] = true
			}
		}
		groups = append(groups, group)
	}

	var leftover []models.Task
	for i, t := range tasks {
		if !referenced[i] {
			leftover = append(leftover, t)
		}
	}
	if len(leftover) > 0 {
		groups = append(groups, TaskGroup{Title: "ungrouped", Tasks: leftover})
	}
	return groups
}

// asGroceryCategories accepts a categories object holding at least one
// known grocery key. Unknown keys are ignored rather than rejected.
func asGroceryCategories(v any) (map[grocery.Category][]models.GroceryItem, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[grocery.Category][]models.GroceryItem)
	matched := false
	for _, cat := range grocery.Categories {
		entries, ok := obj[string(cat)].([]any)
		if !ok {
			continue
		}
		matched = true
		items := make([]models.GroceryItem, 0, len(entries))
		for _, el := range entries {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			item := models.GroceryItem{}
			item.Name, _ = m["name"].(string)
			item.Quantity, _ = m["quantity"].(string)
			item.Done, _ = m["done"].(bool)
			if item.Name != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			out[cat] = items
		}
	}
	if !matched {
		return nil, false
	}
	return out, true
}

func asRecipe(obj map[string]any) (*models.RecipeDetails, bool) {
	title, ok := obj["title"].(string)
	if !ok {
		return nil, false
	}
	ingredients, ok := asStringSlice(obj["ingredients"])
	if !ok {
		return nil, false
	}
	instructions, ok := asStringSlice(obj["instructions"])
	if !ok {
		return nil, false
	}
	rec := &models.RecipeDetails{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
	}
	rec.PrepTime, _ = obj["prepTime"].(string)
	rec.CookTime, _ = obj["cookTime"].(string)
	if servings, ok := obj["servings"].(float64); ok {
		rec.Servings = int(servings)
	}
	return rec, true
}

func asStringSlice(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func prettyPrint(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
