package gateway

import "strings"

// Default prompt templates. Each can be overridden through config; the
// {{TEXT}} placeholder is substituted with the user input.

const defaultTaskExtractionPrompt = `You extract actionable tasks from a dictated note.
Return ONLY valid JSON of the exact form:
{"tasks":[{"text":"...","done":false}],"intent":"new","reason":"..."}
Rules:
- "intent" is "append" when the note clearly continues an existing list ("also add...", "and don't forget..."), otherwise "new".
- Every field is required; use an empty tasks array when nothing is actionable.
- Task text is imperative and short.

Note:
"""
{{TEXT}}
"""`

const defaultTaskCategorizationPrompt = `You extract tasks from a note and group them.
Return ONLY valid JSON of the exact form:
{"tasks":[{"text":"...","done":false,"category":"..."}],"noteGroups":[{"title":"...","category":"...","taskIndices":[0]}],"reasoning":"..."}
Rules:
- taskIndices are zero-based indices into the tasks array.
- Every task should be referenced by exactly one group where possible.
- Every field is required; arrays may be empty.

Note:
"""
{{TEXT}}
"""`

const defaultGroceryExtractionPrompt = `You extract grocery items from a note.
Return ONLY valid JSON of the exact form:
{"categories":{"produce":[],"dairy":[],"meat":[],"bakery":[],"pantry":[],"other":[]}}
where each array holds objects {"name":"...","quantity":"...","done":false}.
Rules:
- All six category keys are required, empty arrays included.
- "quantity" may be an empty string when the note gives none.
- Put anything that fits no other category under "other".

Note:
"""
{{TEXT}}
"""`

const defaultRecipePrompt = `You write a practical home-cooking recipe.
Return ONLY valid JSON of the exact form:
{"title":"...","ingredients":["..."],"instructions":["..."],"prepTime":"...","cookTime":"...","servings":4}
Rules:
- Ingredients include quantities inline ("2 cups flour").
- Instructions are numbered-free imperative steps in order.
- Every field is required.

Request:
"""
{{TEXT}}
"""`

const defaultContentIdentificationPrompt = `Classify the content type of a note.
Return ONLY valid JSON of the exact form:
{"contentType":"...","confidence":0.0,"reasoning":"..."}
where contentType is one of: task_list, grocery_list, recipe, note, idea, journal.

Note:
"""
{{TEXT}}
"""`

func renderPrompt(template, text string) string {
	return strings.ReplaceAll(template, "{{TEXT}}", text)
}

// extractJSON strips markdown code fences that models sometimes wrap
// around JSON output.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
