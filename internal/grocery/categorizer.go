package grocery

import "strings"

// Category is one label from the canonical grocery enumeration.
type Category string

const (
	CategoryProduce   Category = "produce"
	CategoryDairy     Category = "dairy"
	CategoryMeat      Category = "meat"
	CategorySeafood   Category = "seafood"
	CategoryFrozen    Category = "frozen"
	CategoryPantry    Category = "pantry"
	CategoryBakery    Category = "bakery"
	CategoryBeverages Category = "beverages"
	CategorySnacks    Category = "snacks"
	CategorySpices    Category = "spices"
	CategoryOther     Category = "other"
)

// Categories lists the canonical enumeration in display order.
var Categories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategorySeafood,
	CategoryFrozen,
	CategoryPantry,
	CategoryBakery,
	CategoryBeverages,
	CategorySnacks,
	CategorySpices,
	CategoryOther,
}

// NarrowCategories is the 6-way subset used by the grocery-extraction
// gateway contract. It maps into the canonical set by identity.
var NarrowCategories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryMeat,
	CategoryBakery,
	CategoryPantry,
	CategoryOther,
}

// ParseCategory maps a free-form label onto the canonical enumeration,
// falling back to "other" for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known
		}
	}
	return CategoryOther
}

// Narrow collapses a canonical category onto the 6-way subset used by the
// grocery-extraction wire contract.
func Narrow(c Category) Category {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryMeat, CategoryBakery, CategoryPantry:
		return c
	case CategorySeafood:
		return CategoryMeat
	case CategorySpices:
		return CategoryPantry
	default:
		return CategoryOther
	}
}

type keywordRule struct {
	category Category
	keywords []string
}

// rules are evaluated in order and the first match wins. The order is a
// deliberate tie-break for names matching several groups: "frozen chicken"
// hits meat before frozen, "frozen peas" hits produce before frozen.
var rules = []keywordRule{
	{CategoryProduce, []string{
		"fruit", "vegetable", "apple", "banana", "orange", "berry", "grape",
		"lemon", "lime", "melon", "lettuce", "spinach", "kale", "tomato",
		"onion", "garlic", "potato", "carrot", "pepper", "cucumber",
		"broccoli", "celery", "avocado", "mushroom", "peas", "cilantro",
		"basil", "eggplant", // before the dairy "egg" rule
	}},
	{CategoryDairy, []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg",
	}},
	{CategoryMeat, []string{
		"chicken", "beef", "pork", "turkey", "lamb", "bacon", "sausage",
		"ham", "steak", "meat",
	}},
	{CategorySeafood, []string{
		"fish", "salmon", "tuna", "shrimp", "crab", "lobster", "cod",
		"tilapia", "oyster", "scallop", "seafood",
	}},
	{CategoryBakery, []string{
		"bread", "bagel", "bun", "roll", "croissant", "muffin", "cake",
		"tortilla", "pita", "baguette", "donut",
	}},
	{CategoryBeverages, []string{
		"juice", "soda", "coffee", "tea", "water", "wine", "beer", "drink",
	}},
	{CategorySnacks, []string{
		"chips", "crackers", "cookie", "candy", "popcorn", "pretzel",
		"granola", "chocolate", "nuts",
	}},
	{CategorySpices, []string{
		"salt", "cumin", "paprika", "cinnamon", "oregano", "turmeric",
		"vanilla", "spice", "seasoning",
	}},
	{CategoryFrozen, []string{
		"frozen", "ice cream", "popsicle", "pizza",
	}},
	{CategoryPantry, []string{
		"rice", "pasta", "flour", "sugar", "oil", "sauce", "canned", "soup",
		"cereal", "beans", "vinegar", "honey", "noodle", "broth", "stock",
	}},
}

// Categorize buckets an item name into exactly one category by ordered
// keyword substring matching. Total over all strings; empty or garbage
// input falls through to "other".
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
