package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"Apple", CategoryProduce},
		{"baby spinach", CategoryProduce},
		{"Milk", CategoryDairy},
		{"shredded cheese", CategoryDairy},
		{"chicken thighs", CategoryMeat},
		{"salmon fillet", CategorySeafood},
		{"sourdough bread", CategoryBakery},
		{"orange juice", CategoryProduce}, // "orange" wins before "juice"
		{"sparkling water", CategoryBeverages},
		{"tortilla chips", CategoryBakery}, // "tortilla" wins before "chips"
		{"potato chips", CategoryProduce},  // "potato" wins before "chips"
		{"dark chocolate", CategorySnacks},
		{"ground cumin", CategorySpices},
		{"ice cream", CategoryDairy}, // "cream" wins before "ice cream"
		{"popsicles", CategoryFrozen},
		{"jasmine rice", CategoryPantry},
		{"olive oil", CategoryPantry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Categorize(tc.name))
		})
	}
}

// Precedence is load-bearing: an item matching two keyword groups must
// land in whichever group is evaluated first.
func TestCategorizePrecedence(t *testing.T) {
	assert.Equal(t, CategoryMeat, Categorize("frozen chicken"))
	assert.Equal(t, CategoryProduce, Categorize("frozen peas"))
	assert.Equal(t, CategorySeafood, Categorize("frozen shrimp"))
	assert.Equal(t, CategoryFrozen, Categorize("frozen waffles"))
	assert.Equal(t, CategoryProduce, Categorize("eggplant")) // not dairy
	assert.Equal(t, CategoryDairy, Categorize("eggs"))
	assert.Equal(t, CategoryDairy, Categorize("salted butter")) // dairy before spices
}

func TestCategorizeCaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryDairy, Categorize("MILK"))
	assert.Equal(t, CategoryMeat, Categorize("Ground Beef"))
}

func TestCategorizeFallsThroughToOther(t *testing.T) {
	for _, name := range []string{"", "   ", "widget", "zzzz", "paper towels"} {
		assert.Equal(t, CategoryOther, Categorize(name), "input %q", name)
	}
}
