package menu

import "github.com/shopspring/decimal"

type entry struct {
	name, description, price, image string
}

var catalog = map[Course][]entry{
	CourseEntree: {
		{"Cauliflower", "Whole cauliflower, brined, roasted, and deep fried", "7.00", "cauliflower"},
		{"Three Bean Chili", "Black beans, red beans, kidney beans, slow cooked, topped with onion", "4.00", "three_bean_chili"},
		{"Mushroom Pasta", "Penne pasta, mushrooms, basil, with plum tomatoes cooked in garlic and olive oil", "5.50", "mushroom_pasta"},
		{"Spicy Black Bean Skillet", "Seasonal vegetables, black beans, house spice blend, served with avocado and quick pickled onions", "5.50", "black_bean_skillet"},
	},
	CourseSide: {
		{"Summer Salad", "Heirloom tomatoes, butter lettuce, peaches, avocado, balsamic dressing", "2.50", "summer_salad"},
		{"Butternut Squash Soup", "Roasted butternut squash, roasted peppers, chili oil", "3.00", "squash_soup"},
		{"Spicy Potatoes", "Marble potatoes, roasted, and fried in house spice blend", "2.00", "spicy_potatoes"},
		{"Coconut Rice", "Rice, coconut milk, lime, and sugar", "1.50", "coconut_rice"},
	},
	CourseAccompaniment: {
		{"Lunch Roll", "Fresh baked roll made in house", "0.50", "lunch_roll"},
		{"Mixed Berries", "Strawberries, blueberries, raspberries, and huckleberries", "1.00", "mixed_berries"},
		{"Pickled Veggies", "Pickled cucumbers and carrots, made in house", "0.50", "pickled_veggies"},
	},
}

// Catalog returns the built-in menu used to seed new databases.
func Catalog() []Item {
	var out []Item
	for _, course := range Courses() {
		for idx, e := range catalog[course] {
			out = append(out, Item{
				ID:          ItemID(course, e.name),
				Course:      course,
				Name:        e.name,
				Description: e.description,
				Price:       decimal.RequireFromString(e.price),
				Image:       e.image,
				SortOrder:   idx,
			})
		}
	}
	return out
}
