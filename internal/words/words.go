package words

import "math/rand"

// Lists holds the built-in word lists keyed by category.
var Lists = map[string][]string{
	"animals": {
		"Lion", "Elephant", "Penguin", "Dolphin", "Eagle", "Kangaroo", "Panda", "Tiger",
		"Giraffe", "Zebra", "Monkey", "Bear", "Wolf", "Fox", "Rabbit", "Squirrel",
		"Owl", "Hawk", "Shark", "Whale", "Octopus", "Turtle", "Crocodile", "Snake",
	},
	"foods": {
		"Pizza", "Burger", "Pasta", "Sushi", "Taco", "Salad", "Soup", "Sandwich",
		"Rice", "Noodles", "Bread", "Cheese", "Chicken", "Fish", "Steak", "Vegetables",
		"Fruit", "Ice cream", "Cake", "Cookies", "Chocolate", "Coffee", "Tea", "Juice",
	},
	"objects": {
		"Phone", "Computer", "Book", "Chair", "Table", "Lamp", "Clock", "Mirror",
		"Camera", "Bicycle", "Car", "Plane", "Train", "Boat", "Guitar", "Piano",
		"Ball", "Shoe", "Hat", "Glasses", "Watch", "Pen", "Paper", "Bag",
	},
	"places": {
		"Beach", "Mountain", "Forest", "Desert", "City", "Village", "Island", "Lake",
		"River", "Ocean", "Park", "Museum", "Library", "School", "Hospital", "Airport",
		"Restaurant", "Hotel", "Cinema", "Theatre", "Stadium", "Mall", "Market", "Temple",
	},
	"activities": {
		"Swimming", "Running", "Dancing", "Singing", "Reading", "Writing", "Cooking", "Painting",
		"Drawing", "Playing", "Sleeping", "Walking", "Talking", "Listening", "Working", "Studying",
		"Shopping", "Travelling", "Hiking", "Camping", "Fishing", "Cycling", "Driving", "Flying",
	},
	"movies": {
		"Titanic", "Avatar", "Star Wars", "Harry Potter", "Lord of the Rings", "Marvel", "Batman", "Superman",
		"Jurassic Park", "Matrix", "Inception", "Interstellar", "Frozen", "Toy Story", "Shrek", "Finding Nemo",
		"The Godfather", "Pulp Fiction", "Forrest Gump", "The Shawshank Redemption", "The Dark Knight", "Fight Club", "Gladiator", "Braveheart",
	},
	"books": {
		"Harry Potter", "Lord of the Rings", "Game of Thrones", "The Hobbit", "Pride and Prejudice", "1984", "To Kill a Mockingbird", "The Great Gatsby",
		"Romeo and Juliet", "Hamlet", "Macbeth", "The Odyssey", "The Iliad", "Don Quixote", "Moby Dick", "War and Peace",
		"The Catcher in the Rye", "The Hunger Games", "Twilight", "The Da Vinci Code", "The Alchemist", "Life of Pi", "The Kite Runner", "The Book Thief",
	},
}

// Categories returns the known category names in no particular order.
func Categories() []string {
	names := make([]string, 0, len(Lists))
	for name := range Lists {
		names = append(names, name)
	}
	return names
}

// IsCategory reports whether name is a known category.
func IsCategory(name string) bool {
	_, ok := Lists[name]
	return ok
}

// Random picks a random word from the given category. An empty or unknown
// category picks from a random category instead.
func Random(category string) string {
	list, ok := Lists[category]
	if !ok {
		names := Categories()
		list = Lists[names[rand.Intn(len(names))]]
	}
	return list[rand.Intn(len(list))]
}
