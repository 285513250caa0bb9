package domain

// RestaurantVotes is one ballot entry: a restaurant name and its tally.
// Counts only ever move up; there is no operation that decrements or
// resets a tally.
type RestaurantVotes struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}
