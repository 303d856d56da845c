package expensefox

// Built-in category and account tables. Built-ins cannot be deleted; user
// added categories carry Custom=true and live alongside them.

// GenericIncomeCategory is the category assigned to transactions the engine
// synthesizes itself, such as the opening transaction of a new account.
const GenericIncomeCategory = "salary"

var seedAccounts = []Account{
	{ID: "1", Name: "Cash", Balance: Amount{}, Icon: "wallet", Color: "#6C63FF"},
	{ID: "2", Name: "Bank Account", Balance: Amount{}, Icon: "landmark", Color: "#10B981"},
	{ID: "3", Name: "Credit Card", Balance: Amount{}, Icon: "credit-card", Color: "#EF4444"},
}

// SeedAccounts returns the three accounts present at first run. Their ids are
// fixed and protected from deletion.
func SeedAccounts() []Account {
	accounts := make([]Account, len(seedAccounts))
	copy(accounts, seedAccounts)
	return accounts
}

// IsSeedAccount reports whether the id belongs to a protected seed account.
func IsSeedAccount(id string) bool {
	for _, a := range seedAccounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

var defaultCategories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "utensils", Color: "#FF6B6B", Type: Expense},
	{ID: "transport", Name: "Transport", Icon: "car", Color: "#4ECDC4", Type: Expense},
	{ID: "shopping", Name: "Shopping", Icon: "shopping-bag", Color: "#FFE66D", Type: Expense},
	{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#A8E6CF", Type: Expense},
	{ID: "health", Name: "Health", Icon: "heart-pulse", Color: "#FF8E72", Type: Expense},
	{ID: "bills", Name: "Bills & Utilities", Icon: "file-text", Color: "#6C5CE7", Type: Expense},
	{ID: "groceries", Name: "Groceries", Icon: "shopping-cart", Color: "#FD79A8", Type: Expense},
	{ID: "education", Name: "Education", Icon: "book-open", Color: "#74B9FF", Type: Expense},
	{ID: "travel", Name: "Travel", Icon: "plane", Color: "#FFA502", Type: Expense},
	{ID: "other", Name: "Other", Icon: "more-horizontal", Color: "#95A5A6", Type: Expense},
	{ID: "salary", Name: "Salary", Icon: "briefcase", Color: "#10B981", Type: Income},
	{ID: "freelance", Name: "Freelance", Icon: "laptop", Color: "#3B82F6", Type: Income},
	{ID: "investment", Name: "Investment", Icon: "trending-up", Color: "#8B5CF6", Type: Income},
	{ID: "other-income", Name: "Other Income", Icon: "dollar-sign", Color: "#6366F1", Type: Income},
}

// DefaultCategories returns the built-in categories.
func DefaultCategories() []Category {
	categories := make([]Category, len(defaultCategories))
	copy(categories, defaultCategories)
	return categories
}
