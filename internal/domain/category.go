package domain

type Category struct {
	ID          int64
	Name        string
	Color       string
	Description string
}

// DefaultCategories are seeded into an empty installation.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Work", Color: "#3B82F6", Description: "Work related tasks"},
		{Name: "Personal", Color: "#10B981", Description: "Personal tasks"},
		{Name: "Urgent", Color: "#EF4444", Description: "Urgent tasks"},
	}
}
