package model

// Course is one of the fixed menu categories an item belongs to.
type Course string

const (
	CourseStarters Course = "Starters"
	CourseMains    Course = "Mains"
	CourseDessert  Course = "Dessert"
	CourseDrinks   Course = "Drinks"
)

// AllCourses lists every course in canonical display order.
var AllCourses = []Course{
	CourseStarters,
	CourseMains,
	CourseDessert,
	CourseDrinks,
}

// IsValid reports whether c is one of the known courses.
func (c Course) IsValid() bool {
	for _, known := range AllCourses {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCourse returns the course with the given name.
// Matching is exact; "mains" is not a course.
func ParseCourse(name string) (Course, error) {
	c := Course(name)
	if !c.IsValid() {
		return "", ErrInvalidCourse
	}
	return c, nil
}

// MenuItem represents a single dish on the menu.
type MenuItem struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Course      Course `json:"course" db:"course"`
	Price       string `json:"price" db:"price"` // always two fraction digits, e.g. "5.50"
}

// NewMenuItem is the normalized input accepted by the menu store.
type NewMenuItem struct {
	Name        string
	Description string
	Course      Course
	Price       string
}

// MenuItemForm is the raw, unvalidated input captured from a client.
type MenuItemForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Course      string `json:"course"`
	Price       string `json:"price"`
}

// CourseAverage holds the price statistics for one course.
type CourseAverage struct {
	Course  Course  `json:"course"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MenuStats summarises the whole menu.
type MenuStats struct {
	TotalItems int             `json:"totalItems"`
	Averages   []CourseAverage `json:"averages"`
}
