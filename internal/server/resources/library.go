// Package resources is the curated learning-resource library that learners
// can browse and mark as favorites.
package resources

import "strings"

const (
	TypeBook    = "Book"
	TypeArticle = "Article"
	TypeVideo   = "Video"
	TypeCourse  = "Course"

	// LevelAll marks resources suited to every education level; as a
	// filter it matches everything.
	LevelAll = "All"
)

type Resource struct {
	ID             string
	Title          string
	Description    string
	Type           string
	Category       string
	EducationLevel string
	URL            string
}

var library = []Resource{
	{
		ID:             "prog-101",
		Title:          "Eloquent JavaScript",
		Description:    "A modern introduction to programming with JavaScript.",
		Type:           TypeBook,
		Category:       "Programming",
		EducationLevel: LevelAll,
		URL:            "https://eloquentjavascript.net/",
	},
	{
		ID:             "math-101",
		Title:          "Khan Academy: Calculus",
		Description:    "A complete calculus course, from limits to integrals.",
		Type:           TypeCourse,
		Category:       "Mathematics",
		EducationLevel: "Undergraduate",
		URL:            "https://www.khanacademy.org/math/calculus-1",
	},
	{
		ID:             "hist-101",
		Title:          "Crash Course World History",
		Description:    "Short, entertaining videos covering world history.",
		Type:           TypeVideo,
		Category:       "History",
		EducationLevel: "High School",
		URL:            "https://www.youtube.com/playlist?list=PLBDA2E52FB1EF80C9",
	},
	{
		ID:             "science-101",
		Title:          "Nature: International Journal of Science",
		Description:    "The latest scientific articles and discoveries.",
		Type:           TypeArticle,
		Category:       "Science",
		EducationLevel: "Postgraduate",
		URL:            "https://www.nature.com/",
	},
	{
		ID:             "art-101",
		Title:          "Google Arts & Culture",
		Description:    "Explore art collections and artifacts from museums around the world.",
		Type:           TypeCourse,
		Category:       "Art",
		EducationLevel: LevelAll,
		URL:            "https://artsandculture.google.com/",
	},
	{
		ID:             "prog-102",
		Title:          "freeCodeCamp",
		Description:    "Learn to code for free. Build projects. Earn certifications.",
		Type:           TypeCourse,
		Category:       "Programming",
		EducationLevel: LevelAll,
		URL:            "https://www.freecodecamp.org/",
	},
	{
		ID:             "math-102",
		Title:          "3Blue1Brown",
		Description:    "Visual, intuitive explanations of mathematics.",
		Type:           TypeVideo,
		Category:       "Mathematics",
		EducationLevel: LevelAll,
		URL:            "https://www.youtube.com/c/3blue1brown",
	},
	{
		ID:             "hist-102",
		Title:          "National Geographic History",
		Description:    "In-depth articles on historical events and figures.",
		Type:           TypeArticle,
		Category:       "History",
		EducationLevel: "High School",
		URL:            "https://historia.nationalgeographic.com.es/",
	},
}

// All returns the whole library in display order.
func All() []Resource {
	out := make([]Resource, len(library))
	copy(out, library)
	return out
}

func Find(id string) (Resource, bool) {
	for _, r := range library {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// Filter returns the resources whose title or description contains term
// and whose category and level match. Matching ignores case; an empty or
// "all" category or level matches everything.
func Filter(term, category, level string) []Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []Resource{}
	for _, r := range library {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		if !matches(category, r.Category) {
			continue
		}
		if r.EducationLevel != LevelAll && !matches(level, r.EducationLevel) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, LevelAll) || strings.EqualFold(filter, value)
}
