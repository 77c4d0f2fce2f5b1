package main

import (
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/arcana-edu/tarot-lms-api/internal/config"
	"github.com/arcana-edu/tarot-lms-api/internal/database"
	"github.com/arcana-edu/tarot-lms-api/internal/models"
)

type userSeed struct {
	name  string
	email string
	role  string
}

type courseSeed struct {
	title           string
	description     string
	tarotTheme      string
	code            string
	instructorEmail string
	taEmail         string
}

type assignmentSeed struct {
	title        string
	description  string
	instructions string
	courseCode   string
	allowedTypes []string
	maxPoints    int
	daysFromNow  int
	providedCode string
}

var userSeeds = []userSeed{
	{"Grape Rose", "grape@udel.edu", models.RoleAdmin},
	{"Apple Lily", "apple@udel.edu", models.RoleInstructor},
	{"Banana Orchid", "banana@udel.edu", models.RoleInstructor},
	{"Orange Jasmine", "orange@udel.edu", models.RoleInstructor},
	{"Strawberry Tulip", "strawberry@udel.edu", models.RoleTA},
	{"Blueberry Daisy", "blueberry@udel.edu", models.RoleTA},
	{"Raspberry Iris", "raspberry@udel.edu", models.RoleTA},
	{"Cherry Violet", "cherry@udel.edu", models.RoleStudent},
	{"Peach Sunflower", "peach@udel.edu", models.RoleStudent},
	{"Pear Carnation", "pear@udel.edu", models.RoleStudent},
	{"Plum Lavender", "plum@udel.edu", models.RoleStudent},
	{"Kiwi Peony", "kiwi@udel.edu", models.RoleStudent},
}

var courseSeeds = []courseSeed{
	{
		title:           "Fundamentals of Programming Sorcery",
		description:     "Master the ancient arts of code creation through mystical programming practices.",
		tarotTheme:      "The Magician - Creation and Manifestation",
		code:            "PROG101",
		instructorEmail: "apple@udel.edu",
		taEmail:         "strawberry@udel.edu",
	},
	{
		title:           "Data Structures & Mystical Algorithms",
		description:     "Journey through the labyrinth of data organization and algorithmic incantations.",
		tarotTheme:      "The High Priestess - Hidden Knowledge",
		code:            "ALGO201",
		instructorEmail: "banana@udel.edu",
		taEmail:         "blueberry@udel.edu",
	},
	{
		title:           "Web Development Arcanum",
		description:     "Weave the threads of the digital realm with HTML, CSS, and JavaScript spells.",
		tarotTheme:      "The Empress - Creative Expression",
		code:            "WEB301",
		instructorEmail: "orange@udel.edu",
		taEmail:         "raspberry@udel.edu",
	},
}

var assignmentSeeds = []assignmentSeed{
	{
		title:        "Hello World Ritual",
		description:  "Your first incantation in the realm of programming.",
		instructions: "Create a program that outputs 'Hello, Mystical World!' using any programming language.",
		courseCode:   "PROG101",
		allowedTypes: []string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeSolutionWalkthrough},
		maxPoints:    50,
		daysFromNow:  7,
	},
	{
		title:        "Variables & Data Types Divination",
		description:  "Understand the essence of data through variables and types.",
		instructions: "Write a program that demonstrates the use of different data types and show how variables hold different mystical energies.",
		courseCode:   "PROG101",
		allowedTypes: []string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeReverseProgramming},
		maxPoints:    75,
		daysFromNow:  14,
		providedCode: "name = \"Seeker\"\nlevel = 1\nhas_magic = True\nspells = [\"fireball\", \"heal\", \"teleport\"]\nprint(f\"{name} is level {level}\")",
	},
	{
		title:        "Sorting Spells Implementation",
		description:  "Master the art of organizing chaos through sorting algorithms.",
		instructions: "Implement at least two different sorting algorithms and compare their mystical efficiency.",
		courseCode:   "ALGO201",
		allowedTypes: []string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeSolutionWalkthrough},
		maxPoints:    100,
		daysFromNow:  21,
	},
	{
		title:        "Binary Search Tree Oracle",
		description:  "Build a tree that holds the wisdom of efficient searching.",
		instructions: "Create a Binary Search Tree implementation with insertion, deletion, and search operations.",
		courseCode:   "ALGO201",
		allowedTypes: []string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeReverseProgramming, models.SubmissionTypeSolutionWalkthrough},
		maxPoints:    150,
		daysFromNow:  28,
		providedCode: "def search_tree(root, target):\n    if not root or root.val == target:\n        return root\n    if target < root.val:\n        return search_tree(root.left, target)\n    return search_tree(root.right, target)",
	},
	{
		title:        "Responsive Tarot Card Layout",
		description:  "Create a mystical web layout that adapts to different viewing crystals.",
		instructions: "Design and code a responsive webpage that displays tarot cards in a grid layout using CSS Grid or Flexbox.",
		courseCode:   "WEB301",
		allowedTypes: []string{models.SubmissionTypeTraditionalCode, models.SubmissionTypeSolutionWalkthrough},
		maxPoints:    120,
		daysFromNow:  35,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseTA{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("seeding completed")
}

func seed(db *gorm.DB) error {
	usersByEmail := map[string]models.User{}
	for _, s := range userSeeds {
		user := models.User{Name: s.name, Email: s.email, Role: s.role}
		if err := db.Where(models.User{Email: s.email}).FirstOrCreate(&user).Error; err != nil {
			return err
		}
		usersByEmail[s.email] = user
	}
	log.Printf("seeded %d users", len(usersByEmail))

	coursesByCode := map[string]models.Course{}
	for _, s := range courseSeeds {
		instructor := usersByEmail[s.instructorEmail]
		course := models.Course{
			Title:        s.title,
			Description:  s.description,
			TarotTheme:   s.tarotTheme,
			Code:         s.code,
			InstructorID: instructor.ID,
		}
		if err := db.Where(models.Course{Code: s.code}).FirstOrCreate(&course).Error; err != nil {
			return err
		}
		coursesByCode[s.code] = course

		ta := usersByEmail[s.taEmail]
		courseTA := models.CourseTA{UserID: ta.ID, CourseID: course.ID}
		if err := db.Where(models.CourseTA{UserID: ta.ID, CourseID: course.ID}).FirstOrCreate(&courseTA).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d courses", len(coursesByCode))

	students := make([]models.User, 0)
	for _, s := range userSeeds {
		if s.role == models.RoleStudent {
			students = append(students, usersByEmail[s.email])
		}
	}

	now := time.Now()

	// Each student joins the course matching their position, plus PROG101.
	courseList := make([]models.Course, 0, len(courseSeeds))
	for _, s := range courseSeeds {
		courseList = append(courseList, coursesByCode[s.code])
	}
	for i, student := range students {
		targets := []models.Course{courseList[i%len(courseList)], coursesByCode["PROG101"]}
		for _, course := range targets {
			enrollment := models.Enrollment{UserID: student.ID, CourseID: course.ID, EnrolledAt: now}
			if err := db.Where(models.Enrollment{UserID: student.ID, CourseID: course.ID}).FirstOrCreate(&enrollment).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("enrolled %d students", len(students))

	for _, s := range assignmentSeeds {
		course := coursesByCode[s.courseCode]
		assignment := models.Assignment{
			Title:        s.title,
			Description:  s.description,
			Instructions: s.instructions,
			CourseID:     course.ID,
			AllowedTypes: datatypes.NewJSONSlice(s.allowedTypes),
			MaxPoints:    s.maxPoints,
			DueDate:      now.AddDate(0, 0, s.daysFromNow),
		}
		if s.providedCode != "" {
			code := s.providedCode
			assignment.ProvidedCode = &code
		}
		if err := db.Where(models.Assignment{Title: s.title, CourseID: course.ID}).FirstOrCreate(&assignment).Error; err != nil {
			return err
		}
	}
	log.Printf("seeded %d assignments", len(assignmentSeeds))

	return nil
}
