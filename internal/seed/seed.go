// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	ExtraUsers  int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

type skillSpec struct {
	name     string
	category string
}

var catalogSkills = []skillSpec{
	{"JavaScript", "Programming"},
	{"Python", "Programming"},
	{"Java", "Programming"},
	{"React", "Programming"},
	{"Node.js", "Programming"},
	{"Photoshop", "Design"},
	{"Graphic Design", "Design"},
	{"UI/UX Design", "Design"},
	{"Web Design", "Design"},
	{"Logo Design", "Design"},
	{"Photography", "Creative"},
	{"Video Editing", "Creative"},
	{"Content Writing", "Writing"},
	{"Copywriting", "Writing"},
	{"Data Analysis", "Analytics"},
	{"Excel", "Analytics"},
	{"Digital Marketing", "Marketing"},
	{"SEO", "Marketing"},
	{"Social Media Marketing", "Marketing"},
	{"English Teaching", "Education"},
	{"Guitar", "Music"},
	{"Piano", "Music"},
	{"Cooking", "Lifestyle"},
	{"Fitness Training", "Health"},
	{"Yoga", "Health"},
}

type userSpec struct {
	username     string
	name         string
	location     string
	availability string
	offered      []string
	wanted       []string
}

var demoUsers = []userSpec{
	{"marc_demo", "Marc Demo", "New York, USA", "Weekends",
		[]string{"JavaScript", "Python"}, []string{"Photoshop", "Graphic Design"}},
	{"michell", "Michell", "London, UK", "Evenings",
		[]string{"Java", "React"}, []string{"Photography", "Video Editing"}},
	{"joe_wills", "Joe Wills", "Toronto, Canada", "Weekdays",
		[]string{"Node.js", "Web Design"}, []string{"Digital Marketing", "SEO"}},
	{"alice_johnson", "Alice Johnson", "Sydney, Australia", "Weekends, Evenings",
		[]string{"UI/UX Design", "Photoshop"}, []string{"Data Analysis", "Excel"}},
	{"bob_smith", "Bob Smith", "Berlin, Germany", "Weekends",
		[]string{"Photography", "Video Editing"}, []string{"Digital Marketing", "Content Writing"}},
	{"sarah_wilson", "Sarah Wilson", "Paris, France", "Evenings",
		[]string{"Graphic Design", "Logo Design"}, []string{"Python", "JavaScript"}},
	{"david_chen", "David Chen", "Singapore", "Weekdays, Weekends",
		[]string{"Data Analysis", "Excel"}, []string{"Guitar", "Piano"}},
	{"emma_garcia", "Emma Garcia", "Barcelona, Spain", "Weekends",
		[]string{"Digital Marketing", "SEO"}, []string{"Cooking", "Yoga"}},
}

type swapSpec struct {
	requester string
	receiver  string
	offered   string
	wanted    string
	status    models.SwapStatus
	message   string
}

var demoSwaps = []swapSpec{
	{"marc_demo", "alice_johnson", "JavaScript", "Photoshop", models.SwapStatusPending,
		"Hi! I would love to learn Photoshop in exchange for JavaScript tutoring."},
	{"michell", "bob_smith", "React", "Photography", models.SwapStatusAccepted,
		"I can teach you React if you can help me with photography basics."},
	{"joe_wills", "emma_garcia", "Web Design", "Digital Marketing", models.SwapStatusCompleted,
		"Looking to learn digital marketing strategies. Can offer web design skills."},
	{"david_chen", "marc_demo", "Data Analysis", "Python", models.SwapStatusRejected,
		"Would like to learn Python programming. I can teach data analysis."},
	{"sarah_wilson", "michell", "Graphic Design", "Java", models.SwapStatusPending,
		"Interested in learning Java. I can help with graphic design projects."},
}

// ClearAll wipes every seeded table, children before parents.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Message{}, &models.Rating{}, &models.SwapRequest{},
		&models.UserSkill{}, &models.AdminMessage{}, &models.Skill{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Seed populates the database with the demo catalog, users, and swaps, plus
// optional extra generated users. Seeding is skipped when users already exist.
func (s *Seeder) Seed(opts Options) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Database already has users, skipping seed")
		return nil
	}

	log.Println("Seeding demo data...")

	skillsByName := make(map[string]*models.Skill, len(catalogSkills))
	for _, spec := range catalogSkills {
		skill := &models.Skill{Name: spec.name, Category: spec.category, IsApproved: true}
		if err := s.db.Create(skill).Error; err != nil {
			return fmt.Errorf("creating skill %s: %w", spec.name, err)
		}
		skillsByName[spec.name] = skill
	}

	adminPassword, err := hashPassword("admin123")
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     "admin",
		Password:     adminPassword,
		Name:         "Jigyasu Patel",
		Location:     "India",
		Availability: "Weekends",
		IsPublic:     true,
		IsAdmin:      true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	demoPassword, err := hashPassword("password123")
	if err != nil {
		return err
	}

	usersByName := make(map[string]*models.User, len(demoUsers))
	for _, spec := range demoUsers {
		user := &models.User{
			Username:     spec.username,
			Password:     demoPassword,
			Name:         spec.name,
			Location:     spec.location,
			Availability: spec.availability,
			IsPublic:     true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("creating user %s: %w", spec.username, err)
		}
		usersByName[spec.username] = user

		if err := s.attachSkills(user, spec.offered, models.SkillRoleOffered, skillsByName); err != nil {
			return err
		}
		if err := s.attachSkills(user, spec.wanted, models.SkillRoleWanted, skillsByName); err != nil {
			return err
		}
	}

	for _, spec := range demoSwaps {
		swap := &models.SwapRequest{
			RequesterID:    usersByName[spec.requester].ID,
			ReceiverID:     usersByName[spec.receiver].ID,
			OfferedSkillID: skillsByName[spec.offered].ID,
			WantedSkillID:  skillsByName[spec.wanted].ID,
			Status:         spec.status,
			Message:        spec.message,
		}
		if err := s.db.Create(swap).Error; err != nil {
			return fmt.Errorf("creating swap %s->%s: %w", spec.requester, spec.receiver, err)
		}

		// Accepted swaps come with a short message thread and a rating so
		// the demo shows the post-acceptance features.
		if spec.status == models.SwapStatusAccepted {
			if err := s.seedThread(swap); err != nil {
				return err
			}
		}
	}

	if opts.ExtraUsers > 0 {
		if err := s.seedExtraUsers(opts.ExtraUsers, demoPassword, skillsByName); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d skills, %d demo users, %d swaps, %d extra users",
		len(catalogSkills), len(demoUsers)+1, len(demoSwaps), opts.ExtraUsers)
	return nil
}

func (s *Seeder) attachSkills(user *models.User, names []string, role models.SkillRole, skillsByName map[string]*models.Skill) error {
	for _, name := range names {
		skill, ok := skillsByName[name]
		if !ok {
			continue
		}
		assoc := &models.UserSkill{UserID: user.ID, SkillID: skill.ID, Role: role}
		if err := s.db.Create(assoc).Error; err != nil {
			return fmt.Errorf("attaching %s to %s: %w", name, user.Username, err)
		}
	}
	return nil
}

func (s *Seeder) seedThread(swap *models.SwapRequest) error {
	messages := []*models.Message{
		{
			SwapRequestID: swap.ID,
			SenderID:      swap.RequesterID,
			ReceiverID:    swap.ReceiverID,
			Content:       "Great, when works for you?",
			IsRead:        true,
		},
		{
			SwapRequestID: swap.ID,
			SenderID:      swap.ReceiverID,
			ReceiverID:    swap.RequesterID,
			Content:       "Saturday afternoon is perfect.",
		},
	}
	for _, msg := range messages {
		if err := s.db.Create(msg).Error; err != nil {
			return fmt.Errorf("creating message: %w", err)
		}
	}

	rating := &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       swap.RequesterID,
		RatedID:       swap.ReceiverID,
		Score:         5,
		Feedback:      "Patient and well prepared, learned a lot.",
	}
	if err := s.db.Create(rating).Error; err != nil {
		return fmt.Errorf("creating rating: %w", err)
	}
	return nil
}

// seedExtraUsers generates additional random users with a couple of catalog
// skills each, for load-testing the browse page.
func (s *Seeder) seedExtraUsers(n int, password string, skillsByName map[string]*models.Skill) error {
	availabilities := []string{"Weekends", "Evenings", "Weekdays", "Weekends, Evenings"}

	names := make([]string, 0, len(skillsByName))
	for name := range skillsByName {
		names = append(names, name)
	}

	for i := 0; i < n; i++ {
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 3 {
			username = username + "xyz"
		}
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", username, i),
			Password:     password,
			Name:         gofakeit.Name(),
			Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
			Availability: availabilities[rand.Intn(len(availabilities))],
			IsPublic:     rand.Intn(10) > 0, // roughly one in ten hidden
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("creating extra user: %w", err)
		}

		offered := names[rand.Intn(len(names))]
		wanted := names[rand.Intn(len(names))]
		if err := s.attachSkills(user, []string{offered}, models.SkillRoleOffered, skillsByName); err != nil {
			return err
		}
		if wanted != offered {
			if err := s.attachSkills(user, []string{wanted}, models.SkillRoleWanted, skillsByName); err != nil {
				return err
			}
		}
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
