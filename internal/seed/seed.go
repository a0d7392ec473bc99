// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password assigned to every seeded user.
const DemoPassword = "password123"

// Seeder populates the database with generated users, posts, comments,
// and bookmarks.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes seeded data. Order matters because of soft references.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"bookmarks", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// CreateUser constructs and persists a demo user. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a demo post authored by the given user,
// with a created_at spread over the past 90 days.
func (s *Seeder) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:   gofakeit.Sentence(5),
		Content: gofakeit.Paragraph(2, 4, 8, "\n"),
		Tags:    s.randomTags(),
		Author:  author.Username,
	}
	if s.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}

	daysBack := s.rng.Intn(90)
	hoursBack := s.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a demo comment on the given post.
func (s *Seeder) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(s.rng.Intn(15) + 3),
		PostID:  post.ID,
		Author:  author.Username,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Seed populates the database with the requested number of users and posts,
// plus comments and bookmarks scattered across them.
func (s *Seeder) Seed(numUsers, numPosts int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		post, err := s.CreatePost(author)
		if err != nil {
			return fmt.Errorf("seeding posts: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		for i := s.rng.Intn(5); i > 0; i-- {
			commenter := users[s.rng.Intn(len(users))]
			if _, err := s.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seeding comments: %w", err)
			}
			comments++
		}
	}
	log.Printf("Seeded %d comments", comments)

	bookmarks := 0
	for _, user := range users {
		for i := s.rng.Intn(8); i > 0; i-- {
			post := posts[s.rng.Intn(len(posts))]
			// ON CONFLICT keeps re-picks of the same post harmless
			err := s.db.Exec(
				`INSERT INTO bookmarks (username, post_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (username, post_id) DO NOTHING`,
				user.Username, post.ID,
			).Error
			if err != nil {
				return fmt.Errorf("seeding bookmarks: %w", err)
			}
			bookmarks++
		}
	}
	log.Printf("Seeded %d bookmark entries", bookmarks)

	return nil
}

func (s *Seeder) randomTags() []string {
	pool := []string{"go", "writing", "travel", "food", "music", "code", "life", "books", "art"}
	n := s.rng.Intn(4)
	if n == 0 {
		return nil
	}
	tags := make([]string, 0, n)
	seen := map[string]bool{}
	for len(tags) < n {
		tag := pool[s.rng.Intn(len(pool))]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
