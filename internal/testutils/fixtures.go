package testutils

import (
	"fmt"
	"time"

	"caiary/internal/model/article"
	"caiary/internal/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := uuid.New().String()

	testUser := &user.User{
		Username: fmt.Sprintf("test_user_%s", uniqueID),
		Email:    fmt.Sprintf("test_%s@example.com", uniqueID),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithProfileImage sets the avatar url
func WithProfileImage(url string) UserOption {
	return func(u *user.User) {
		u.ProfileImageURL = &url
	}
}

// CreateTestArticle creates an article owned by ownerID
func CreateTestArticle(db *gorm.DB, ownerID uint, opts ...ArticleOption) *article.Article {
	testArticle := &article.Article{
		UserID:   ownerID,
		Emotion:  "happy",
		Location: "home",
		Menu:     "kimchi stew",
		Weather:  "sunny",
		Song:     "test song",
		Point:    3,
		Content:  "test content " + uuid.New().String(),
		Created:  time.Now().UTC(),
	}

	for _, opt := range opts {
		opt(testArticle)
	}

	if err := db.Create(testArticle).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	return testArticle
}

// ArticleOption configures test article
type ArticleOption func(*article.Article)

// WithCreated sets the creation timestamp (stored as UTC)
func WithCreated(t time.Time) ArticleOption {
	return func(a *article.Article) {
		a.Created = t.UTC()
	}
}

// WithContent sets the content
func WithContent(content string) ArticleOption {
	return func(a *article.Article) {
		a.Content = content
	}
}

// WithImage sets the stored image key
func WithImage(key string) ArticleOption {
	return func(a *article.Article) {
		a.Image = &key
	}
}

// Follow inserts a follow edge follower -> followee
func Follow(db *gorm.DB, followerID, followeeID uint) {
	edge := &user.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := db.Create(edge).Error; err != nil {
		panic(fmt.Sprintf("Failed to create follow edge: %v", err))
	}
}

// Like inserts a like edge
func Like(db *gorm.DB, userID, articleID uint) {
	edge := &article.Like{UserID: userID, ArticleID: articleID}
	if err := db.Create(edge).Error; err != nil {
		panic(fmt.Sprintf("Failed to create like edge: %v", err))
	}
}
