package domain

import "time"

// Visibility restricts who may read a post.
type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// Valid reports whether v is one of the two known visibility values.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

const (
	// MaxPostContentLen is the maximum post length in characters, after trimming.
	MaxPostContentLen = 280
	// MaxCommentContentLen is the maximum comment length in characters.
	MaxCommentContentLen = 500
	// FeedLimit caps the number of posts returned by a feed query.
	FeedLimit = 100
)

// Comment lives embedded in its parent post and has no lifecycle of its own.
// Only the post's author may delete it, regardless of who wrote it.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	Author    string    `json:"author" bson:"author"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Post is the core aggregate: content, visibility, the like set, and the
// ordered comment list all live on one document.
type Post struct {
	ID         string     `json:"id" bson:"-"`
	Author     string     `json:"author" bson:"author"`
	Content    string     `json:"content" bson:"content"`
	Image      string     `json:"image,omitempty" bson:"image,omitempty"`
	Visibility Visibility `json:"visibility" bson:"visibility"`
	Likes      []string   `json:"likes" bson:"likes"`
	Comments   []Comment  `json:"comments" bson:"comments"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanBeViewedBy applies the visibility gate: public posts are readable by
// anyone, private posts only by their author. Followers get no exception.
func (p *Post) CanBeViewedBy(viewerID string) bool {
	if p.Visibility == VisibilityPublic {
		return true
	}
	return p.Author == viewerID
}

// LikedBy reports whether the given user id is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the index of the comment with the given id, or -1.
func (p *Post) CommentByID(commentID string) int {
	for i, c := range p.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}
