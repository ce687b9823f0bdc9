package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService handles posts and their likes and comments
type PostService struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *Notifier
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *Notifier) *PostService {
	return &PostService{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// CreatePost stores a new post authored by authorID
func (s *PostService) CreatePost(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	author, err := ParseID(authorID, "user")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, New(ErrValidation, "content is required")
	}

	post := &models.Post{Author: author, Content: req.Content, Image: req.Image}
	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		return nil, Wrap(ErrInternal, "failed to create post", err)
	}
	return post, nil
}

// ListPosts returns posts newest first
func (s *PostService) ListPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	posts, err := s.postRepository.GetAllPosts(ctx, skip, limit)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to load posts", err)
	}
	return posts, nil
}

// UpdatePost edits a post owned by userID
func (s *PostService) UpdatePost(ctx context.Context, postID, userID string, req *models.UpdatePostRequest) (*models.Post, error) {
	pid, uid, err := parsePostAndUser(postID, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepository.UpdatePost(ctx, pid, uid, req)
	if err != nil {
		return nil, postError(err, "failed to update post")
	}
	return post, nil
}

// DeletePost removes a post owned by userID
func (s *PostService) DeletePost(ctx context.Context, postID, userID string) error {
	pid, uid, err := parsePostAndUser(postID, userID)
	if err != nil {
		return err
	}
	if err := s.postRepository.DeletePost(ctx, pid, uid); err != nil {
		return postError(err, "failed to delete post")
	}
	return nil
}

// ToggleLike likes postID on behalf of userID, or removes the like when it
// already exists. Only a new like notifies the author.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	pid, uid, err := parsePostAndUser(postID, userID)
	if err != nil {
		return nil, err
	}
	actor, err := loadUser(ctx, s.userRepository, uid, "user not found")
	if err != nil {
		return nil, err
	}

	post, err := s.postRepository.ToggleLike(ctx, pid, actor.ID)
	if err != nil {
		return nil, postError(err, "failed to like post")
	}

	result := &models.LikeResult{Post: post, Liked: post.LikedBy(actor.ID)}
	if result.Liked {
		result.Notified = s.notifier.notifyBestEffort(ctx, actor, post.Author, models.NotificationLike, Related{PostID: post.ID})
	}
	return result, nil
}

// AddComment appends a comment by userID to postID and notifies the author
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, New(ErrValidation, "comment text is required")
	}
	pid, uid, err := parsePostAndUser(postID, userID)
	if err != nil {
		return nil, err
	}
	actor, err := loadUser(ctx, s.userRepository, uid, "user not found")
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	post, err := s.postRepository.AddComment(ctx, pid, comment)
	if err != nil {
		return nil, postError(err, "failed to add comment")
	}

	s.notifier.notifyBestEffort(ctx, actor, post.Author, models.NotificationComment, Related{PostID: post.ID})
	return post, nil
}

func parsePostAndUser(postID, userID string) (primitive.ObjectID, primitive.ObjectID, error) {
	pid, err := ParseID(postID, "post")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	uid, err := ParseID(userID, "user")
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return pid, uid, nil
}

func postError(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return New(ErrNotFound, "post not found")
	}
	return Wrap(ErrInternal, message, err)
}
