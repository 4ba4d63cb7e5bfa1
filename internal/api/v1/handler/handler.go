package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/middleware"
	"ecourse/internal/model"
	"ecourse/internal/service"
)

// viewerID extracts the authenticated caller's id from the request context.
// ok is false for anonymous callers.
func viewerID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(middleware.UserContextKey).(int64)
	return id, ok && id > 0
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

// pathSegments splits the request path after the given prefix, ignoring a
// trailing slash.
func pathSegments(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// commentResponse maps a comment with its joined author, resolving the
// author's avatar storage path to a URL.
func commentResponse(ctx context.Context, media service.MediaService, c *model.Comment) dto.CommentResponseDTO {
	avatarURL, _ := media.URL(ctx, c.User.Avatar)
	return dto.CommentResponseDTO{
		ID:       c.ID,
		Content:  c.Content,
		LessonID: c.LessonID,
		User: dto.CommentAuthorDTO{
			ID:        c.User.ID,
			Username:  c.User.Username,
			FirstName: c.User.FirstName,
			LastName:  c.User.LastName,
			AvatarURL: avatarURL,
		},
		CreatedAt: c.CreatedAt,
	}
}
