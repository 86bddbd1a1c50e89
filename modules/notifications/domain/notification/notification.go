package notification

import "context"

type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"created_at"`
}

// UnreadChanged is published whenever a poll sees a different unread count.
type UnreadChanged struct {
	Count    int
	Previous int
}

type Repository interface {
	List(ctx context.Context, page, pageSize int) (items []Notification, total int, err error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}
