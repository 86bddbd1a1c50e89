package absencerequest

import "context"

type Repository interface {
	List(ctx context.Context) ([]Request, error)
	Get(ctx context.Context, id int64) (Request, error)
	// Act posts one approval action and returns the server's message, if any.
	Act(ctx context.Context, id int64, cmd Command) (string, error)
	Workflow(ctx context.Context, id int64) (Workflow, error)
	History(ctx context.Context, id int64) ([]HistoryEntry, error)
}
