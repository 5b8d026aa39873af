package shared

// Asynq task type names.
const (
	TypeContentSync = "content:sync"
	TypeSitemapWarm = "sitemap:warm"
)

// Asynq queue names.
const (
	QueueDefault = "default"
	QueueContent = "content"
)
