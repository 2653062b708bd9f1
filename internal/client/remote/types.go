package remote

// Top-level response states.
const (
	StateCategoriesSynced     = "categories-synced"
	StateCategoriesSyncFailed = "categories-sync-failed"
	StateNotesSynced          = "notes-synced"
	StateNotesSyncFailed      = "notes-sync-failed"

	// MessageCategoriesFetched is the success message of GET /categories.
	MessageCategoriesFetched = "categories-fetched"
)

// CategoryPush is one local category row in a sync batch.
type CategoryPush struct {
	ClientID   int64  `json:"client_id"`
	RemoteID   *int64 `json:"remote_id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	IsDeleted  int    `json:"is_deleted"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// CategorySyncRequest is the body of POST /categories/sync.
type CategorySyncRequest struct {
	Categories []CategoryPush `json:"categories"`
}

// CategoryOutcome is the per-row verdict for one pushed category. Which
// fields are populated depends on State; remote-is-newer carries the remote's
// authoritative copy.
type CategoryOutcome struct {
	State        string `json:"state"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ClientID     int64  `json:"client_id"`
	RemoteID     *int64 `json:"remote_id,omitempty"`
	Name         string `json:"name,omitempty"`
	OrderIndex   int    `json:"order_index,omitempty"`
	IsDeleted    int    `json:"is_deleted,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// CategorySyncResponse is the body of the POST /categories/sync response.
type CategorySyncResponse struct {
	State        string            `json:"state"`
	Categories   []CategoryOutcome `json:"categories"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// RemoteCategory is one category as returned by GET /categories.
type RemoteCategory struct {
	RemoteID   int64  `json:"remote_id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
}

// CategoriesResponse is the body of the GET /categories response.
type CategoriesResponse struct {
	Message    string           `json:"message"`
	Categories []RemoteCategory `json:"categories"`
}

// NotePush is one local note row in a sync batch. CategoryID carries the
// category's REMOTE id (translated before transmission); nil means
// uncategorized or a category that has no remote id yet.
type NotePush struct {
	ClientID   int64  `json:"client_id"`
	RemoteID   *int64 `json:"remote_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id"`
	IsDeleted  int    `json:"is_deleted"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// NoteSyncRequest is the body of POST /notes/sync.
type NoteSyncRequest struct {
	Notes []NotePush `json:"notes"`
}

// NoteOutcome is the per-row verdict for one pushed note. CategoryID, when
// present, is a remote category id.
type NoteOutcome struct {
	State        string `json:"state"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	ClientID     int64  `json:"client_id"`
	RemoteID     *int64 `json:"remote_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Content      string `json:"content,omitempty"`
	CategoryID   *int64 `json:"category_id,omitempty"`
	IsDeleted    int    `json:"is_deleted,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// NoteSyncResponse is the body of the POST /notes/sync response.
type NoteSyncResponse struct {
	State        string        `json:"state"`
	Notes        []NoteOutcome `json:"notes"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
}

// RemoteNote is one note as returned by GET /notes. Category metadata is
// embedded so an unknown category can be materialized locally without an
// extra round trip.
type RemoteNote struct {
	RemoteID                 int64  `json:"remote_id"`
	Title                    string `json:"title"`
	Content                  string `json:"content"`
	IsDeleted                int    `json:"is_deleted"`
	CreatedAt                string `json:"created_at"`
	UpdatedAt                string `json:"updated_at"`
	RemoteCategoryID         *int64 `json:"remote_category_id,omitempty"`
	RemoteCategoryName       string `json:"remote_category_name,omitempty"`
	RemoteCategoryOrderIndex *int   `json:"remote_category_order_index,omitempty"`
}

// NotesResponse is the body of the GET /notes response.
type NotesResponse struct {
	Notes []RemoteNote `json:"notes"`
}
