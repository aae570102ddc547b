package links

type Link struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
	Position    int     `json:"position"`
	Clicks      int     `json:"clicks"` // derived from click_events
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

type CreateInput struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
	Position    *int    `json:"position"`
}

func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.URL == nil && in.Description == nil &&
		in.IsActive == nil && in.Position == nil
}

type ReorderInput struct {
	LinkIDs []string `json:"linkIds"`
}
