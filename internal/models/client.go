package models

type Client struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Email    string `json:"email"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// AccountID is the client whose certificates a portal user sees: the parent account when
// one exists, otherwise the client itself.
func (c *Client) AccountID() int64 {
	if c.ParentID != nil {
		return *c.ParentID
	}
	return c.ID
}
