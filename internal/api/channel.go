package api

type CreateChannelRequest struct {
	Name string `json:"name" form:"name"`
	Slug string `json:"slug" form:"slug"`
}
