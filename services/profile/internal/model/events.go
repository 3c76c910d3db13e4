package model

import "time"

const (
	TopicProfileUpdated = "profile.updated"
	TopicLinkClicked    = "link.clicked"
	TopicLinkCreated    = "link.created"
	TopicLinkDeleted    = "link.deleted"
	TopicUserCreated    = "auth.user.created"
)

type LinkClicked struct {
	LinkID     string    `json:"link_id"`
	UserID     string    `json:"user_id"`
	ClickCount int64     `json:"click_count"`
	At         time.Time `json:"at"`
}

type LinkChanged struct {
	LinkID string `json:"link_id"`
	UserID string `json:"user_id"`
}
