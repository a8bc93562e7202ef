package survey

import (
	"time"
)

// Reaction tokens are persisted as is and must not be renamed without a data migration
type Reaction string

const (
	ReactionEmpty       Reaction = "empty"
	ReactionHappy       Reaction = "happy"
	ReactionIndifferent Reaction = "indifferent"
	ReactionAngry       Reaction = "angry"
)

func (r Reaction) Valid() bool {
	switch r {
	case ReactionEmpty, ReactionHappy, ReactionIndifferent, ReactionAngry:
		return true
	default:
		return false
	}
}

type Topic struct {
	TopicID   string `gorm:"primarykey"`
	Label     string
	CreatedAt time.Time
}

func (Topic) TableName() string {
	return "survey_topics"
}

func (t Topic) Ref() TopicRef {
	return TopicRef{
		TopicID: t.TopicID,
		Label:   t.Label,
	}
}

type TopicRef struct {
	TopicID string `json:"topic_id"`
	Label   string `json:"label"`
}

type TopicFeedback struct {
	Topic    TopicRef `json:"topic"`
	Reaction Reaction `json:"reaction"`
}

// Survey is an ordered list of feedback collected alongside a vote
type Survey []TopicFeedback
