// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Exchange is one user-utterance/assistant-response pair. History order is
// the order of appends; Timestamp is informational only.
type Exchange struct {
	ID            string    `json:"id" yaml:"id"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
	UserText      string    `json:"user" yaml:"user"`
	AssistantText string    `json:"assistant" yaml:"assistant"`

	// SkillExecuted names the skill that produced AssistantText, if any.
	SkillExecuted string `json:"skill_executed,omitempty" yaml:"skill_executed,omitempty"`
}

// CommunicationStyle is the user's preferred response length.
type CommunicationStyle string

const (
	StyleConcise  CommunicationStyle = "concise"
	StyleDetailed CommunicationStyle = "detailed"
	StyleBalanced CommunicationStyle = "balanced"
)

// MaxInterests bounds UserProfile.Interests and TopicProfile.Interests.
const MaxInterests = 5

// TopicProfile is derived from a slice of history and never persisted.
type TopicProfile struct {
	// RecentTopics are topic labels ordered by frequency, ties broken by
	// most recent occurrence.
	RecentTopics []string `json:"recent_topics" yaml:"recent_topics"`

	CommunicationStyle CommunicationStyle `json:"communication_style" yaml:"communication_style"`

	// Interests holds at most MaxInterests labels.
	Interests []string `json:"interests" yaml:"interests"`
}

// TopTopic returns the highest-ranked topic, or "" when none was detected.
func (p TopicProfile) TopTopic() string {
	if len(p.RecentTopics) == 0 {
		return ""
	}
	return p.RecentTopics[0]
}

// UserProfile is the persisted, incrementally merged preference record.
type UserProfile struct {
	CommunicationStyle CommunicationStyle `json:"communication_style" yaml:"communication_style"`
	Interests          []string           `json:"interests" yaml:"interests"`

	// Exchanges counts the exchanges folded into this profile.
	Exchanges int `json:"exchanges" yaml:"exchanges"`

	// Summary is a human-readable rendering of the fields above, injected
	// into the chat system prompt.
	Summary string `json:"summary" yaml:"summary"`

	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}
