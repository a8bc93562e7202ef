package survey

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	topicSeparator = "|"
	reactionConcat = ":"
)

var (
	ErrTopicNotFound        = errors.New("topic not found")
	ErrUnrecognizedReaction = errors.New("reaction not recognized")
	ErrInvalidToken         = errors.New("invalid survey token")
)

type TopicStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]Topic, error)
}

// Encode packs the survey into the "<topic_id>:<reaction>|..." form.
// There is no escaping: use Validate before storing user provided data.
func Encode(s Survey) string {
	if len(s) == 0 {
		return ""
	}

	parts := make([]string, 0, len(s))
	for _, tf := range s {
		parts = append(parts, tf.Topic.TopicID+reactionConcat+string(tf.Reaction))
	}

	return strings.Join(parts, topicSeparator)
}

// Validate checks that the survey could be encoded without corrupting the format
func Validate(s Survey) error {
	for idx, tf := range s {
		id := tf.Topic.TopicID
		if id == "" || strings.ContainsAny(id, topicSeparator+reactionConcat) {
			return fmt.Errorf("%w: topic id #%d: %q", ErrInvalidToken, idx, id)
		}

		if !tf.Reaction.Valid() {
			return fmt.Errorf("%w: %q", ErrUnrecognizedReaction, tf.Reaction)
		}
	}

	return nil
}

type Codec struct {
	topics TopicStore
}

func NewCodec(ts TopicStore) *Codec {
	return &Codec{
		topics: ts,
	}
}

type entry struct {
	raw      string
	topicID  string
	reaction string
}

// Decode parses the encoded survey. Topics are resolved with a single lookup,
// the first invalid entry aborts decoding.
func (c *Codec) Decode(ctx context.Context, encoded string) (Survey, error) {
	if encoded == "" {
		return Survey{}, nil
	}

	entries := parseEntries(encoded)

	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.topicID]; ok {
			continue
		}

		seen[e.topicID] = struct{}{}
		ids = append(ids, e.topicID)
	}

	list, err := c.topics.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find topics: %w", err)
	}

	topics := make(map[string]Topic, len(list))
	for _, t := range list {
		topics[t.TopicID] = t
	}

	res := make(Survey, 0, len(entries))
	for _, e := range entries {
		topic, ok := topics[e.topicID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTopicNotFound, e.raw)
		}

		reaction := Reaction(e.reaction)
		if !reaction.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedReaction, e.reaction)
		}

		res = append(res, TopicFeedback{
			Topic:    topic.Ref(),
			Reaction: reaction,
		})
	}

	return res, nil
}

// parseEntries splits the encoded survey into entries. An entry without the
// reaction separator has an empty topic id and is rejected later on lookup.
func parseEntries(encoded string) []entry {
	parts := strings.Split(encoded, topicSeparator)

	list := make([]entry, 0, len(parts))
	for _, part := range parts {
		topicID, reaction, found := strings.Cut(part, reactionConcat)
		if !found {
			topicID, reaction = "", part
		}

		list = append(list, entry{
			raw:      part,
			topicID:  topicID,
			reaction: reaction,
		})
	}

	return list
}
