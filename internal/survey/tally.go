package survey

type TopicSummary struct {
	Topic     TopicRef         `json:"topic"`
	Reactions map[Reaction]int `json:"reactions"`
}

// Tally counts non-empty reactions per topic. Topics are listed in order of first appearance.
func Tally(surveys []Survey) []TopicSummary {
	idx := make(map[string]int)
	res := make([]TopicSummary, 0)

	for _, s := range surveys {
		for _, tf := range s {
			if tf.Reaction == ReactionEmpty {
				continue
			}

			pos, ok := idx[tf.Topic.TopicID]
			if !ok {
				pos = len(res)
				idx[tf.Topic.TopicID] = pos
				res = append(res, TopicSummary{
					Topic:     tf.Topic,
					Reactions: make(map[Reaction]int),
				})
			}

			res[pos].Reactions[tf.Reaction]++
		}
	}

	return res
}
