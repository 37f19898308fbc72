package expression

import (
	"sort"
	"strings"
)

// Label 表示前端头像可以渲染的面部表情。
type Label string

const (
	Default   Label = "default"
	Smile     Label = "smile"
	Sad       Label = "sad"
	Angry     Label = "angry"
	Surprised Label = "surprised"
	FunnyFace Label = "funnyFace"
)

// 前端支持的动作名。
const (
	Idle                = "Idle"
	TalkingOne          = "TalkingOne"
	TalkingTwo          = "TalkingTwo"
	TalkingThree        = "TalkingThree"
	SadIdle             = "SadIdle"
	AngryGesture        = "Angry"
	SurprisedGesture    = "Surprised"
	ThoughtfulHeadShake = "ThoughtfulHeadShake"
)

// Decision 给出表情识别结果以及配套动作。
type Decision struct {
	Expression Label
	Animation  string
	Score      int
}

var keywordBuckets = map[Label][]string{
	FunnyFace: {
		"joke", "funny", "laugh", "lol", "haha", "pun", "silly", "hilarious", "prank", "riddle",
	},
	Smile: {
		"thanks", "thank you", "love", "great", "awesome", "nice", "hello", "hi ", "glad", "happy",
		"wonderful", "cool",
	},
	Sad: {
		"sad", "unhappy", "cry", "depressed", "lonely", "upset", "hurt", "sorry", "lost", "miss",
		"feeling down", "grief",
	},
	Angry: {
		"angry", "furious", "mad", "annoyed", "hate", "rage", "stupid", "unfair", "fed up",
	},
	Surprised: {
		"amazing", "wow", "incredible", "unbelievable", "no way", "really?", "shocking", "whoa",
	},
}

var thinkingCues = []string{
	"explain", "why", "how", "what is", "what are", "describe", "physics", "history", "science",
}

var animationByLabel = map[Label]string{
	Default:   TalkingOne,
	Smile:     TalkingOne,
	Sad:       SadIdle,
	Angry:     AngryGesture,
	Surprised: SurprisedGesture,
	FunnyFace: TalkingThree,
}

// Analyze 根据用户输入推断头像应使用的表情与动作。
func Analyze(message string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(message))
	if normalized == "" {
		return Decision{Expression: Default, Animation: Idle}
	}

	scores := scoreText(normalized, strings.Count(message, "!"))

	best, bestScore := Default, 0
	for _, label := range sortedLabels(scores) {
		if scores[label] > bestScore {
			best, bestScore = label, scores[label]
		}
	}

	if bestScore == 0 {
		if containsAny(normalized, thinkingCues) {
			return Decision{Expression: Default, Animation: ThoughtfulHeadShake}
		}
		return Decision{Expression: Default, Animation: TalkingOne}
	}

	return Decision{Expression: best, Animation: AnimationFor(best), Score: bestScore}
}

// AnimationFor returns the animation paired with a facial expression.
func AnimationFor(label Label) string {
	if animation, ok := animationByLabel[label]; ok {
		return animation
	}
	return TalkingOne
}

func scoreText(normalized string, exclamations int) map[Label]int {
	scores := make(map[Label]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[label] += 3
			}
		}
	}

	// 感叹号偏向惊讶，但不足以压过一个明确关键词。
	if exclamations > 0 {
		scores[Surprised] += exclamations
	}
	return scores
}

// sortedLabels gives map iteration a stable order so ties resolve the same way every call.
func sortedLabels(scores map[Label]int) []Label {
	labels := make([]Label, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
