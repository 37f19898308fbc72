package expression

import "testing"

func TestAnalyzeJokeGetsFunnyFace(t *testing.T) {
	decision := Analyze("Tell me a joke")
	if decision.Expression != FunnyFace {
		t.Fatalf("expected funnyFace, got %s", decision.Expression)
	}
	if decision.Animation != TalkingThree {
		t.Fatalf("expected TalkingThree, got %s", decision.Animation)
	}
}

func TestAnalyzeSadUser(t *testing.T) {
	decision := Analyze("I'm feeling sad today")
	if decision.Expression != Sad {
		t.Fatalf("expected sad expression, got %s", decision.Expression)
	}
	if decision.Animation != SadIdle {
		t.Fatalf("expected SadIdle, got %s", decision.Animation)
	}
}

func TestAnalyzeExclamationBoostsSurprise(t *testing.T) {
	decision := Analyze("That's amazing!")
	if decision.Expression != Surprised {
		t.Fatalf("expected surprised expression, got %s", decision.Expression)
	}
	if decision.Score < 4 {
		t.Fatalf("expected exclamation to add to keyword score, got %d", decision.Score)
	}
}

func TestAnalyzeFactualQuestionIsThoughtful(t *testing.T) {
	for _, msg := range []string{"Explain quantum physics", "What is the weather like?"} {
		decision := Analyze(msg)
		if decision.Expression != Default {
			t.Fatalf("%q: expected default expression, got %s", msg, decision.Expression)
		}
		if decision.Animation != ThoughtfulHeadShake {
			t.Fatalf("%q: expected ThoughtfulHeadShake, got %s", msg, decision.Animation)
		}
	}
}

func TestAnalyzeEmptyMessageIsIdle(t *testing.T) {
	decision := Analyze("   ")
	if decision.Expression != Default || decision.Animation != Idle {
		t.Fatalf("unexpected decision for blank input: %+v", decision)
	}
}

func TestAnalyzeIsStable(t *testing.T) {
	first := Analyze("haha that is so sad")
	for i := 0; i < 20; i++ {
		if got := Analyze("haha that is so sad"); got != first {
			t.Fatalf("analysis changed between calls: %+v vs %+v", first, got)
		}
	}
}
