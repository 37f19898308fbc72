package smoke

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zhouzirui/avatar-smoke/internal/model/avatar"
)

// ErrUnknownSuite is returned by Lookup for names outside SuiteNames.
var ErrUnknownSuite = errors.New("unknown suite")

// AllSuites selects every suite in registration order.
const AllSuites = "all"

const captionMessage = "Hello! This is a test of the live caption system. The avatar should display these words as captions while speaking."

// PersonalityCases are the topic prompts and the expression a human should expect to see.
var PersonalityCases = []avatar.TestCase{
	{Message: "Tell me a joke", ExpectedExpression: "funnyFace or smile"},
	{Message: "Explain quantum physics", ExpectedExpression: "default or thoughtful"},
	{Message: "What is the weather like?", ExpectedExpression: "default"},
	{Message: "That's amazing!", ExpectedExpression: "surprised or smile"},
	{Message: "I'm feeling sad today", ExpectedExpression: "sad"},
}

// Check is one named step of a suite.
type Check struct {
	Name    string
	Outcome Outcome
}

// Summary collects the checks of one suite run.
type Summary struct {
	Suite  string
	Checks []Check
}

func (s *Summary) add(name string, o Outcome) Outcome {
	s.Checks = append(s.Checks, Check{Name: name, Outcome: o})
	return o
}

// Passed counts successful checks.
func (s Summary) Passed() int {
	n := 0
	for _, c := range s.Checks {
		if c.Outcome.OK() {
			n++
		}
	}
	return n
}

// Failed counts unsuccessful checks.
func (s Summary) Failed() int {
	return len(s.Checks) - s.Passed()
}

// AllPassed reports whether every check succeeded.
func (s Summary) AllPassed() bool {
	return s.Failed() == 0
}

// Suite is a fixed, hardcoded sequence of checks.
type Suite struct {
	Name  string
	Title string
	run   func(ctx context.Context, r *Runner, frontendURL string) Summary
}

var suites = []Suite{
	{Name: "personality", Title: "Avatar Personality Test", run: runPersonality},
	{Name: "gemini", Title: "Gemini Avatar Integration Test", run: runGemini},
	{Name: "captions", Title: "Avatar Live Captions Test", run: runCaptions},
}

// SuiteNames lists the selectable suite names.
func SuiteNames() []string {
	names := make([]string, 0, len(suites)+1)
	for _, s := range suites {
		names = append(names, s.Name)
	}
	return append(names, AllSuites)
}

// Lookup resolves a suite name; AllSuites yields every suite.
func Lookup(name string) ([]Suite, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == AllSuites {
		return append([]Suite(nil), suites...), nil
	}
	for _, s := range suites {
		if s.Name == name {
			return []Suite{s}, nil
		}
	}
	return nil, fmt.Errorf("%w %q (choose one of %s)", ErrUnknownSuite, name, strings.Join(SuiteNames(), ", "))
}

// Run executes the suite and returns its summary. It never fails; every problem is
// printed and recorded on the summary.
func (s Suite) Run(ctx context.Context, r *Runner, frontendURL string) Summary {
	return s.run(ctx, r, frontendURL)
}

// RunAll runs the suites in order and prints an aggregate line when more than one ran.
func RunAll(ctx context.Context, r *Runner, selected []Suite, frontendURL string) []Summary {
	summaries := make([]Summary, 0, len(selected))
	for i, s := range selected {
		if i > 0 {
			r.report.Println()
		}
		summaries = append(summaries, s.Run(ctx, r, frontendURL))
	}

	if len(summaries) > 1 {
		printAggregate(r.report, summaries)
	}
	return summaries
}

func runPersonality(ctx context.Context, r *Runner, _ string) Summary {
	rep := r.report
	summary := Summary{Suite: "personality"}

	rep.Header("Avatar Personality Test", 50)
	rep.Header("Testing Avatar Personality and Expressions", 50)

	for i, tc := range PersonalityCases {
		rep.Printf("\n%d. Testing: '%s'\n", i+1, tc.Message)
		rep.Printf("   Expected: %s\n", tc.ExpectedExpression)
		summary.add(tc.Message, r.RunCase(ctx, tc.Request()))
	}

	rep.Printf("\n\n")
	rep.Header("Testing Default Messages", 30)
	// 空消息会让后端返回预置的开场白。
	outcome := summary.add("default messages", r.PostTTS(ctx, avatar.TestCase{}.Request()))
	printDefaultMessages(rep, outcome)

	rep.Println("\n🎉 Test completed! Check the avatar in your browser to see the expressions.")
	return summary
}

func printDefaultMessages(rep *Reporter, o Outcome) {
	switch o.Kind {
	case KindSuccess:
		rep.Printf("   ✅ Default messages received: %d messages\n", len(o.Messages))
		for i, msg := range o.Messages {
			rep.Printf("   Message %d: %s...\n", i+1, Preview(msg.Text, 50))
			rep.Printf("   Expression: %s\n", msg.ExpressionOrUnknown())
		}
	case KindEmptyMessages:
		rep.Println("   ❌ No default messages")
	default:
		rep.Case(o, DefaultStyle)
	}
}

func runGemini(ctx context.Context, r *Runner, _ string) Summary {
	rep := r.report
	summary := Summary{Suite: "gemini"}

	rep.Header("Gemini Avatar Integration Test", 50)

	rep.Println("\nTesting Voices Endpoint...")
	voices := summary.add("voices", r.RunVoicesCheck(ctx))

	rep.Println("Testing Gemini Avatar Integration...")
	outcome := summary.add("avatar", r.PostTTS(ctx, avatar.TTSRequest{Message: "Hello, can you tell me about yourself?"}))
	printGeminiAvatar(rep, outcome)

	if voices.OK() && outcome.OK() {
		rep.Println("\n🎉 All tests passed! Gemini avatar integration is working correctly.")
		return summary
	}

	rep.Println("\n❌ Some tests failed.")
	if !voices.OK() {
		rep.Println("  - Voices endpoint issues detected")
	}
	if !outcome.OK() {
		rep.Println("  - Avatar functionality issues detected")
	}
	return summary
}

func printGeminiAvatar(rep *Reporter, o Outcome) {
	switch o.Kind {
	case KindSuccess:
		first := o.Messages[0]
		rep.Println("  ✓ Avatar response received")
		rep.Printf("  Number of messages: %d\n", len(o.Messages))
		rep.Printf("  First message text: %s...\n", Preview(first.Text, rep.previewLen))
		rep.Printf("  Facial expression: %s\n", first.ExpressionOr("N/A"))
		rep.Printf("  Animation: %s\n", first.AnimationOr("N/A"))
	case KindEmptyMessages:
		rep.Println("  ✓ Avatar response received")
		rep.Println("  Number of messages: 0")
		rep.Println("  ✗ No messages in response")
	case KindHTTPError:
		rep.Printf("  ✗ Failed to get avatar response: %d\n", o.Status)
		rep.Printf("  Response: %s\n", o.Body)
	default:
		rep.Printf("  ✗ Error testing avatar: %v\n", o.Err)
	}
}

func runCaptions(ctx context.Context, r *Runner, frontendURL string) Summary {
	rep := r.report
	summary := Summary{Suite: "captions"}

	rep.Header("Avatar Live Captions Test", 30)
	rep.Header("Testing Avatar Live Captions", 30)

	outcome := summary.add("captions", r.PostTTS(ctx, avatar.TTSRequest{Message: captionMessage}))
	rep.Case(outcome, Style{
		Pass:     "✅",
		Fail:     "❌",
		Full:     true,
		PassNote: "Response received - Captions should appear in the frontend",
	})

	if outcome.OK() {
		rep.Println("\n🎉 Test completed successfully!")
		rep.Printf("Open %s in your browser to see the live captions.\n", frontendURL)
	} else {
		rep.Println("\n❌ Test failed!")
	}
	return summary
}

func printAggregate(rep *Reporter, summaries []Summary) {
	rep.Println()
	rep.Header("Smoke Summary", 50)
	total, failed := 0, 0
	for _, s := range summaries {
		glyph := "✅"
		if !s.AllPassed() {
			glyph = "❌"
		}
		rep.Printf("%s %-12s %d/%d checks passed\n", glyph, s.Suite, s.Passed(), len(s.Checks))
		for _, c := range s.Checks {
			if !c.Outcome.OK() {
				rep.Printf("   - %s: %s\n", c.Name, c.Outcome.Kind)
			}
		}
		total += len(s.Checks)
		failed += s.Failed()
	}
	rep.Printf("%d checks, %d failed\n", total, failed)
}
