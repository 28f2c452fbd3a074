package game

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

func fixedAnswers() (q1, q2 uuid.UUID, answers []models.Answer) {
	q1, q2 = uuid.New(), uuid.New()
	base := time.Date(2025, 12, 24, 20, 0, 0, 0, time.UTC)
	answers = []models.Answer{
		{ID: uuid.New(), QuestionID: q1, AuthorNickname: "Alice", Text: "x", CreatedAt: base},
		{ID: uuid.New(), QuestionID: q2, AuthorNickname: "Bob", Text: "y", CreatedAt: base.Add(time.Second)},
		{ID: uuid.New(), QuestionID: q1, AuthorNickname: "Bob", Text: "z", CreatedAt: base.Add(2 * time.Second)},
	}
	return
}

func TestAnswersByParticipantGrouping(t *testing.T) {
	_, _, answers := fixedAnswers()

	groups := AnswersByParticipant(answers)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Nickname != "Alice" || groups[1].Nickname != "Bob" {
		t.Fatalf("group order %q,%q; want first-appearance order Alice,Bob", groups[0].Nickname, groups[1].Nickname)
	}
	if len(groups[0].Answers) != 1 || groups[0].Answers[0].Text != "x" {
		t.Errorf("Alice group wrong: %+v", groups[0].Answers)
	}
	if len(groups[1].Answers) != 2 || groups[1].Answers[0].Text != "y" || groups[1].Answers[1].Text != "z" {
		t.Errorf("Bob group must keep insertion order y,z: %+v", groups[1].Answers)
	}
}

func TestGroupingIsDeterministic(t *testing.T) {
	_, _, answers := fixedAnswers()
	first := AnswersByParticipant(answers)
	for i := 0; i < 50; i++ {
		again := AnswersByParticipant(answers)
		if len(again) != len(first) {
			t.Fatalf("group count changed between calls")
		}
		for j := range again {
			if again[j].Nickname != first[j].Nickname || len(again[j].Answers) != len(first[j].Answers) {
				t.Fatalf("grouping differs on call %d", i)
			}
		}
	}
}

func TestUniqueParticipantCount(t *testing.T) {
	_, _, answers := fixedAnswers()
	if got := UniqueParticipantCount(answers); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := UniqueParticipantCount(nil); got != 0 {
		t.Fatalf("empty set: got %d, want 0", got)
	}
}

func TestAnswersByQuestionOrdering(t *testing.T) {
	q1, q2, answers := fixedAnswers()

	forQ1 := AnswersByQuestion(answers, q1)
	if len(forQ1) != 2 || forQ1[0].Text != "x" || forQ1[1].Text != "z" {
		t.Fatalf("q1 answers wrong: %+v", forQ1)
	}
	if got := AnswersByQuestion(answers, q2); len(got) != 1 || got[0].Text != "y" {
		t.Fatalf("q2 answers wrong: %+v", got)
	}
	if got := AnswersByQuestion(answers, uuid.New()); len(got) != 0 {
		t.Fatalf("unknown question must yield empty, got %+v", got)
	}
	// Pure: input order untouched.
	if answers[0].Text != "x" || answers[2].Text != "z" {
		t.Errorf("AnswersByQuestion mutated its input")
	}
}

func TestBuildReport(t *testing.T) {
	_, _, answers := fixedAnswers()
	room := &models.Room{
		ID:        uuid.New(),
		Name:      "office party",
		Theme:     models.ThemeHorse,
		CreatedAt: time.Now(),
		Questions: []models.Question{
			{ID: uuid.New(), Text: "second", OrderIndex: 1},
			{ID: uuid.New(), Text: "first", OrderIndex: 0},
		},
		Answers: answers,
	}

	report := BuildReport(room)
	if report.Name != "office party" || report.Theme != models.ThemeHorse {
		t.Errorf("metadata not carried: %+v", report)
	}
	if report.Questions[0].Text != "first" || report.Questions[1].Text != "second" {
		t.Errorf("questions not in order_index order: %+v", report.Questions)
	}
	if report.ParticipantCount != 2 || len(report.Participants) != 2 {
		t.Errorf("participant projection wrong: count=%d groups=%d", report.ParticipantCount, len(report.Participants))
	}
	if len(report.Answers) != 3 || report.Answers[0].Text != "x" {
		t.Errorf("answers not in insertion order: %+v", report.Answers)
	}
}
