package game

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/models"
)

// ParticipantGroup is one nickname's answers in submission order. Groups are
// listed in order of each nickname's first appearance.
type ParticipantGroup struct {
	Nickname string          `json:"nickname"`
	Answers  []models.Answer `json:"answers"`
}

// Report is the read-only projection an external renderer needs to produce a
// full summary of a room, with no further core calls.
type Report struct {
	Name             string             `json:"name"`
	Theme            string             `json:"theme"`
	CreatedAt        time.Time          `json:"created_at"`
	Questions        []models.Question  `json:"questions"`
	Answers          []models.Answer    `json:"answers"`
	Participants     []ParticipantGroup `json:"participants"`
	ParticipantCount int                `json:"participant_count"`
}

func sortByCreation(answers []models.Answer) []models.Answer {
	out := make([]models.Answer, len(answers))
	copy(out, answers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// AnswersByQuestion returns the question's answers in insertion order.
func AnswersByQuestion(answers []models.Answer, questionID uuid.UUID) []models.Answer {
	var out []models.Answer
	for _, a := range sortByCreation(answers) {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}

// AnswersByParticipant groups answers by nickname. Only nicknames that
// actually answered appear; there is no separate roster of who joined.
func AnswersByParticipant(answers []models.Answer) []ParticipantGroup {
	index := make(map[string]int)
	var groups []ParticipantGroup
	for _, a := range sortByCreation(answers) {
		i, ok := index[a.AuthorNickname]
		if !ok {
			i = len(groups)
			index[a.AuthorNickname] = i
			groups = append(groups, ParticipantGroup{Nickname: a.AuthorNickname})
		}
		groups[i].Answers = append(groups[i].Answers, a)
	}
	return groups
}

// UniqueParticipantCount counts distinct nicknames. It undercounts people who
// joined but never submitted and merges people sharing a nickname.
func UniqueParticipantCount(answers []models.Answer) int {
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		seen[a.AuthorNickname] = true
	}
	return len(seen)
}

// BuildReport assembles the export projection for a room.
func BuildReport(room *models.Room) Report {
	questions := make([]models.Question, len(room.Questions))
	copy(questions, room.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderIndex < questions[j].OrderIndex
	})

	return Report{
		Name:             room.Name,
		Theme:            room.Theme,
		CreatedAt:        room.CreatedAt,
		Questions:        questions,
		Answers:          sortByCreation(room.Answers),
		Participants:     AnswersByParticipant(room.Answers),
		ParticipantCount: UniqueParticipantCount(room.Answers),
	}
}
