package game

// DefaultQuestion is a stock prompt offered to hosts composing a room.
type DefaultQuestion struct {
	Text     string `json:"text"`
	IsCustom bool   `json:"is_custom"`
}

func DefaultQuestions() []DefaultQuestion {
	return []DefaultQuestion{
		{Text: "2025년에 가장 자주 했던 생각은?"},
		{Text: "올해 나 자신에 대해 새롭게 알게 된 것은?"},
		{Text: "올해 가장 돈을 많이 쓴 곳은?"},
		{Text: "올해 가장 시간을 많이 쓴 곳은?"},
		{Text: "올해 가장 감정을 쏟은 대상은?"},
		{Text: "올해 습득한 사소한 기술 하나?"},
	}
}
