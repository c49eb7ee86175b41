package viewmodel

// LanguageButton is one entry of the language menu.
type LanguageButton struct {
	Code  string
	Label string
}

// Menu holds data for the start page.
type Menu struct {
	Title     string
	Heading   string
	Languages []LanguageButton
}

// LanguagePage confirms the chosen language before the quiz starts.
type LanguagePage struct {
	Title     string
	PlayID    string
	Prompt    string
	StartText string
	MenuText  string
}

// Choice is one answer button. Only the word is shown; the language travels
// as a hidden form value.
type Choice struct {
	Language string
	Word     string
}

// Popup is the feedback shown after an answer.
type Popup struct {
	Correct      bool
	Heading      string
	LanguageName string
	Word         string
	ImageSrc     string
	AudioSrc     string
	ActionPath   string
	ActionText   string
}

// QuestionPage holds data for a single question.
type QuestionPage struct {
	Title        string
	PlayID       string
	Progress     string
	Gloss        string
	ImageSrc     string
	Choices      []Choice
	Popup        *Popup
	ConfirmLeave bool
	MenuText     string
}

// FinalPage shows the score once every question is answered.
type FinalPage struct {
	Title       string
	PlayID      string
	Heading     string
	Message     string
	Score       string
	Note        string
	MenuText    string
	RestartText string
}
