package handlers

import (
	"fmt"

	"github.com/a-h/templ"

	"lexiquiz/internal/catalog"
	"lexiquiz/internal/quiz"
	"lexiquiz/internal/viewmodel"
	"lexiquiz/views/pages"
)

const (
	appTitle   = "Quiz des langues"
	menuText   = "Retour au menu"
	firstTryNB = "Seules les réponses correctes dès le premier essai ont été comptées."
)

// pageFor picks the page for the session's state.
func pageFor(playID string, snap quiz.Snapshot) templ.Component {
	switch snap.State {
	case quiz.StateLanguageSelected:
		return pages.LanguagePage(buildLanguage(playID, snap))
	case quiz.StateFinished:
		return pages.FinalPage(buildFinal(playID, snap))
	case quiz.StateInQuestion, quiz.StateAwaitingRetry, quiz.StateAdvancing:
		return pages.QuestionPage(buildQuestion(playID, snap))
	default:
		return pages.MenuPage(buildMenu())
	}
}

func buildMenu() viewmodel.Menu {
	langs := catalog.Languages()
	buttons := make([]viewmodel.LanguageButton, 0, len(langs))
	for _, lang := range langs {
		buttons = append(buttons, viewmodel.LanguageButton{
			Code:  lang.String(),
			Label: lang.DisplayName(),
		})
	}
	return viewmodel.Menu{
		Title:     appTitle,
		Heading:   "Choisissez une langue",
		Languages: buttons,
	}
}

func buildLanguage(playID string, snap quiz.Snapshot) viewmodel.LanguagePage {
	return viewmodel.LanguagePage{
		Title:     appTitle,
		PlayID:    playID,
		Prompt:    fmt.Sprintf("Trouvez %d mots en %s", snap.Count, snap.Target.DisplayName()),
		StartText: "Aller",
		MenuText:  menuText,
	}
}

func buildQuestion(playID string, snap quiz.Snapshot) viewmodel.QuestionPage {
	choices := make([]viewmodel.Choice, 0, len(snap.Options))
	for _, opt := range snap.Options {
		choices = append(choices, viewmodel.Choice{
			Language: opt.Language.String(),
			Word:     opt.Word,
		})
	}
	page := viewmodel.QuestionPage{
		Title:        appTitle,
		PlayID:       playID,
		Progress:     fmt.Sprintf("Question %d / %d", snap.Index+1, snap.Count),
		Choices:      choices,
		ConfirmLeave: snap.ConfirmLeave,
		MenuText:     menuText,
	}
	if snap.Entry != nil {
		page.Gloss = snap.Entry.Gloss
		page.ImageSrc = "/" + snap.Entry.ImagePath()
	}
	if snap.Outcome != nil {
		page.Popup = buildPopup(playID, *snap.Outcome, page.ImageSrc)
	}
	return page
}

func buildPopup(playID string, out quiz.Outcome, imageSrc string) *viewmodel.Popup {
	popup := &viewmodel.Popup{
		LanguageName: out.Language.DisplayName(),
		Word:         out.Word,
		ImageSrc:     imageSrc,
		AudioSrc:     "/" + out.Language.AudioPath(out.EntryID),
	}
	if out.Kind == quiz.OutcomeCorrect {
		popup.Correct = true
		popup.Heading = "Correct"
		popup.ActionPath = "/play/" + playID + "/next"
		popup.ActionText = "Prochaine question"
	} else {
		popup.Heading = "Incorrect"
		popup.ActionPath = "/play/" + playID + "/retry"
		popup.ActionText = "Essayer encore"
	}
	return popup
}

func buildFinal(playID string, snap quiz.Snapshot) viewmodel.FinalPage {
	return viewmodel.FinalPage{
		Title:       appTitle,
		PlayID:      playID,
		Heading:     "Félicitations !",
		Message:     "Vous avez terminé le quiz.",
		Score:       fmt.Sprintf("%d / %d", snap.FirstTryCorrect, snap.Count),
		Note:        firstTryNB,
		MenuText:    menuText,
		RestartText: "Rejouer",
	}
}
