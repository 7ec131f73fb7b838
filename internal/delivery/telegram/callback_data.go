package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer = "answer"
	actionQuiz   = "quiz"
	actionNext   = "next"
)

// Quiz sub-actions.
const (
	quizStart = "start"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// gameTagLen is how much of the session ID answer callbacks carry.
const gameTagLen = 8

// gameTag identifies a game in callback data. Question indexes restart in
// every game, so buttons of an older game are told apart by the tag.
func gameTag(sessionID string) string {
	if len(sessionID) > gameTagLen {
		return sessionID[:gameTagLen]
	}
	return sessionID
}

// buildAnswerCallback builds callback data for picking an option of a question.
func buildAnswerCallback(sessionID string, questionIndex, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			gameTag(sessionID),
			strconv.Itoa(questionIndex),
			strconv.Itoa(optionIndex),
		},
	}.encode()
}

// parseAnswerCallback extracts the game tag and the question and option indexes.
func parseAnswerCallback(cd callbackData) (tag string, questionIndex, optionIndex int, ok bool) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 || cd.Params[0] == "" {
		return "", 0, 0, false
	}

	q, err1 := strconv.Atoi(cd.Params[1])
	o, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || q < 0 || o < 0 {
		return "", 0, 0, false
	}
	return cd.Params[0], q, o, true
}

// buildQuizStartCallback builds callback data for starting a game of total questions.
func buildQuizStartCallback(total int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart, strconv.Itoa(total)},
	}.encode()
}

// buildNextCallback builds callback data for retrying the next question fetch.
func buildNextCallback() string {
	return actionNext
}
