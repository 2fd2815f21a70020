package cmd

import (
	"github.com/KidMaxi/pokergamemanager-sub001/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the pgm commands.
func Completion() *complete.Command {
	players := complete.PredictFunc(predictPlayers)
	noFlags := map[string]complete.Predictor{}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"session": predict.Files("*.jsonl"),
			"v":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"new": {Flags: map[string]complete.Predictor{
				"rate":     predict.Something,
				"buyin":    predict.Something,
				"currency": predict.Set{"USD", "EUR", "GBP", "CAD", "AUD", "CHF"},
				"freeze":   predict.Nothing,
				"force":    predict.Nothing,
			}},
			"close":        {Flags: noFlags},
			"finalize":     {Flags: noFlags, Args: players},
			"check":        {Flags: map[string]complete.Predictor{"w": predict.Nothing}},
			"add":          {Flags: noFlags},
			"buyin":        {Flags: noFlags, Args: players},
			"edit-buyin":   {Flags: noFlags, Args: players},
			"delete-buyin": {Flags: noFlags, Args: players},
			"cashout":      {Flags: noFlags, Args: players},
			"status":       {Flags: map[string]complete.Predictor{"history": predict.Nothing}},
			"settle":       {Flags: map[string]complete.Predictor{"plain": predict.Nothing}},
			"show":         {Flags: map[string]complete.Predictor{"q": predict.Set{"$.players[*].net", "$.players[*].stack", "$.tablePoints", "$.status"}}},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  complete.PredictFunc(predictTopics),
			},
		},
	}
}

// predictPlayers suggests the players of the default session file.
func predictPlayers(prefix string) []string {
	s, err := DecodeSession()
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range s.Players() {
		names = append(names, p.Name())
	}
	return names
}

func predictTopics(prefix string) []string {
	topics, err := docs.AllTopics()
	if err != nil {
		return nil
	}
	return topics
}
