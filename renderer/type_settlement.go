package renderer

import (
	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/KidMaxi/pokergamemanager-sub001/settle"
)

// Settlement is a struct to represent the end of game payments in json.
type Settlement struct {
	// Results is the cash outcome of every player, in joining order.
	Results []pokergame.Result `json:"results"`
	// Transfers are the payments that settle the results.
	Transfers []settle.Transfer `json:"transfers"`
	// Residual is what the transfers could not settle.
	Residual pokergame.Money `json:"residual"`
	// Summary is the plain text version of the transfers.
	Summary string `json:"summary"`
}

// NewSettlement computes the settlement of a completed session.
func NewSettlement(s pokergame.Session) (*Settlement, error) {
	parties, err := settle.FromSession(s)
	if err != nil {
		return nil, err
	}
	st, err := settle.Compute(parties)
	if err != nil {
		return nil, err
	}
	return &Settlement{
		Results:   s.Results(),
		Transfers: st.Transfers,
		Residual:  st.Residual,
		Summary:   st.Summary(),
	}, nil
}
