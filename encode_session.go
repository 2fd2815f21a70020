package pokergame

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeJournal reads a stream of JSONL commands and replays them into a
// Session. The first command must be "open". Replay stops at the first
// command the ledger rejects.
func DecodeJournal(r io.Reader) (Session, error) {
	var s Session
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		cmd, err := decodeCommand(lineBytes)
		if err != nil {
			return Session{}, fmt.Errorf("line %d: %w", line, err)
		}
		if s, err = s.Apply(cmd); err != nil {
			return Session{}, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return Session{}, fmt.Errorf("error reading from input: %w", err)
	}
	if len(s.history) == 0 {
		return Session{}, fmt.Errorf("journal is empty")
	}
	if err := s.CheckInvariants(); err != nil {
		return Session{}, fmt.Errorf("inconsistent journal: %w", err)
	}
	return s, nil
}

// decodeCommand decodes one journal line into its concrete Command.
func decodeCommand(lineBytes []byte) (Command, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(lineBytes, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(lineBytes), err)
	}

	var cmd Command
	var err error
	switch identifier.Command {
	case CmdOpen:
		var c Open
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdAddPlayer:
		var c AddPlayer
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdBuyIn:
		var c BuyIn
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdEditBuyIn:
		var c EditBuyIn
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdDeleteBuyIn:
		var c DeleteBuyIn
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdCashOut:
		var c CashOut
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdClose:
		var c Close
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	case CmdFinalize:
		var c Finalize
		err = json.Unmarshal(lineBytes, &c)
		cmd = c
	default:
		return nil, fmt.Errorf("unknown command: %q", identifier.Command)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid %s command: %w", identifier.Command, err)
	}
	return cmd, nil
}

// EncodeCommand marshals a single command to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeCommand(w io.Writer, cmd Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal %s command: %w", cmd.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s command: %w", cmd.What(), err)
	}
	return nil
}

// EncodeJournal writes every command accepted by s, in order.
func EncodeJournal(w io.Writer, s Session) error {
	for _, cmd := range s.history {
		if err := EncodeCommand(w, cmd); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON writes a snapshot of the session state.
func (s Session) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", s.id)
	w.Append("status", s.status)
	w.Append("currency", s.config.Currency())
	w.Append("rate", s.config.Rate)
	w.Append("standardBuyIn", s.config.StandardBuyIn)
	w.Optional("freezeOnClose", s.config.FreezeOnClose)
	w.Append("tablePoints", s.table)
	w.Append("start", s.start)
	w.Optional("end", s.end)
	w.Append("invested", s.TotalInvested())
	w.Append("cashedOut", s.TotalCashedOut())
	w.Append("unclaimed", s.Unclaimed())
	players := s.players
	if players == nil {
		players = []Player{}
	}
	w.Append("players", players)
	return w.MarshalJSON()
}

// MarshalJSON writes a snapshot of the player position.
func (p Player) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.id)
	w.Append("name", p.name)
	w.Append("status", p.status)
	w.Append("stack", p.stack)
	w.Append("invested", p.Invested())
	w.Append("cashOut", p.cashOut)
	w.Append("net", p.Net())
	if p.hasLeft {
		w.Append("leftOnTable", p.leftOnTable)
	}
	w.Append("buyIns", p.buyIns)
	w.Optional("cashOuts", p.cashOutLog)
	return w.MarshalJSON()
}
