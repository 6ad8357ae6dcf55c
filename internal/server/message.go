package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/potodds"
)

// MessageType names a websocket message.
type MessageType string

const (
	// Client to server
	MessageTypeAdvise MessageType = "advise"
	MessageTypeEquity MessageType = "equity"
	MessageTypeOuts   MessageType = "outs"
	MessageTypeOdds   MessageType = "odds"

	// Server to client
	MessageTypeRecommendation MessageType = "recommendation"
	MessageTypeEquityResult   MessageType = "equity"
	MessageTypeOutsResult     MessageType = "outs"
	MessageTypeOddsResult     MessageType = "odds"
	MessageTypeError          MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried in ErrorData.
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnknownProfile = "unknown_profile"
	ErrCodeInternal       = "internal_error"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// AdviseData asks for a recommendation. Profile names a preset or a
// configured profile; Opponent overrides it with explicit statistics.
type AdviseData struct {
	State    advisor.GameState `json:"state"`
	Profile  string            `json:"profile,omitempty"`
	Opponent *game.Profile     `json:"opponent,omitempty"`
}

// EquityData asks for a simulation. Ranges, when given, holds one range
// notation per opponent and overrides Opponents.
type EquityData struct {
	Hero       []string `json:"hero"`
	Board      []string `json:"board,omitempty"`
	Opponents  int      `json:"opponents,omitempty"`
	Ranges     []string `json:"ranges,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
}

type OutsData struct {
	Hero  []string `json:"hero"`
	Board []string `json:"board"`
}

type OddsData struct {
	Pot    float64  `json:"pot"`
	Call   float64  `json:"call"`
	Equity *float64 `json:"equity,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecommendationData = advisor.Recommendation

type EquityResultData struct {
	Win        float64 `json:"win"`
	Tie        float64 `json:"tie"`
	Loss       float64 `json:"loss"`
	Equity     float64 `json:"equity"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Iterations int     `json:"iterations"`
}

func newEquityResult(r equity.Result) EquityResultData {
	lo, hi := r.ConfidenceInterval()
	return EquityResultData{
		Win:        r.WinRate(),
		Tie:        r.TieRate(),
		Loss:       r.LossRate(),
		Equity:     r.Equity(),
		Lower:      lo,
		Upper:      hi,
		Iterations: r.IterationsRun,
	}
}

// OutsResultData reports outs and, while cards remain, the chance of
// hitting one.
type OutsResultData struct {
	Count        int                 `json:"count"`
	Cards        []string            `json:"cards"`
	Current      string              `json:"current"`
	Unseen       int                 `json:"unseen"`
	Improvements map[string]int      `json:"improvements"`
	Hit          *potodds.OutsEquity `json:"hit,omitempty"`
}

type OddsResultData = potodds.Result
