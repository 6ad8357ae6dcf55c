package server

import (
	"context"
	"encoding/json"
	"errors"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/potodds"
	"github.com/lox/pokeradvisor/ranges"
)

type connectionConfig struct {
	advisor     *advisor.Advisor
	calc        *equity.Calculator
	rng         *rand.Rand
	iterations  int
	profiles    ProfileLookup
	validator   *Validator
	clock       quartz.Clock
	idleTimeout time.Duration
}

// Connection represents a WebSocket connection to a client. Requests on
// one connection are handled in order, so its advisor and RNG are never
// shared.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	cfg       connectionConfig

	idleMu sync.Mutex
	idle   *quartz.Timer
}

// NewConnection creates a new connection wrapper. The idle timer starts
// immediately.
func NewConnection(conn *websocket.Conn, logger *log.Logger, cfg connectionConfig) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	if cfg.idleTimeout > 0 {
		c.idleMu.Lock()
		c.idle = cfg.clock.AfterFunc(cfg.idleTimeout, c.closeIdle, "idle")
		c.idleMu.Unlock()
	}
	return c
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.stopIdle()
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) touch() {
	c.idleMu.Lock()
	defer c.idleMu.Unlock()
	if c.idle != nil {
		c.idle.Reset(c.cfg.idleTimeout, "idle")
	}
}

func (c *Connection) closeIdle() {
	c.idleMu.Lock()
	c.idle = nil
	c.idleMu.Unlock()
	c.logger.Info("Closing idle connection", "timeout", c.cfg.idleTimeout)
	_ = c.Close()
}

func (c *Connection) stopIdle() {
	c.idleMu.Lock()
	defer c.idleMu.Unlock()
	if c.idle != nil {
		c.idle.Stop()
		c.idle = nil
	}
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// send was closed underneath us during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Largest simulation a client may request.
	maxIterations = 200_000
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.touch()

		if c.cfg.validator != nil {
			if err := c.cfg.validator.ValidateRequest(raw); err != nil {
				c.sendError("", ErrCodeInvalidMessage, err.Error())
				continue
			}
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("", ErrCodeInvalidMessage, "Failed to parse message")
			continue
		}
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	var (
		respType MessageType
		resp     any
		err      error
	)
	switch msg.Type {
	case MessageTypeAdvise:
		var data AdviseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse advise data")
			return
		}
		respType = MessageTypeRecommendation
		resp, err = c.handleAdvise(data)

	case MessageTypeEquity:
		var data EquityData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse equity data")
			return
		}
		respType = MessageTypeEquityResult
		resp, err = c.handleEquity(data)

	case MessageTypeOuts:
		var data OutsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse outs data")
			return
		}
		respType = MessageTypeOutsResult
		resp, err = c.handleOuts(data)

	case MessageTypeOdds:
		var data OddsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "Failed to parse odds data")
			return
		}
		respType = MessageTypeOddsResult
		resp, err = potodds.Analyze(data.Pot, data.Call, data.Equity)

	default:
		c.sendError(msg.RequestID, ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
		return
	}

	if err != nil {
		c.sendError(msg.RequestID, errorCode(err), err.Error())
		return
	}
	c.reply(msg.RequestID, respType, resp)
}

var errUnknownProfile = errors.New("unknown profile")

func errorCode(err error) string {
	switch {
	case errors.Is(err, errUnknownProfile):
		return ErrCodeUnknownProfile
	case errors.Is(err, poker.ErrInvalidCard),
		errors.Is(err, poker.ErrInvalidHandShape),
		errors.Is(err, poker.ErrInvalidCardSet),
		errors.Is(err, ranges.ErrInvalidNotation),
		errors.Is(err, equity.ErrInvalidIterations),
		errors.Is(err, equity.ErrInvalidOpponents),
		errors.Is(err, potodds.ErrCardsToCome),
		errors.Is(err, potodds.ErrNegativeAmount),
		errors.Is(err, game.ErrUnknownPosition):
		return ErrCodeInvalidRequest
	default:
		return ErrCodeInternal
	}
}

func (c *Connection) handleAdvise(data AdviseData) (advisor.Recommendation, error) {
	profile := data.Opponent
	if profile == nil && data.Profile != "" {
		p, err := c.cfg.profiles(data.Profile)
		if err != nil {
			return advisor.Recommendation{}, errors.Join(errUnknownProfile, err)
		}
		profile = &p
	}
	return c.cfg.advisor.Recommend(c.ctx, data.State, profile)
}

func (c *Connection) handleEquity(data EquityData) (EquityResultData, error) {
	hero, err := poker.ParseCardList(data.Hero)
	if err != nil {
		return EquityResultData{}, err
	}
	board, err := poker.ParseCardList(data.Board)
	if err != nil {
		return EquityResultData{}, err
	}
	iterations := data.Iterations
	if iterations == 0 {
		iterations = c.cfg.iterations
	}
	iterations = min(iterations, maxIterations)

	var res equity.Result
	if len(data.Ranges) > 0 {
		rs := make([]ranges.Range, len(data.Ranges))
		for i, notation := range data.Ranges {
			if rs[i], err = ranges.Parse(notation); err != nil {
				return EquityResultData{}, err
			}
		}
		res, err = ranges.EquityVsRanges(c.ctx, c.cfg.calc, hero, board, rs, iterations, c.cfg.rng)
	} else {
		res, err = c.cfg.calc.Simulate(c.ctx, equity.Request{
			Hero:       hero,
			Board:      board,
			Opponents:  equity.Uniform(max(1, data.Opponents)),
			Iterations: iterations,
		}, c.cfg.rng)
	}
	if err != nil {
		return EquityResultData{}, err
	}
	return newEquityResult(res), nil
}

func (c *Connection) handleOuts(data OutsData) (OutsResultData, error) {
	hero, err := poker.ParseCardList(data.Hero)
	if err != nil {
		return OutsResultData{}, err
	}
	board, err := poker.ParseCardList(data.Board)
	if err != nil {
		return OutsResultData{}, err
	}
	outs, err := c.cfg.calc.EnumerateOuts(hero, board)
	if err != nil {
		return OutsResultData{}, err
	}
	res := OutsResultData{
		Count:        outs.Count,
		Cards:        outs.CardStrings(),
		Current:      outs.CurrentRank.Name(),
		Unseen:       outs.Unseen,
		Improvements: outs.Improvements,
	}
	if toCome := 5 - len(board); toCome > 0 {
		hit, err := potodds.OutsToEquity(outs.Count, toCome)
		if err != nil {
			return OutsResultData{}, err
		}
		res.Hit = &hit
	}
	return res, nil
}

func (c *Connection) reply(requestID string, t MessageType, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", t, "error", err)
		c.sendError(requestID, ErrCodeInternal, "Failed to encode response")
		return
	}
	msg.RequestID = requestID
	_ = c.SendMessage(msg)
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = requestID

	_ = c.SendMessage(errorMsg)
}
