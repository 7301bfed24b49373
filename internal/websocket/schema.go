package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionState  Action = "state"
	ActionAnswer Action = "answer"
	ActionReset  Action = "reset"
	ActionPing   Action = "ping"
)

// RequestPayload is a client message. Option and Step are only read for
// ActionAnswer.
type RequestPayload struct {
	Action Action `json:"action"`
	Option *int   `json:"option,omitempty"`
	Step   *int   `json:"step,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState Event = "state"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// StateResponse carries the visitor's quiz state after every action.
type StateResponse struct {
	Event Event       `json:"event"`
	Data  interface{} `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
