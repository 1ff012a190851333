package errors

import (
	"sync"
	"time"
)

// TUIHandler handles errors by storing them for display in the TUI.
type TUIHandler struct {
	mu      sync.RWMutex
	latest  Message
	has     bool
	onError func(msg Message)
	now     func() time.Time
}

type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// String returns the status line prefix for the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "ok"
	default:
		return "unknown"
	}
}

func NewTUIHandler(onError func(msg Message)) *TUIHandler {
	return &TUIHandler{
		onError: onError,
		now:     time.Now,
	}
}

func (h *TUIHandler) Error(msg string) {
	h.addMessage(msg, MessageTypeError)
}

func (h *TUIHandler) Warning(msg string) {
	h.addMessage(msg, MessageTypeWarning)
}

func (h *TUIHandler) Info(msg string) {
	h.addMessage(msg, MessageTypeInfo)
}

func (h *TUIHandler) Success(msg string) {
	h.addMessage(msg, MessageTypeSuccess)
}

func (h *TUIHandler) addMessage(msg string, msgType MessageType) {
	h.mu.Lock()
	message := Message{
		Text:      msg,
		Type:      msgType,
		Timestamp: h.now(),
	}
	h.latest = message
	h.has = true
	onError := h.onError
	h.mu.Unlock()

	if onError != nil {
		onError(message)
	}
}

// GetLatest returns the most recent message, if any.
func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.has
}

// ClearIfOlder drops the latest message unless a newer one replaced it after
// the given timestamp. It returns true when a message was cleared.
func (h *TUIHandler) ClearIfOlder(at time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.has || h.latest.Timestamp.After(at) {
		return false
	}
	h.latest = Message{}
	h.has = false
	return true
}

func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = Message{}
	h.has = false
}
