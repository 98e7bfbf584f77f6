package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/message/html"
	"github.com/gotd/td/tg"
)

const (
	startReply = "Hi! Send me a message describing an event " +
		"(e.g., 'Team meeting tomorrow at 2 PM for 1 hour'), " +
		"and I'll turn it into a Google Calendar link."

	helpReply = "I use AI to understand your event description and create calendar events!\n\n" +
		"Try sending messages like:\n" +
		"- 'Coffee with Sarah next Tuesday at 10:30 AM for 45 minutes'\n" +
		"- 'Project deadline on Dec 1st 5pm at the main office'\n" +
		"- 'Gym session tomorrow from 6pm to 7pm'\n\n" +
		"I'll extract the title, start/end times, and location. " +
		"If no end time or duration is found, I'll assume a 1-hour event."
)

// Pipeline turns an inbound message into the reply to send. It never fails;
// failures are mapped to user-facing replies inside.
type Pipeline interface {
	HandleText(ctx context.Context, chatID int64, text string) string
}

// Handler processes incoming Telegram updates (direct messages only)
type Handler struct {
	pipeline Pipeline
	mu       sync.RWMutex
	sender   *message.Sender
	users    map[int64]*tg.User // cache of user info from update entities
}

// NewHandler creates a new Telegram update handler
func NewHandler(pipeline Pipeline) *Handler {
	return &Handler{
		pipeline: pipeline,
		users:    make(map[int64]*tg.User),
	}
}

// Bind attaches the message sender once the connection is up
func (h *Handler) Bind(sender *message.Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sender = sender
}

// HandleUpdate processes a Telegram update
func (h *Handler) HandleUpdate(ctx context.Context, update tg.UpdatesClass) {
	switch u := update.(type) {
	case *tg.Updates:
		h.cacheUsers(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(ctx, upd)
		}
	case *tg.UpdatesCombined:
		h.cacheUsers(u.Users)
		for _, upd := range u.Updates {
			h.handleSingleUpdate(ctx, upd)
		}
	case *tg.UpdateShort:
		h.handleSingleUpdate(ctx, u.Update)
	case *tg.UpdateShortMessage:
		h.handleShortMessage(ctx, u)
	}
}

// cacheUsers caches user entities for peer resolution
func (h *Handler) cacheUsers(users []tg.UserClass) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			h.users[user.ID] = user
		}
	}
}

func (h *Handler) handleSingleUpdate(ctx context.Context, update tg.UpdateClass) {
	if msg, ok := update.(*tg.UpdateNewMessage); ok {
		h.handleNewMessage(ctx, msg.Message)
	}
}

// handleNewMessage processes a new direct message
func (h *Handler) handleNewMessage(ctx context.Context, msg tg.MessageClass) {
	m, ok := msg.(*tg.Message)
	if !ok || m.Out || m.Message == "" {
		return
	}

	// Only direct messages from users; groups/channels are ignored
	peer, ok := m.PeerID.(*tg.PeerUser)
	if !ok {
		return
	}

	h.dispatch(ctx, peer.UserID, m.Message)
}

// handleShortMessage processes the compact direct-message update form
func (h *Handler) handleShortMessage(ctx context.Context, u *tg.UpdateShortMessage) {
	if u.Out || u.Message == "" {
		return
	}
	h.dispatch(ctx, u.UserID, u.Message)
}

// dispatch routes a message: bot commands get fixed replies, everything
// else goes through the extraction pipeline.
func (h *Handler) dispatch(ctx context.Context, userID int64, text string) {
	peer := h.inputPeer(userID)

	switch command(text) {
	case "/start":
		h.reply(ctx, peer, startReply)
		return
	case "/help":
		h.reply(ctx, peer, helpReply)
		return
	}
	if strings.HasPrefix(text, "/") {
		// Unknown command, stay silent
		return
	}

	fmt.Printf("Telegram: Received message from %d: %s\n", userID, text)
	h.sendTyping(ctx, peer)

	reply := h.pipeline.HandleText(ctx, userID, text)
	h.reply(ctx, peer, reply)
}

// inputPeer builds an InputPeerUser from the entity cache. Bots can reply
// to recent senders with a zero access hash when the entity was not seen.
func (h *Handler) inputPeer(userID int64) tg.InputPeerClass {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if user, ok := h.users[userID]; ok {
		return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}
	}
	return &tg.InputPeerUser{UserID: userID}
}

func (h *Handler) reply(ctx context.Context, peer tg.InputPeerClass, text string) {
	h.mu.RLock()
	sender := h.sender
	h.mu.RUnlock()

	if sender == nil {
		fmt.Println("Telegram: sender not ready, dropping reply")
		return
	}

	if _, err := sender.To(peer).StyledText(ctx, html.String(nil, text)); err != nil {
		fmt.Printf("Telegram: failed to send reply: %v\n", err)
	}
}

func (h *Handler) sendTyping(ctx context.Context, peer tg.InputPeerClass) {
	h.mu.RLock()
	sender := h.sender
	h.mu.RUnlock()

	if sender == nil {
		return
	}

	if err := sender.To(peer).TypingAction().Typing(ctx); err != nil {
		fmt.Printf("Telegram: failed to send typing action: %v\n", err)
	}
}

// command extracts a leading bot command, dropping any @botname suffix.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := fields[0]
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd
}
