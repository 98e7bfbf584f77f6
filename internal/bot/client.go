package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/tg"
)

// Client manages the Telegram bot connection
type Client struct {
	apiID       int
	apiHash     string
	botToken    string
	sessionPath string
	client      *telegram.Client
	api         *tg.Client
	handler     *Handler
	connected   bool
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	updatesChan chan tg.UpdatesClass
}

// ClientConfig holds configuration for the Telegram bot client
type ClientConfig struct {
	APIID       int
	APIHash     string
	BotToken    string
	SessionPath string
	Handler     *Handler
}

// NewClient creates a new Telegram bot client
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIID == 0 || cfg.APIHash == "" {
		return nil, fmt.Errorf("Telegram API ID and API Hash are required")
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("Telegram bot token is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		apiID:       cfg.APIID,
		apiHash:     cfg.APIHash,
		botToken:    cfg.BotToken,
		sessionPath: cfg.SessionPath,
		handler:     cfg.Handler,
		ctx:         ctx,
		cancel:      cancel,
		updatesChan: make(chan tg.UpdatesClass, 100),
	}

	return c, nil
}

// Connect initializes the client and signs in with the bot token
func (c *Client) Connect() error {
	c.mu.RLock()
	if c.connected || c.api != nil {
		c.mu.RUnlock()
		return nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	if c.connected || c.api != nil {
		c.mu.Unlock()
		return nil
	}

	sessionStorage := &FileSessionStorage{Path: c.sessionPath}

	client := telegram.NewClient(c.apiID, c.apiHash, telegram.Options{
		SessionStorage: sessionStorage,
		UpdateHandler:  c,
	})

	c.client = client
	c.mu.Unlock()

	go func() {
		if err := client.Run(c.ctx, func(ctx context.Context) error {
			status, err := client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get auth status: %w", err)
			}

			if !status.Authorized {
				if _, err := client.Auth().Bot(ctx, c.botToken); err != nil {
					return fmt.Errorf("bot sign-in failed: %w", err)
				}
				fmt.Println("Telegram: Bot signed in")
			} else {
				fmt.Println("Telegram: Already authorized")
			}

			c.mu.Lock()
			c.api = client.API()
			c.connected = true
			c.mu.Unlock()

			if c.handler != nil {
				c.handler.Bind(message.NewSender(client.API()))
			}

			// Block until context is cancelled
			<-ctx.Done()
			return ctx.Err()
		}); err != nil && err != context.Canceled {
			fmt.Printf("Telegram client error: %v\n", err)
		}
	}()

	// Wait for sign-in with timeout
	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			return fmt.Errorf("timeout waiting for Telegram bot to connect")
		case <-ticker.C:
			c.mu.RLock()
			ready := c.connected
			c.mu.RUnlock()
			if ready {
				fmt.Println("Telegram: Bot connected and ready")
				return nil
			}
		}
	}
}

// Disconnect closes the Telegram connection
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
}

// IsConnected returns whether the bot is signed in
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Handle implements telegram.UpdateHandler
func (c *Client) Handle(ctx context.Context, u tg.UpdatesClass) error {
	if c.handler == nil {
		return nil
	}

	select {
	case c.updatesChan <- u:
	default:
		fmt.Println("Telegram: Updates channel full, dropping update")
	}

	return nil
}

// StartUpdateLoop starts processing updates
func (c *Client) StartUpdateLoop() {
	go func() {
		for {
			select {
			case <-c.ctx.Done():
				return
			case update := <-c.updatesChan:
				c.handler.HandleUpdate(c.ctx, update)
			}
		}
	}()
}
