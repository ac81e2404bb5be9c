package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"draft-order/internal/constants"

	"github.com/valyala/fasthttp"
)

// Error is a failed call as reported by the server.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Client calls the draft-order services over HTTP.
type Client struct {
	baseURL string
	client  *fasthttp.Client

	tokenMu sync.RWMutex
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Login stores the admin token for subsequent admin calls.
func (c *Client) Login(ctx context.Context, password string) (*LoginResponse, error) {
	resp, err := doRequest[LoginResponse](ctx, c, AdminLoginProcedure, LoginRequest{Password: password}, nil)
	if err != nil {
		return nil, err
	}

	c.tokenMu.Lock()
	c.token = resp.Token
	c.tokenMu.Unlock()
	return resp, nil
}

func (c *Client) GetGameState(ctx context.Context) (*GameState, error) {
	return doRequest[GameState](ctx, c, GetGameStateProcedure, Empty{}, nil)
}

// SubmitGuess submits on behalf of forwardedFor when it is not empty.
func (c *Client) SubmitGuess(ctx context.Context, req SubmitGuessRequest, forwardedFor string) (*PlayerResponse, error) {
	var headers map[string]string
	if forwardedFor != "" {
		headers = map[string]string{"X-Forwarded-For": forwardedFor}
	}
	return doRequest[PlayerResponse](ctx, c, SubmitGuessProcedure, req, headers)
}

func (c *Client) ListPlayers(ctx context.Context) (*PlayersResponse, error) {
	return doRequest[PlayersResponse](ctx, c, ListPlayersProcedure, Empty{}, nil)
}

func (c *Client) InitializeGame(ctx context.Context, req InitializeGameRequest) (*GameState, error) {
	return doRequest[GameState](ctx, c, InitializeGameProcedure, req, nil)
}

func (c *Client) ResetToSetup(ctx context.Context) (*GameState, error) {
	return doRequest[GameState](ctx, c, ResetToSetupProcedure, Empty{}, nil)
}

func (c *Client) AdvancePhase(ctx context.Context) (*GameState, error) {
	return doRequest[GameState](ctx, c, AdvancePhaseProcedure, Empty{}, nil)
}

func (c *Client) CreateBackup(ctx context.Context, reason string) (*BackupResponse, error) {
	return doRequest[BackupResponse](ctx, c, CreateBackupProcedure, CreateBackupRequest{Reason: reason}, nil)
}

func doRequest[T any](ctx context.Context, client *Client, procedure string, body any, headers map[string]string) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + procedure)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	client.tokenMu.RLock()
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}
	client.tokenMu.RUnlock()
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &Error{Status: resp.StatusCode(), Code: "unknown"}
		if err := json.Unmarshal(resp.Body(), apiErr); err != nil {
			apiErr.Message = string(resp.Body())
		}
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", procedure, err)
	}
	return &result, nil
}
