// Package escrow wraps the payment network's fund and release operations.
package escrow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/config"
)

// TxResult is the gateway's structured outcome. A failed call carries Error
// and leaves the bounty untouched; no compensating action is taken.
type TxResult struct {
	OK         bool   `json:"ok"`
	TxHash     string `json:"tx_hash,omitempty"`
	ContractID string `json:"contract_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Client defines the two escrow operations. Single call-and-check, no
// retries, no idempotency key.
type Client interface {
	// Fund deposits the reward into a newly deployed escrow contract and
	// returns its contract id.
	Fund(ctx context.Context, amount, beneficiaryWallet string) (*TxResult, error)

	// Release pays out the escrow contract balance to the beneficiary.
	Release(ctx context.Context, contractID string) (*TxResult, error)
}

type client struct {
	baseURL      string
	funderSecret string
	httpClient   *http.Client
	logger       *zap.SugaredLogger
}

// New creates a new escrow gateway client.
func New(cfg config.EscrowConfig, logger *zap.SugaredLogger) Client {
	return &client{
		baseURL:      cfg.BaseURL,
		funderSecret: cfg.FunderSecret,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

type fundRequest struct {
	Amount            string `json:"amount"`
	BeneficiaryWallet string `json:"beneficiary_wallet"`
}

type invokeRequest struct {
	ContractID string   `json:"contract_id"`
	Function   string   `json:"function"`
	Args       []string `json:"args"`
}

// Fund deposits the reward into a newly deployed escrow contract.
func (c *client) Fund(ctx context.Context, amount, beneficiaryWallet string) (*TxResult, error) {
	return c.post(ctx, "/launch", fundRequest{
		Amount:            amount,
		BeneficiaryWallet: beneficiaryWallet,
	})
}

// Release pays out the escrow contract balance to the beneficiary.
func (c *client) Release(ctx context.Context, contractID string) (*TxResult, error) {
	return c.post(ctx, "/invoke", invokeRequest{
		ContractID: contractID,
		Function:   "release",
		Args:       []string{},
	})
}

// post submits one gateway call and decodes the TxResult envelope.
// A non-2xx status or ok:false is reported inside TxResult, not as an error;
// transport failures are returned as errors.
func (c *client) post(ctx context.Context, path string, payload interface{}) (*TxResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode escrow request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create escrow request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.funderSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("escrow gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("failed to read escrow response: %w", err)
	}

	var result TxResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode escrow response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnw("escrow gateway error", "path", path, "status", resp.StatusCode, "error", result.Error)
		result.OK = false
		if result.Error == "" {
			result.Error = fmt.Sprintf("escrow gateway returned status %d", resp.StatusCode)
		}
	}

	return &result, nil
}
