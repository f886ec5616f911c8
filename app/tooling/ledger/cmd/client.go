package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ardanlabs/powledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/powledger/business/web/errs"
)

// APIError is a failure reported by the node.
type APIError struct {
	Status int
	errs.Response
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("node: %d: %s", e.Status, e.Response.Error)
	}
	return fmt.Sprintf("node: %s: %s", e.Code, e.Response.Error)
}

// =============================================================================

// client talks to the v1 api of a node.
type client struct {
	url  string
	http *http.Client
}

func newClient(url string) client {
	return client{
		url:  strings.TrimSuffix(url, "/"),
		http: http.DefaultClient,
	}
}

func (c client) genesis(ctx context.Context) (public.Block, error) {
	var blk public.Block
	err := c.do(ctx, http.MethodPost, "/v1/genesis", nil, &blk)
	return blk, err
}

func (c client) submit(ctx context.Context, ntx public.NewTx) (public.Tx, error) {
	var tx public.Tx
	err := c.do(ctx, http.MethodPost, "/v1/tx/submit", ntx, &tx)
	return tx, err
}

func (c client) seal(ctx context.Context) (public.Block, error) {
	var blk public.Block
	err := c.do(ctx, http.MethodPost, "/v1/block/seal", nil, &blk)
	return blk, err
}

func (c client) chain(ctx context.Context) ([]public.Block, error) {
	var blocks []public.Block
	err := c.do(ctx, http.MethodGet, "/v1/chain", nil, &blocks)
	return blocks, err
}

func (c client) pool(ctx context.Context) ([]public.Tx, error) {
	var trans []public.Tx
	err := c.do(ctx, http.MethodGet, "/v1/tx/uncommitted/list", nil, &trans)
	return trans, err
}

func (c client) verify(ctx context.Context) (public.Verification, error) {
	var v public.Verification
	err := c.do(ctx, http.MethodGet, "/v1/chain/verify", nil, &v)
	return v, err
}

func (c client) identity(ctx context.Context) (public.Identity, error) {
	var id public.Identity
	err := c.do(ctx, http.MethodGet, "/v1/node/identity", nil, &id)
	return id, err
}

// do sends the request and decodes the response into result. A response
// with no content leaves result untouched.
func (c client) do(ctx context.Context, method string, path string, body any, result any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr.Response); err != nil {
			apiErr.Response.Error = http.StatusText(resp.StatusCode)
		}
		return &apiErr
	}

	if resp.StatusCode == http.StatusNoContent || result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
