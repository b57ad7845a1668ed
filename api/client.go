// Package api is the typed façade over the platform's REST surface (spec
// §4.4). Client's request plumbing is grounded on the teacher's
// net/rpc.Client (_examples/13401095975-chain/net/rpc/rpc.go): a BaseURL,
// a userAgent(), and one Call-shaped method building a *http.Request from a
// path and a body. Generalized here from JSON-RPC-over-HTTP-with-basic-auth
// to REST-over-HTTP with a bearer `Authorization: token <opaque>` header
// and per-resource typed methods instead of one generic Call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"amp/errors"
	"amp/internal/logging"
	"amp/retry"
	"amp/token"
	"amp/types"
)

var log = logging.For("api")

// Backend is the full set of platform operations spec.md §4.4 names.
// Client satisfies it against the real platform; api/ampmock.Mock
// satisfies it in-memory for consumer tests (C10).
type Backend interface {
	// Assets
	ListAssets(ctx context.Context) ([]types.Asset, *errors.Error)
	GetAsset(ctx context.Context, uuid string) (types.Asset, *errors.Error)
	IssueAsset(ctx context.Context, req types.Issuance) (types.IssuanceResponse, *errors.Error)
	RegisterAsset(ctx context.Context, uuid string) (types.Asset, *errors.Error)
	RegisterAssetAsAuthorized(ctx context.Context, uuid string) (types.Asset, *errors.Error)
	EditAsset(ctx context.Context, uuid string, req types.EditAssetRequest) (types.Asset, *errors.Error)
	DeleteAsset(ctx context.Context, uuid string) *errors.Error
	LockAsset(ctx context.Context, uuid string) *errors.Error
	UnlockAsset(ctx context.Context, uuid string) *errors.Error
	AssetSummary(ctx context.Context, uuid string) (map[string]interface{}, *errors.Error)
	AssetBalance(ctx context.Context, uuid string) (int64, *errors.Error)
	AssetOwnerships(ctx context.Context, uuid string) ([]types.RegisteredUser, *errors.Error)
	AssetTransactions(ctx context.Context, uuid string, params types.ListParams) ([]types.DistributionTransaction, *errors.Error)
	AssetLostOutputs(ctx context.Context, uuid string) ([]types.Unspent, *errors.Error)
	UpdateBlinders(ctx context.Context, uuid string, req types.UpdateBlindersRequest) *errors.Error
	GetAssetMemo(ctx context.Context, uuid string) (string, *errors.Error)
	SetAssetMemo(ctx context.Context, uuid, memo string) *errors.Error

	// Users
	ListUsers(ctx context.Context) ([]types.RegisteredUser, *errors.Error)
	GetUser(ctx context.Context, id int) (types.RegisteredUser, *errors.Error)
	AddUser(ctx context.Context, req types.RegisteredUserAdd) (types.RegisteredUser, *errors.Error)
	EditUser(ctx context.Context, id int, req types.RegisteredUserEdit) (types.RegisteredUser, *errors.Error)
	DeleteUser(ctx context.Context, id int) *errors.Error
	UserSummary(ctx context.Context, id int) (map[string]interface{}, *errors.Error)
	ListUserGAIDs(ctx context.Context, id int) ([]types.GAID, *errors.Error)
	AddUserGAID(ctx context.Context, id int, gaid string) (types.GAID, *errors.Error)
	SetDefaultGAID(ctx context.Context, id int, gaid string) *errors.Error
	AddUserToCategory(ctx context.Context, userID, categoryID int) *errors.Error
	RemoveUserFromCategory(ctx context.Context, userID, categoryID int) *errors.Error

	// Categories
	ListCategories(ctx context.Context) ([]types.Category, *errors.Error)
	GetCategory(ctx context.Context, id int) (types.Category, *errors.Error)
	AddCategory(ctx context.Context, req types.CategoryAdd) (types.Category, *errors.Error)
	EditCategory(ctx context.Context, id int, req types.CategoryEdit) (types.Category, *errors.Error)
	DeleteCategory(ctx context.Context, id int) *errors.Error
	AddCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error
	RemoveCategoryAsset(ctx context.Context, categoryID int, assetUUID string) *errors.Error

	// Assignments
	ListAssignments(ctx context.Context, assetUUID string) ([]types.Assignment, *errors.Error)
	GetAssignment(ctx context.Context, assetUUID string, id int) (types.Assignment, *errors.Error)
	CreateAssignments(ctx context.Context, assetUUID string, req types.AssignmentCreateBody) ([]types.Assignment, *errors.Error)
	LockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error
	UnlockAssignment(ctx context.Context, assetUUID string, id int) *errors.Error
	DeleteAssignment(ctx context.Context, assetUUID string, id int) *errors.Error

	// Distributions
	CreateDistribution(ctx context.Context, assetUUID string, assignmentIDs []int) (types.Distribution, *errors.Error)
	ConfirmDistribution(ctx context.Context, assetUUID, distUUID string, req types.DistributionConfirm) (types.Distribution, *errors.Error)
	CancelDistribution(ctx context.Context, assetUUID, distUUID string) *errors.Error
	ListDistributions(ctx context.Context, assetUUID string) ([]types.Distribution, *errors.Error)
	GetDistribution(ctx context.Context, assetUUID, distUUID string) (types.Distribution, *errors.Error)

	// Reissue / Burn
	RequestReissue(ctx context.Context, assetUUID string, req types.ReissueRequest) (types.TxData, *errors.Error)
	ConfirmReissue(ctx context.Context, assetUUID string, req types.ReissueConfirm) *errors.Error
	RequestBurn(ctx context.Context, assetUUID string, req types.BurnRequest) (types.TxData, *errors.Error)
	ConfirmBurn(ctx context.Context, assetUUID string, req types.BurnConfirm) *errors.Error

	// GAIDs
	ValidateGAID(ctx context.Context, gaid string) (bool, *errors.Error)
	ResolveGAID(ctx context.Context, gaid string) (string, *errors.Error)
	LookupGAIDUser(ctx context.Context, gaid string) (types.RegisteredUser, *errors.Error)
	GAIDBalances(ctx context.Context, gaid string) (map[string]int64, *errors.Error)

	// Managers
	ListManagers(ctx context.Context) ([]string, *errors.Error)
	CreateManager(ctx context.Context, req types.ManagerCreate) *errors.Error
	EditManager(ctx context.Context, username string, req types.ManagerEdit) *errors.Error
	DeleteManager(ctx context.Context, username string) *errors.Error
	ChangeManagerPassword(ctx context.Context, username string, req types.ManagerPasswordChange) *errors.Error
	LockManager(ctx context.Context, username string) *errors.Error
	UnlockManager(ctx context.Context, username string) *errors.Error
	AddManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error
	RemoveManagerAssetACL(ctx context.Context, username, assetUUID string) *errors.Error

	// Broadcast
	Broadcast(ctx context.Context, signedHex string) (string, *errors.Error)
	BroadcastStatus(ctx context.Context, txid string) (string, *errors.Error)
}

// Client is the real Backend implementation, speaking REST+JSON to the
// platform over HTTP.
type Client struct {
	BaseURL string
	Tokens  *token.Manager
	retry   *retry.Engine
	http    *http.Client
}

var _ Backend = (*Client)(nil)

// New builds a Client against baseURL, sharing tokens and the retry engine
// with the rest of the process.
func New(baseURL string, tokens *token.Manager, retryEngine *retry.Engine) *Client {
	return &Client{BaseURL: baseURL, Tokens: tokens, retry: retryEngine, http: &http.Client{}}
}

func (c *Client) userAgent() string {
	return "amp-go-client/1"
}

// do builds and executes an HTTP request against path, attaching the
// current bearer token, retrying per C2, decoding a JSON response into out
// (if non-nil), and surfacing a single token-invalidate-and-retry on a
// persistent 401 per spec §4.4's last line.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) *errors.Error {
	resp, err := c.attempt(ctx, method, path, query, body)
	if err != nil && err.Kind == errors.KindAuth {
		c.Tokens.Clear()
		resp, err = c.attempt(ctx, method, path, query, body)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if derr := json.NewDecoder(resp.Body).Decode(out); derr != nil {
		return errors.Serde(fmt.Sprintf("decoding response for %s %s", method, path), derr)
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, *errors.Error) {
	tok, terr := c.Tokens.GetToken(ctx)
	if terr != nil {
		return nil, terr.WithContext(fmt.Sprintf("%s %s", method, path))
	}

	u, perr := url.Parse(c.BaseURL)
	if perr != nil {
		return nil, errors.Network(perr.Error(), perr).WithContext("parsing base URL")
	}
	u.Path = u.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var encoded []byte
	if body != nil {
		var merr error
		encoded, merr = json.Marshal(body)
		if merr != nil {
			return nil, errors.Serde("encoding request body", merr)
		}
	}

	// The request is rebuilt fresh inside the retry factory on every
	// attempt (spec §4.2's "request factory", not a single request
	// replayed): a body reader consumed on attempt 1 is at EOF by attempt
	// 2, and http.Client.Do rejects a non-nil ContentLength against an
	// already-drained Body.
	resp, err := c.retry.Do(ctx, func() (*http.Response, error) {
		var reader io.Reader
		if encoded != nil {
			reader = bytes.NewReader(encoded)
		}
		req, rerr := http.NewRequestWithContext(ctx, method, u.String(), reader)
		if rerr != nil {
			return nil, rerr
		}
		req.Header.Set("Authorization", "token "+tok.Value)
		req.Header.Set("User-Agent", c.userAgent())
		if encoded != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.http.Do(req)
	})
	if err != nil {
		return nil, err.WithContext(fmt.Sprintf("%s %s", method, path))
	}
	return resp, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
