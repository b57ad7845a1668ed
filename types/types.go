// Package types holds the data model shared by every amp component: assets,
// registered users, GAIDs, categories, assignments, distributions, UTXOs,
// and tokens, per spec §3. Field shapes beyond spec.md's own summary are
// grounded on original_source/working-implementation.rs's request/response
// structs (Issuance, RegisteredUserAdd, Utxo, AssignmentCreateBody, ...).
package types

import "time"

// Asset is a platform-registered, on-chain issued confidential token.
type Asset struct {
	UUID              string `json:"asset_uuid"`
	AssetID           string `json:"asset_id"`
	ReissuanceTokenID string `json:"reissuance_token_id,omitempty"`

	Name      string `json:"name"`
	Ticker    string `json:"ticker"`
	Precision int    `json:"precision"`
	Domain    string `json:"domain"`
	PubKey    string `json:"pubkey"`

	IsRegistered         bool `json:"is_registered"`
	IsAuthorized         bool `json:"is_authorized"`
	IsLocked             bool `json:"is_locked"`
	TransferRestricted   bool `json:"transfer_restricted"`

	IssuerID int `json:"issuer_id"`
}

// DisplayAmount converts an integer amount in smallest units to the asset's
// display amount, per spec §3's "display amount = integer / 10^precision".
func (a Asset) DisplayAmount(smallestUnits int64) float64 {
	divisor := 1.0
	for i := 0; i < a.Precision; i++ {
		divisor *= 10
	}
	return float64(smallestUnits) / divisor
}

// RegisteredUser is a platform user eligible to receive assignments.
type RegisteredUser struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	IsCompany  bool    `json:"is_company"`
	GAID       *string `json:"gaid,omitempty"`
	CreatorID  int     `json:"creator_id,omitempty"`
}

// RegisteredUserAdd is the request body for creating a registered user,
// grounded on working-implementation.rs's RegisteredUserAdd.
type RegisteredUserAdd struct {
	Name      string `json:"name"`
	GAID      string `json:"gaid,omitempty"`
	IsCompany bool   `json:"is_company"`
}

// RegisteredUserEdit is the request body for editing a registered user.
type RegisteredUserEdit struct {
	Name string `json:"name,omitempty"`
}

// GAID (Green Address ID) is an opaque recipient handle that resolves to a
// confidential on-chain address.
type GAID struct {
	Value   string `json:"gaid"`
	Address string `json:"address,omitempty"`
}

// Category groups users and assets for visibility/eligibility purposes.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserIDs     []int  `json:"registered_users"`
	AssetUUIDs  []string `json:"assets"`
}

// CategoryAdd is the request body for creating a category.
type CategoryAdd struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryEdit is the request body for editing a category.
type CategoryEdit struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// AssignmentStatus is the lifecycle state of an Assignment.
type AssignmentStatus int

const (
	AssignmentCreated AssignmentStatus = iota
	AssignmentReadyForDistribution
	AssignmentAssignedToDistribution
	AssignmentDistributed
	AssignmentCancelled
)

// Assignment is a planned future transfer of an asset amount to a
// registered user.
type Assignment struct {
	ID                  int        `json:"id"`
	AssetUUID           string     `json:"asset_uuid"`
	RegisteredUserID    int        `json:"registered_user"`
	Amount              int64      `json:"amount"`
	VestingTimestamp    *time.Time `json:"vesting_timestamp,omitempty"`
	ReadyForDistribution bool      `json:"ready_for_distribution"`
	IsDistributed       bool       `json:"is_distributed"`
	ReceivingAddress    string     `json:"receiving_address,omitempty"`
	DistributionUUID    string     `json:"distribution_uuid,omitempty"`
}

// AssignmentCreateBody is the request body for batch-creating assignments,
// grounded on working-implementation.rs's AssignmentCreateBody.
type AssignmentCreateBody struct {
	Assignments []AssignmentRequest `json:"assignments"`
}

// AssignmentRequest is a single entry in an AssignmentCreateBody.
type AssignmentRequest struct {
	RegisteredUserID int   `json:"registered_user"`
	Amount           int64 `json:"amount"`
	VestingTimestamp int64 `json:"vesting_timestamp,omitempty"`
}

// DistributionStatus is the lifecycle state of a Distribution.
type DistributionStatus int

const (
	DistributionUnconfirmed DistributionStatus = iota
	DistributionConfirmed
)

func (s DistributionStatus) String() string {
	if s == DistributionConfirmed {
		return "CONFIRMED"
	}
	return "UNCONFIRMED"
}

// Distribution is the atomic grouping of assignments that become one
// on-chain transaction.
type Distribution struct {
	UUID         string                 `json:"distribution_uuid"`
	Status       DistributionStatus     `json:"distribution_status"`
	Transactions []DistributionTransaction `json:"transactions"`
}

// DistributionTransaction is one on-chain transaction belonging to a
// Distribution.
type DistributionTransaction struct {
	TxID              string                     `json:"txid"`
	Status            string                     `json:"status"`
	BlockHeight        int64                      `json:"block_height"`
	ConfirmedTimestamp *time.Time                 `json:"confirmed_timestamp,omitempty"`
	OutputAssignments []DistributionOutputAssignment `json:"output_assignments"`
}

// DistributionOutputAssignment records which registered user received which
// amount at which output index.
type DistributionOutputAssignment struct {
	RegisteredUserID int   `json:"registered_user"`
	Amount           int64 `json:"amount"`
	Vout             int   `json:"vout"`
}

// DistributionConfirm is the request body submitted to confirm a
// distribution server-side, grounded on working-implementation.rs's
// DistributionConfirm.
type DistributionConfirm struct {
	TxData TxData  `json:"tx_data"`
	Change []Unspent `json:"change_utxos"`
}

// TxData is the transaction detail recorded during build and replayed to
// the server at confirmation time.
type TxData struct {
	TxID string   `json:"txid"`
	Hex  string   `json:"hex"`
	Vins []TxVin  `json:"vins"`
	Vouts []TxVout `json:"vouts"`
}

type TxVin struct {
	TxID string `json:"txid"`
	Vout int    `json:"vout"`
}

type TxVout struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
	Asset   string `json:"asset_id"`
}

// Unspent is a confidential UTXO: a spendable coin with a blinded amount
// and asset commitment. ScriptPubKey/RedeemScript/WitnessScript and the
// blinder pair are required to later spend and prove ownership of the
// output; the distillation's "Blinder" glossary entry only names the pair
// but original_source's Utxo struct carries the script fields too, and a
// real spend needs them.
type Unspent struct {
	TxID          string  `json:"txid"`
	Vout          int     `json:"vout"`
	Amount        float64 `json:"amount"`
	Asset         string  `json:"asset"`
	Address       string  `json:"address"`
	Spendable     bool    `json:"spendable"`
	Confirmations *int    `json:"confirmations,omitempty"`
	ScriptPubKey  string  `json:"scriptPubKey,omitempty"`
	RedeemScript  string  `json:"redeemScript,omitempty"`
	WitnessScript string  `json:"witnessScript,omitempty"`
	AmountBlinder string  `json:"amountblinder,omitempty"`
	AssetBlinder  string  `json:"assetblinder,omitempty"`
}

// Token is the cached API bearer token. At most one valid Token exists
// process-wide (spec §3); if now + skew >= ExpiresAt, it is stale.
type Token struct {
	Value      string
	AcquiredAt time.Time
	ExpiresAt  time.Time
}

// Stale reports whether t needs to be refreshed given a safety skew.
func (t Token) Stale(now time.Time, skew time.Duration) bool {
	return now.Add(skew).After(t.ExpiresAt) || now.Add(skew).Equal(t.ExpiresAt)
}

// Issuance is the request body for issuing a new asset, grounded on
// working-implementation.rs's Issuance/IssuanceContext.
type Issuance struct {
	Name            string `json:"name"`
	Amount          int64  `json:"amount"`
	Domain          string `json:"domain"`
	Ticker          string `json:"ticker"`
	Precision       int    `json:"precision"`
	PubKey          string `json:"pubkey"`
	IsConfidential  bool   `json:"is_confidential"`
	IsReissuable    bool   `json:"is_reissuable"`
	ReissuanceAddress string `json:"reissuance_address,omitempty"`
}

// IssuanceResponse is the response returned after a successful issuance.
type IssuanceResponse struct {
	AssetUUID string `json:"asset_uuid"`
	AssetID   string `json:"asset_id"`
	TxID      string `json:"txid"`
}

// ReissueRequest asks the platform for unsigned inputs to reissue supply.
type ReissueRequest struct {
	Amount int64 `json:"amount_to_reissue"`
}

// ReissueConfirm submits a signed reissuance txid.
type ReissueConfirm struct {
	TxID string `json:"txid"`
}

// BurnRequest asks the platform for unsigned inputs to burn supply.
type BurnRequest struct {
	Amount int64 `json:"amount_to_burn"`
}

// BurnConfirm submits a signed burn txid.
type BurnConfirm struct {
	TxID string `json:"txid"`
}

// UpdateBlindersRequest submits refreshed blinder data for an output.
type UpdateBlindersRequest struct {
	TxID          string `json:"txid"`
	Vout          int    `json:"vout"`
	AmountBlinder string `json:"amountblinder"`
	AssetBlinder  string `json:"assetblinder"`
}

// ManagerCreate is the request body for creating a manager account.
type ManagerCreate struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// ManagerPasswordChange changes a manager's password.
type ManagerPasswordChange struct {
	NewPassword string `json:"new_password"`
}

// ManagerEdit is a partial update to a manager account's non-credential
// fields, distinct from ManagerPasswordChange so "edit" and "change
// password" aren't conflated (spec §4.4 lists them as separate operations).
type ManagerEdit struct {
	IsAdmin bool `json:"is_admin,omitempty"`
}

// EditAssetRequest is a partial update to an asset's descriptive fields.
type EditAssetRequest struct {
	Name   string `json:"name,omitempty"`
	Ticker string `json:"ticker,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// ListParams are the paging/filter parameters shared by list endpoints that
// support them, e.g. Assets.Transactions (spec §4.4).
type ListParams struct {
	Start       int
	Count       int
	HeightStart int64
	HeightStop  int64
	SortOrder   string // "asc" or "desc"
}
