package contract

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	pkgdb "github.com/ahwlsqja/carbon-nft-registry/pkg/db"
)

// Contract is a row of the contracts table
type Contract struct {
	ID              uint64
	ExternalID      string
	OwnerAddress    string
	ContractAddress string
	ABI             json.RawMessage
	Label           sql.NullString
	Network         sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const contractColumns = "id, external_id, owner_address, contract_address, abi, label, network, created_at, updated_at"

const (
	listContractsByOwner = `SELECT ` + contractColumns + ` FROM contracts
WHERE owner_address = ?
ORDER BY created_at DESC, id DESC`

	getContractByID = `SELECT ` + contractColumns + ` FROM contracts WHERE id = ?`

	getContractByExternalIDAndOwner = `SELECT ` + contractColumns + ` FROM contracts
WHERE external_id = ? AND owner_address = ?`

	getContractByOwnerAndAddress = `SELECT ` + contractColumns + ` FROM contracts
WHERE owner_address = ? AND contract_address = ?`

	getContractOwnerForUpdate = `SELECT owner_address FROM contracts WHERE external_id = ? FOR UPDATE`

	upsertContract = `INSERT INTO contracts (external_id, owner_address, contract_address, abi, label, network)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE abi = VALUES(abi), label = VALUES(label), network = VALUES(network)`

	deleteContractByExternalIDAndOwner = `DELETE FROM contracts WHERE external_id = ? AND owner_address = ?`
)

// Queries runs contract statements against a connection or transaction
type Queries struct {
	db pkgdb.DBTX
}

// NewQueries binds the queries to db
func NewQueries(db pkgdb.DBTX) *Queries {
	return &Queries{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (Contract, error) {
	var c Contract
	var abi []byte
	err := row.Scan(
		&c.ID,
		&c.ExternalID,
		&c.OwnerAddress,
		&c.ContractAddress,
		&abi,
		&c.Label,
		&c.Network,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	c.ABI = json.RawMessage(abi)
	return c, err
}

func (q *Queries) ListContractsByOwner(ctx context.Context, ownerAddress string) ([]Contract, error) {
	rows, err := q.db.QueryContext(ctx, listContractsByOwner, ownerAddress)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var items []Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contracts: %w", err)
	}
	return items, nil
}

func (q *Queries) GetContractByID(ctx context.Context, id uint64) (Contract, error) {
	return scanContract(q.db.QueryRowContext(ctx, getContractByID, id))
}

func (q *Queries) GetContractByExternalIDAndOwner(ctx context.Context, externalID, ownerAddress string) (Contract, error) {
	return scanContract(q.db.QueryRowContext(ctx, getContractByExternalIDAndOwner, externalID, ownerAddress))
}

func (q *Queries) GetContractByOwnerAndAddress(ctx context.Context, ownerAddress, contractAddress string) (Contract, error) {
	return scanContract(q.db.QueryRowContext(ctx, getContractByOwnerAndAddress, ownerAddress, contractAddress))
}

// GetContractOwnerForUpdate locks a record by id regardless of owner.
// Must run inside a transaction.
func (q *Queries) GetContractOwnerForUpdate(ctx context.Context, externalID string) (string, error) {
	var owner string
	err := q.db.QueryRowContext(ctx, getContractOwnerForUpdate, externalID).Scan(&owner)
	return owner, err
}

type UpsertContractParams struct {
	ExternalID      string
	OwnerAddress    string
	ContractAddress string
	ABI             json.RawMessage
	Label           sql.NullString
	Network         sql.NullString
}

// UpsertContract inserts the owner's record for a contract address, or
// overwrites abi, label and network of the existing one. ExternalID is
// only used on insert.
func (q *Queries) UpsertContract(ctx context.Context, arg UpsertContractParams) (sql.Result, error) {
	return q.db.ExecContext(ctx, upsertContract,
		arg.ExternalID,
		arg.OwnerAddress,
		arg.ContractAddress,
		[]byte(arg.ABI),
		arg.Label,
		arg.Network,
	)
}

func (q *Queries) DeleteContractByExternalIDAndOwner(ctx context.Context, externalID, ownerAddress string) (sql.Result, error) {
	return q.db.ExecContext(ctx, deleteContractByExternalIDAndOwner, externalID, ownerAddress)
}
