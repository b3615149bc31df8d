package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/hostauth/internal/domain/model"
	"github.com/ericfisherdev/hostauth/internal/domain/port/driven"
)

// AuthRecordRepo reads authentication records from the domain_auth table.
// The password and credentials columns hold AES-256-GCM ciphertext; host,
// type and username are stored in clear.
type AuthRecordRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewAuthRecordRepo creates a new AuthRecordRepo. key must be 32 bytes for
// AES-256-GCM, or nil, in which case Snapshot returns
// driven.ErrEncryptionKeyNotSet.
func NewAuthRecordRepo(db *DB, key []byte) *AuthRecordRepo {
	return &AuthRecordRepo{db: db, key: key}
}

// Snapshot loads every row, decrypts secret columns and returns them as an
// immutable RecordSet ordered by id, so the earliest row for a host wins.
// NULL columns become absent attributes.
func (r *AuthRecordRepo) Snapshot(ctx context.Context) (*model.RecordSet, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT host, type, username, password, credentials FROM domain_auth ORDER BY id`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list domain auth: %w", err)
	}
	defer rows.Close()

	var records []model.AuthRecord
	for rows.Next() {
		var host string
		var authType, username, password, credentials sql.NullString
		if err := rows.Scan(&host, &authType, &username, &password, &credentials); err != nil {
			return nil, fmt.Errorf("scan domain auth: %w", err)
		}

		attrs := map[string]string{model.AttrHost: host}
		setIfValid(attrs, model.AttrType, authType)
		setIfValid(attrs, model.AttrUsername, username)

		for _, secret := range []struct {
			name string
			col  sql.NullString
		}{
			{model.AttrPassword, password},
			{model.AttrCredentials, credentials},
		} {
			if !secret.col.Valid {
				continue
			}
			plaintext, err := r.decrypt(secret.col.String)
			if err != nil {
				return nil, fmt.Errorf("decrypt %s for %q: %w", secret.name, host, err)
			}
			attrs[secret.name] = plaintext
		}

		records = append(records, model.AuthRecord{Host: host, Attributes: attrs})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate domain auth: %w", err)
	}

	return model.NewRecordSet(records...), nil
}

func setIfValid(attrs map[string]string, name string, v sql.NullString) {
	if v.Valid {
		attrs[name] = v.String
	}
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded string
// containing the nonce (12 bytes) prepended to the ciphertext.
func (r *AuthRecordRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *AuthRecordRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	gcm, err := r.aead()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

func (r *AuthRecordRepo) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}
	return gcm, nil
}
